package notifier

import (
	"fmt"

	"github.com/Daskott/folio/colors"
	"github.com/Daskott/folio/server/logger"
	"github.com/Daskott/folio/server/metrics"
	"github.com/Daskott/folio/server/models"
	"github.com/Daskott/folio/server/work"
	"github.com/Daskott/folio/shared"
)

const (
	NOTIFY_OWNER_HANDLER = "notify_owner"
	MAX_MESSAGE_LENGTH   = 320
)

var logg = logger.NewLogger()

type Sender interface {
	SendMessage(to, msg string) error
}

type Recorder interface {
	RecordNotification(outcome string)
}

// Notifier tells the site owner about new contact submissions by SMS.
type Notifier struct {
	workerPool *work.WorkerPoolAdapter
	sender     Sender
	owner      shared.OwnerConfig
	recorder   Recorder
}

func NewNotifier(workerPool *work.WorkerPoolAdapter, sender Sender, owner shared.OwnerConfig, recorder Recorder) (*Notifier, error) {
	n := &Notifier{
		workerPool: workerPool,
		sender:     sender,
		owner:      owner,
		recorder:   recorder,
	}

	err := workerPool.Register(NOTIFY_OWNER_HANDLER, n.notifyOwner)
	if err != nil {
		return nil, fmt.Errorf("NewNotifier: %v", err)
	}

	return n, nil
}

// Enqueue schedules a notification for 'submissionID'.
func (n *Notifier) Enqueue(submissionID uint) error {
	return n.workerPool.Perform(work.JobParams{
		Name:    fmt.Sprintf("%v_%v", NOTIFY_OWNER_HANDLER, submissionID),
		Handler: NOTIFY_OWNER_HANDLER,
		Unique:  true,
		Args:    map[string]interface{}{"submission_id": submissionID},
	})
}

func (n *Notifier) notifyOwner(params map[string]interface{}) error {
	// JSON numbers decode as float64
	id, ok := params["submission_id"].(float64)
	if !ok {
		return fmt.Errorf("notifyOwner: invalid submission_id %v", params["submission_id"])
	}

	submission, err := models.FindSubmission(uint(id))
	if err != nil {
		return fmt.Errorf("notifyOwner: %v", err)
	}

	if submission.NotifiedAt != nil {
		return nil
	}

	if n.owner.PhoneNumber == "" {
		logg.Infof(colors.Yellow("no owner phone number configured, skipping notification for submission %v"), submission.ID)
		n.record(metrics.SKIPPED)
		return nil
	}

	err = n.sender.SendMessage(n.owner.PhoneNumber, OwnerMessage(submission))
	if err != nil {
		n.record(metrics.FAILED)
		return fmt.Errorf("notifyOwner: %v", err)
	}
	n.record(metrics.SENT)

	err = submission.MarkNotified()
	if err != nil {
		return fmt.Errorf("notifyOwner: %v", err)
	}

	logg.Infof(colors.Blue("owner notified of submission %v"), submission.ID)
	return nil
}

func (n *Notifier) record(outcome string) {
	if n.recorder != nil {
		n.recorder.RecordNotification(outcome)
	}
}

// OwnerMessage is the SMS body for a submission, cut to MAX_MESSAGE_LENGTH runes.
func OwnerMessage(submission *models.ContactSubmission) string {
	msg := fmt.Sprintf("New message from %v <%v>:\n%v", submission.Name, submission.Email, submission.Message)

	runes := []rune(msg)
	if len(runes) <= MAX_MESSAGE_LENGTH {
		return msg
	}

	return string(runes[:MAX_MESSAGE_LENGTH-3]) + "..."
}
