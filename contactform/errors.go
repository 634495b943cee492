package contactform

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrSubmitInFlight = errors.New("contactform: a submission is already in flight")
	ErrAlreadySent    = errors.New("contactform: message already sent, reset the form first")
)

// ValidationError is a field level input failure. It is rendered next to
// the offending field and never changes the form status.
type ValidationError struct {
	Field   Field
	Key     string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

type ValidationErrors []*ValidationError

func (errs ValidationErrors) Error() string {
	msgs := make([]string, 0, len(errs))
	for _, e := range errs {
		msgs = append(msgs, e.Error())
	}
	return strings.Join(msgs, "; ")
}

// ByField returns the messages keyed by field name.
func (errs ValidationErrors) ByField() map[Field]string {
	out := make(map[Field]string, len(errs))
	for _, e := range errs {
		out[e.Field] = e.Message
	}
	return out
}

// SubmissionError is a form level failure of the outbound request, either a
// non-success response or a transport error.
type SubmissionError struct {
	// StatusCode is 0 for transport failures.
	StatusCode int
	// Reason is the server provided message, used verbatim when present.
	Reason string
	Err    error
}

func (e *SubmissionError) Error() string {
	switch {
	case e.Reason != "":
		return fmt.Sprintf("submission failed (%d): %s", e.StatusCode, e.Reason)
	case e.Err != nil:
		return fmt.Sprintf("submission failed: %v", e.Err)
	default:
		return fmt.Sprintf("submission failed with status %d", e.StatusCode)
	}
}

func (e *SubmissionError) Unwrap() error {
	return e.Err
}
