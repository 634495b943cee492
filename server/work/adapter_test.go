package work

import (
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/Daskott/folio/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func waitFor(t *testing.T, timeout time.Duration, condition func() bool) {
	deadline := time.Now().Add(timeout)
	for time.Now().Before(deadline) {
		if condition() {
			return
		}
		time.Sleep(10 * time.Millisecond)
	}
	t.Fatalf("condition not met within %v", timeout)
}

func TestPerform(t *testing.T) {
	models.InitializeTestDb()

	workerPool, err := NewWorkerAdapter("UTC", MAX_CONCURRENCY, true)
	require.Nil(t, err)

	var mu sync.Mutex
	received := []interface{}{}

	err = workerPool.Register("record_arg", func(args map[string]interface{}) error {
		mu.Lock()
		defer mu.Unlock()
		received = append(received, args["submission_id"])
		return nil
	})
	require.Nil(t, err)

	err = workerPool.Perform(JobParams{
		Name:    "record_arg",
		Handler: "record_arg",
		Args:    map[string]interface{}{"submission_id": 7},
	})
	require.Nil(t, err)

	workerPool.Start()
	defer workerPool.Stop()

	waitFor(t, 3*time.Second, func() bool {
		stats, err := models.CurrentJobsStats()
		return err == nil && stats.SuccessfulJobCount == 1
	})

	mu.Lock()
	defer mu.Unlock()
	// json numbers decode as float64
	assert.Equal(t, []interface{}{float64(7)}, received)
}

func TestFailingJobEndsDead(t *testing.T) {
	models.InitializeTestDb()

	workerPool, err := NewWorkerAdapter("UTC", MAX_CONCURRENCY, true)
	require.Nil(t, err)

	calls := 0
	var mu sync.Mutex
	workerPool.Register("always_fails", func(args map[string]interface{}) error {
		mu.Lock()
		defer mu.Unlock()
		calls++
		return errors.New("boom")
	})

	require.Nil(t, workerPool.Perform(JobParams{Name: "always_fails", Handler: "always_fails"}))

	workerPool.Start()
	defer workerPool.Stop()

	waitFor(t, 3*time.Second, func() bool {
		stats, err := models.CurrentJobsStats()
		return err == nil && stats.DeadJobCount == 1
	})

	jobs, _, err := models.FetchJobsByStatus(models.DEAD_JOB, 1)
	require.Nil(t, err)
	assert.Equal(t, MAX_FAILS, jobs[0].Fails)
	assert.Equal(t, "boom", jobs[0].LastError)

	mu.Lock()
	defer mu.Unlock()
	assert.Equal(t, MAX_FAILS, calls)
}

func TestUnknownHandlerIsRetriedThenDead(t *testing.T) {
	models.InitializeTestDb()

	workerPool, err := NewWorkerAdapter("UTC", MAX_CONCURRENCY, true)
	require.Nil(t, err)

	require.Nil(t, workerPool.Perform(JobParams{Name: "orphan", Handler: "missing"}))

	workerPool.Start()
	defer workerPool.Stop()

	waitFor(t, 3*time.Second, func() bool {
		stats, err := models.CurrentJobsStats()
		return err == nil && stats.DeadJobCount == 1
	})
}

func TestPerformDuplicateUniqueJobIsIgnored(t *testing.T) {
	models.InitializeTestDb()

	workerPool, err := NewWorkerAdapter("UTC", MAX_CONCURRENCY, true)
	require.Nil(t, err)

	job := JobParams{Name: "backup", Handler: "backup", Unique: true}
	assert.Nil(t, workerPool.Perform(job))
	assert.Nil(t, workerPool.Perform(job))

	stats, err := models.CurrentJobsStats()
	require.Nil(t, err)
	assert.Equal(t, int64(1), stats.EnqueuedJobCount)
}

func TestPerformRequiresNameAndHandler(t *testing.T) {
	models.InitializeTestDb()

	workerPool, err := NewWorkerAdapter("UTC", MAX_CONCURRENCY, true)
	require.Nil(t, err)

	assert.NotNil(t, workerPool.Perform(JobParams{Name: " ", Handler: "h"}))
	assert.NotNil(t, workerPool.Perform(JobParams{Name: "n"}))
}

func TestPeriodicallyPerform(t *testing.T) {
	models.InitializeTestDb()

	workerPool, err := NewWorkerAdapter("UTC", MAX_CONCURRENCY, true)
	require.Nil(t, err)

	job := JobParams{Name: "backup", Handler: "backup", Unique: true}
	assert.Nil(t, workerPool.PeriodicallyPerform("0 2 * * *", job))
	assert.NotNil(t, workerPool.PeriodicallyPerform("not a cron expression", JobParams{Name: "broken", Handler: "backup"}))
}
