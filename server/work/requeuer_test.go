package work

import (
	"testing"
	"time"

	"github.com/Daskott/folio/server/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func claimJob(t *testing.T, name string, updatedAgo time.Duration) *models.Job {
	require.Nil(t, models.CreateJob(name, "handler", "{}", false))

	job, err := models.NextJob(models.ENQUEUED_JOB, false)
	require.Nil(t, err)
	require.Equal(t, name, job.Name)

	claimed, err := job.MarkAsClaimed()
	require.Nil(t, err)
	require.True(t, claimed)

	require.Nil(t, job.Update(map[string]interface{}{"updated_at": time.Now().UTC().Add(-updatedAgo)}))
	return job
}

func TestNewRequeuerRejectsUnsupportedQueue(t *testing.T) {
	_, err := newRequeuer(models.ENQUEUED_JOB)
	assert.NotNil(t, err)
}

func TestRequeuerReturnsStuckJobs(t *testing.T) {
	models.InitializeTestDb()

	stuck := claimJob(t, "stuck", (STUCK_JOB_MINUTES+1)*time.Minute)
	recent := claimJob(t, "recent", time.Minute)

	r, err := newRequeuer(models.IN_PROGRESS_JOB)
	require.Nil(t, err)
	r.start()

	waitFor(t, 3*time.Second, func() bool {
		job, err := models.FindJob(stuck.ID)
		return err == nil && job.JobStatus.Name == models.ENQUEUED_JOB
	})
	r.stop()

	job, err := models.FindJob(stuck.ID)
	require.Nil(t, err)
	assert.Equal(t, models.ENQUEUED_JOB, job.JobStatus.Name)
	assert.False(t, job.Claimed)

	job, err = models.FindJob(recent.ID)
	require.Nil(t, err)
	assert.Equal(t, models.IN_PROGRESS_JOB, job.JobStatus.Name, "a job updated a minute ago is left alone")
	assert.True(t, job.Claimed)
}
