package models

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func TestJobStatusesAreSeeded(t *testing.T) {
	InitializeTestDb()

	for name := range JobStatusNameMap {
		status, err := FindJobStatus(name)
		require.Nil(t, err, name)
		assert.Equal(t, name, status.Name)
	}
}

func TestCreateUniqueJob(t *testing.T) {
	InitializeTestDb()

	require.Nil(t, CreateJob("backup", "backupSqliteDb", "{}", true))
	assert.Equal(t, ErrDuplicateJob, CreateJob("backup", "backupSqliteDb", "{}", true))

	// Non unique jobs can share a name
	require.Nil(t, CreateJob("notify", "notifyOwner", `{"id":1}`, false))
	require.Nil(t, CreateJob("notify", "notifyOwner", `{"id":2}`, false))

	stats, err := CurrentJobsStats()
	require.Nil(t, err)
	assert.Equal(t, int64(3), stats.EnqueuedJobCount)
}

func TestNextJobAndClaim(t *testing.T) {
	InitializeTestDb()

	_, err := NextJob(ENQUEUED_JOB, false)
	assert.True(t, errors.Is(err, gorm.ErrRecordNotFound))

	require.Nil(t, CreateJob("first", "handler", "{}", false))
	require.Nil(t, CreateJob("second", "handler", "{}", false))

	job, err := NextJob(ENQUEUED_JOB, false)
	require.Nil(t, err)
	assert.Equal(t, "first", job.Name)

	claimed, err := job.MarkAsClaimed()
	require.Nil(t, err)
	assert.True(t, claimed)

	claimed, err = job.MarkAsClaimed()
	require.Nil(t, err)
	assert.False(t, claimed, "a job can only be claimed once")

	job, err = NextJob(ENQUEUED_JOB, false)
	require.Nil(t, err)
	assert.Equal(t, "second", job.Name)

	inProgress, paging, err := FetchJobsByStatus(IN_PROGRESS_JOB, 1)
	require.Nil(t, err)
	assert.Len(t, inProgress, 1)
	assert.Equal(t, "first", inProgress[0].Name)
	assert.Equal(t, IN_PROGRESS_JOB, inProgress[0].JobStatus.Name)
	assert.Equal(t, int64(1), paging.Total)
}

func TestFetchJobs(t *testing.T) {
	InitializeTestDb()

	require.Nil(t, CreateJob("a", "handler", "{}", false))
	require.Nil(t, CreateJob("b", "handler", "{}", false))

	jobs, paging, err := FetchJobs(0)
	require.Nil(t, err)
	assert.Len(t, jobs, 2)
	assert.Equal(t, "b", jobs[0].Name)
	assert.Equal(t, &Paging{Total: 2, Page: 1, Pages: 1}, paging)
}
