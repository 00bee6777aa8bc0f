package domain

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestProgressPercentage(t *testing.T) {
	assert.Equal(t, 0, ProgressPercentage(0, 0))
	assert.Equal(t, 0, ProgressPercentage(5, 0))
	assert.Equal(t, 0, ProgressPercentage(0, 10))
	assert.Equal(t, 50, ProgressPercentage(5, 10))
	assert.Equal(t, 33, ProgressPercentage(1, 3))
	assert.Equal(t, 67, ProgressPercentage(2, 3))
	assert.Equal(t, 100, ProgressPercentage(10, 10))
}

func TestNewJobIDFormat(t *testing.T) {
	id := NewJobID("test.myshopify.com")

	pattern := regexp.MustCompile(`^install-test\.myshopify\.com-\d+-[0-9a-f]{8}$`)
	assert.Regexp(t, pattern, id)

	// Ids are unique across calls.
	assert.NotEqual(t, id, NewJobID("test.myshopify.com"))
}

func TestTerminal(t *testing.T) {
	job := &InstallationJob{Status: JobStatusPending}
	assert.False(t, job.Terminal())

	job.Status = JobStatusProcessing
	assert.False(t, job.Terminal())

	job.Status = JobStatusCompleted
	assert.True(t, job.Terminal())

	job.Status = JobStatusFailed
	assert.True(t, job.Terminal())
}
