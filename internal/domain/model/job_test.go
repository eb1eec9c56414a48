package model

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestJobStatusValid(t *testing.T) {
	for _, s := range []JobStatus{JobStatusPending, JobStatusProcessing, JobStatusCompleted, JobStatusFailed} {
		assert.True(t, s.Valid(), string(s))
	}
	assert.False(t, JobStatus("running").Valid())
	assert.False(t, JobStatus("").Valid())
}

func TestJobStatusTerminal(t *testing.T) {
	assert.False(t, JobStatusPending.Terminal())
	assert.False(t, JobStatusProcessing.Terminal())
	assert.True(t, JobStatusCompleted.Terminal())
	assert.True(t, JobStatusFailed.Terminal())
}

func TestCreateInspectionRequestValidate(t *testing.T) {
	req := &CreateInspectionRequest{Image: "alpine:3.20"}
	assert.NoError(t, req.Validate())

	assert.Error(t, (&CreateInspectionRequest{}).Validate())
	assert.Error(t, (&CreateInspectionRequest{Image: "   "}).Validate())
}
