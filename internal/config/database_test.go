package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"alfredoptarigan/interview-coach/internal/models"
)

func TestInterviewLogIndexes(t *testing.T) {
	table := models.InterviewLog{}.TableName()

	require.Len(t, interviewLogIndexes, 2)
	for _, stmt := range interviewLogIndexes {
		assert.Contains(t, stmt, "IF NOT EXISTS")
		assert.Contains(t, stmt, " ON "+table+" ")
	}
	assert.Contains(t, interviewLogIndexes[0], "(LOWER(candidate_name))")
	assert.Contains(t, interviewLogIndexes[1], "(created_at DESC, timestamp DESC)")
}
