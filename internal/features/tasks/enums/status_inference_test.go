package tasks_enums

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_InferStatusFromBoard_WithTitleOnly_MatchesTitleKeywords(t *testing.T) {
	cases := []struct {
		title    string
		expected TaskStatus
	}{
		{"To Do", TaskStatusTodo},
		{"TODO list", TaskStatusTodo},
		{"In Progress", TaskStatusInProgress},
		{"work in PROGRESS", TaskStatusInProgress},
		{"Done", TaskStatusDone},
		{"Done this week", TaskStatusDone},
	}

	for _, c := range cases {
		status, ok := InferStatusFromBoard(c.title, nil)

		assert.True(t, ok, c.title)
		assert.Equal(t, c.expected, status, c.title)
	}
}

func Test_InferStatusFromBoard_WhenTitleDoesNotMatch_ReturnsFalse(t *testing.T) {
	_, ok := InferStatusFromBoard("Review", nil)

	assert.False(t, ok)
}

func Test_InferStatusFromBoard_WhenBoardHasMapping_MappingWins(t *testing.T) {
	mapping := TaskStatusDone

	status, ok := InferStatusFromBoard("To Do later", &mapping)

	assert.True(t, ok)
	assert.Equal(t, TaskStatusDone, status)
}

func Test_InferStatusFromBoard_WhenMappingIsInvalid_FallsBackToTitle(t *testing.T) {
	mapping := TaskStatus("archived")

	status, ok := InferStatusFromBoard("In Progress", &mapping)

	assert.True(t, ok)
	assert.Equal(t, TaskStatusInProgress, status)
}

func Test_InferStatusFromBoard_WhenTitleHasTodoAndDone_FirstRuleWins(t *testing.T) {
	status, ok := InferStatusFromBoard("todo or done", nil)

	assert.True(t, ok)
	assert.Equal(t, TaskStatusTodo, status)
}
