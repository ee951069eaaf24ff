package tasks_enums

import "strings"

// InferStatusFromBoard picks the status a task takes when moved onto a
// board. An explicit board mapping wins. Otherwise the lowercase title is
// matched: "to do"/"todo", then "progress", then "done". The second result
// is false when nothing matches and the status should stay as it is.
func InferStatusFromBoard(boardTitle string, mapping *TaskStatus) (TaskStatus, bool) {
	if mapping != nil && mapping.IsValid() {
		return *mapping, true
	}

	title := strings.ToLower(boardTitle)

	switch {
	case strings.Contains(title, "to do"), strings.Contains(title, "todo"):
		return TaskStatusTodo, true
	case strings.Contains(title, "progress"):
		return TaskStatusInProgress, true
	case strings.Contains(title, "done"):
		return TaskStatusDone, true
	default:
		return "", false
	}
}
