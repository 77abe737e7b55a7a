package api

import (
	"github.com/mindluster/kanban-api/internal/domain"
)

// Common request/response structures

// CreateTaskRequest defines the payload for the task creation endpoint.
type CreateTaskRequest struct {
	Title       string   `json:"title"       validate:"required"`
	Description string   `json:"description"`
	Column      string   `json:"column"      validate:"omitempty,oneof=backlog in-progress review done"`
	Position    *float64 `json:"position"`
}

// UpdateTaskRequest defines the payload for the partial-update endpoint.
// Absent fields are left untouched; an empty body is a successful no-op.
type UpdateTaskRequest struct {
	Title       *string  `json:"title"`
	Description *string  `json:"description"`
	Column      *string  `json:"column"      validate:"omitempty,oneof=backlog in-progress review done"`
	Position    *float64 `json:"position"`
}

// TaskResponse is the wire representation of a task. Position is null for
// tasks that have never been manually ordered.
type TaskResponse struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Column      string   `json:"column"`
	Position    *float64 `json:"position"`
}

// taskToResponse converts a domain task to its wire representation.
func taskToResponse(t *domain.Task) TaskResponse {
	return TaskResponse{
		ID:          t.ID,
		Title:       t.Title,
		Description: t.Description,
		Column:      string(t.Column),
		Position:    t.Position,
	}
}

// tasksToResponse converts a listing. The zero-length case encodes as []
// rather than null.
func tasksToResponse(tasks []*domain.Task) []TaskResponse {
	out := make([]TaskResponse, 0, len(tasks))
	for _, t := range tasks {
		out = append(out, taskToResponse(t))
	}
	return out
}
