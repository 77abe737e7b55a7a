package api

import (
	"errors"
	"io"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"github.com/mindluster/kanban-api/internal/api/shared"
	"github.com/mindluster/kanban-api/internal/domain"
	"github.com/mindluster/kanban-api/internal/platform/logger"
	"github.com/mindluster/kanban-api/internal/service"
	"github.com/mindluster/kanban-api/internal/store"
)

// TaskHandler handles task-related HTTP requests
type TaskHandler struct {
	taskService *service.TaskService
	logger      *slog.Logger
}

// NewTaskHandler creates a new TaskHandler
func NewTaskHandler(taskService *service.TaskService, logger *slog.Logger) *TaskHandler {
	if logger == nil {
		// ALLOW-PANIC: Constructor enforcing required dependency
		panic("logger cannot be nil for TaskHandler")
	}

	return &TaskHandler{
		taskService: taskService,
		logger:      logger.With(slog.String("component", "task_handler")),
	}
}

// ListTasks handles GET /tasks requests.
// Query parameters: column (board column filter), q (case-insensitive text
// search), _start/_limit (offset pagination), _sort/_order (comma-separated
// multi-field sort, fields restricted to {id, position}).
func (h *TaskHandler) ListTasks(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	params := r.URL.Query()

	offset, err := parseNonNegative(params.Get("_start"), 0)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid _start")
		return
	}
	limit, err := parseNonNegative(params.Get("_limit"), 0)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid _limit")
		return
	}

	req := service.ListRequest{
		Column:     params.Get("column"),
		Search:     params.Get("q"),
		SortFields: splitParam(params.Get("_sort")),
		SortOrders: splitParam(params.Get("_order")),
		Offset:     offset,
		Limit:      limit,
	}

	tasks, err := h.taskService.List(r.Context(), req)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("listed tasks",
		slog.String("column", req.Column),
		slog.Int("count", len(tasks)))
	shared.RespondWithJSON(w, r, http.StatusOK, tasksToResponse(tasks))
}

// CreateTask handles POST /tasks requests.
// Returns 201 with the persisted record; an empty title is rejected with 400
// and nothing is persisted.
func (h *TaskHandler) CreateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)

	var req CreateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	task, err := h.taskService.Create(r.Context(), req.Title, req.Description, req.Column, req.Position)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task created",
		slog.String("task_id", task.ID),
		slog.String("column", string(task.Column)))
	shared.RespondWithJSON(w, r, http.StatusCreated, taskToResponse(task))
}

// GetTask handles GET /tasks/{id} requests.
func (h *TaskHandler) GetTask(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	task, err := h.taskService.Get(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, taskToResponse(task))
}

// UpdateTask handles PATCH /tasks/{id} requests.
// Applies only the fields present in the body; absent fields are untouched.
// An empty patch succeeds with 204 without touching the store.
func (h *TaskHandler) UpdateTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := chi.URLParam(r, "id")

	var req UpdateTaskRequest
	if err := shared.DecodeJSON(r, &req); err != nil && !errors.Is(err, io.EOF) {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if err := shared.ValidateRequest(&req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, SanitizeValidationError(err))
		return
	}

	patch := store.TaskPatch{
		Title:       req.Title,
		Description: req.Description,
		Position:    req.Position,
	}
	if req.Column != nil {
		col := domain.Column(*req.Column)
		patch.Column = &col
	}

	if err := h.taskService.Update(r.Context(), id, patch); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task updated", slog.String("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// DeleteTask handles DELETE /tasks/{id} requests.
// Deletion is permanent and idempotent: deleting a missing ID still
// returns 204.
func (h *TaskHandler) DeleteTask(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	id := chi.URLParam(r, "id")

	if err := h.taskService.Delete(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Debug("task deleted", slog.String("task_id", id))
	w.WriteHeader(http.StatusNoContent)
}

// RenumberColumn handles POST /columns/{column}/renumber requests.
// Rewrites the column's positions to evenly spaced values, restoring
// headroom after heavy re-ordering has exhausted the fractional gaps.
func (h *TaskHandler) RenumberColumn(w http.ResponseWriter, r *http.Request) {
	log := logger.FromContextOrDefault(r.Context(), h.logger)
	column := chi.URLParam(r, "column")

	if err := h.taskService.RenumberColumn(r.Context(), column); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	log.Info("column renumbered", slog.String("column", column))
	w.WriteHeader(http.StatusNoContent)
}

// parseNonNegative parses an optional non-negative integer query parameter.
func parseNonNegative(raw string, def int) (int, error) {
	if raw == "" {
		return def, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 {
		return 0, errors.New("must be a non-negative integer")
	}
	return n, nil
}

// splitParam splits a comma-separated parameter, dropping empty entries.
func splitParam(raw string) []string {
	if raw == "" {
		return nil
	}
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if trimmed := strings.TrimSpace(p); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
