package board

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mindluster/kanban-api/internal/domain"
)

func TestClientListTasks(t *testing.T) {
	t.Parallel()

	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodGet, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)
		gotQuery = r.URL.Query()

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[{"id":"1","title":"a","description":"","column":"backlog","position":1024}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	tasks, err := client.ListTasks(context.Background(), domain.ColumnBacklog, 3, "urgent")

	require.NoError(t, err)
	require.Len(t, tasks, 1)
	assert.Equal(t, "1", tasks[0].ID)
	require.NotNil(t, tasks[0].Position)
	assert.Equal(t, 1024.0, *tasks[0].Position)

	// Pages translate to offset pagination, always under the full ordering.
	assert.Equal(t, []string{"backlog"}, gotQuery["column"])
	assert.Equal(t, []string{"urgent"}, gotQuery["q"])
	assert.Equal(t, []string{"20"}, gotQuery["_start"])
	assert.Equal(t, []string{"10"}, gotQuery["_limit"])
	assert.Equal(t, []string{"position,id"}, gotQuery["_sort"])
	assert.Equal(t, []string{"asc,desc"}, gotQuery["_order"])
}

func TestClientCreateTask(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/tasks", r.URL.Path)

		var draft TaskDraft
		require.NoError(t, json.NewDecoder(r.Body).Decode(&draft))
		assert.Equal(t, "New card", draft.Title)

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_ = json.NewEncoder(w).Encode(domain.Task{
			ID:     "77",
			Title:  draft.Title,
			Column: domain.ColumnBacklog,
		})
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	task, err := client.CreateTask(context.Background(), TaskDraft{Title: "New card"})

	require.NoError(t, err)
	assert.Equal(t, "77", task.ID)
}

func TestClientUpdateTask(t *testing.T) {
	t.Parallel()

	var gotBody map[string]any
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPatch, r.Method)
		require.Equal(t, "/api/tasks/42", r.URL.Path)
		require.NoError(t, json.NewDecoder(r.Body).Decode(&gotBody))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	pos := 1536.0
	col := domain.ColumnDone
	err := client.UpdateTask(context.Background(), "42", TaskUpdate{Column: &col, Position: &pos})

	require.NoError(t, err)
	// Only the set fields cross the wire.
	assert.Equal(t, map[string]any{"column": "done", "position": 1536.0}, gotBody)
}

func TestClientRenumberColumn(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/columns/in-progress/renumber", r.URL.Path)
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	assert.NoError(t, client.RenumberColumn(context.Background(), domain.ColumnInProgress))
}

func TestClientDecodesAPIError(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusNotFound)
		_, _ = w.Write([]byte(`{"error":"Task not found","trace_id":"abc-123"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.DeleteTask(context.Background(), "404")

	require.Error(t, err)
	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusNotFound, apiErr.StatusCode)
	assert.Equal(t, "Task not found", apiErr.Message)
	assert.Equal(t, "abc-123", apiErr.TraceID)
	assert.Contains(t, apiErr.Error(), "abc-123")
}

func TestClientErrorWithoutBody(t *testing.T) {
	t.Parallel()

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(server.URL, nil)
	err := client.RenumberColumn(context.Background(), domain.ColumnDone)

	var apiErr *APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusText(http.StatusServiceUnavailable), apiErr.Message)
}
