package api

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mindluster/kanban-api/internal/service"
	"github.com/mindluster/kanban-api/internal/store"
)

func TestMapErrorToStatusCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		err  error
		want int
	}{
		{
			name: "task not found",
			err:  store.ErrTaskNotFound,
			want: http.StatusNotFound,
		},
		{
			name: "wrapped not found",
			err:  fmt.Errorf("get: %w", store.ErrTaskNotFound),
			want: http.StatusNotFound,
		},
		{
			name: "invalid input",
			err:  service.ErrInvalidInput,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid sort field",
			err:  service.ErrInvalidSortField,
			want: http.StatusBadRequest,
		},
		{
			name: "invalid entity",
			err:  store.ErrInvalidEntity,
			want: http.StatusBadRequest,
		},
		{
			name: "storage unavailable",
			err:  store.ErrStorageUnavailable,
			want: http.StatusServiceUnavailable,
		},
		{
			name: "unknown error",
			err:  errors.New("boom"),
			want: http.StatusInternalServerError,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.want, MapErrorToStatusCode(tc.err))
		})
	}
}

func TestGetSafeErrorMessage(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "Task not found", GetSafeErrorMessage(store.ErrTaskNotFound))
	assert.Equal(t, "Invalid sort field", GetSafeErrorMessage(service.ErrInvalidSortField))
	assert.Equal(t, "Storage unavailable", GetSafeErrorMessage(store.ErrStorageUnavailable))

	// Raw internals never reach the client.
	leaky := errors.New("pq: connection to postgres://user:secret@db failed")
	assert.Equal(t, "An unexpected error occurred", GetSafeErrorMessage(leaky))
	assert.NotContains(t, GetSafeErrorMessage(leaky), "secret")
}
