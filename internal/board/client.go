package board

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"

	"github.com/mindluster/kanban-api/internal/domain"
)

// Client implements Service against the tracker's HTTP API.
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// NewClient creates a Client for the API at baseURL.
// A nil httpClient uses http.DefaultClient; callers apply timeouts there.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Client{
		baseURL:    baseURL,
		httpClient: httpClient,
	}
}

// Ensure Client implements the Service interface
var _ Service = (*Client)(nil)

// ListTasks implements Service.ListTasks.
// The server is always asked for manual order first, then ID descending, so
// page slices are consistent across fetches.
func (c *Client) ListTasks(
	ctx context.Context,
	column domain.Column,
	page int,
	search string,
) ([]*domain.Task, error) {
	if page < 1 {
		page = 1
	}

	params := url.Values{}
	if column != "" {
		params.Set("column", string(column))
	}
	if search != "" {
		params.Set("q", search)
	}
	params.Set("_start", strconv.Itoa((page-1)*PageSize))
	params.Set("_limit", strconv.Itoa(PageSize))
	params.Set("_sort", "position,id")
	params.Set("_order", "asc,desc")

	var tasks []*domain.Task
	if err := c.do(ctx, http.MethodGet, "/api/tasks?"+params.Encode(), nil, &tasks); err != nil {
		return nil, err
	}
	return tasks, nil
}

// CreateTask implements Service.CreateTask.
func (c *Client) CreateTask(ctx context.Context, draft TaskDraft) (*domain.Task, error) {
	var task domain.Task
	if err := c.do(ctx, http.MethodPost, "/api/tasks", draft, &task); err != nil {
		return nil, err
	}
	return &task, nil
}

// UpdateTask implements Service.UpdateTask.
func (c *Client) UpdateTask(ctx context.Context, id string, update TaskUpdate) error {
	return c.do(ctx, http.MethodPatch, "/api/tasks/"+url.PathEscape(id), update, nil)
}

// DeleteTask implements Service.DeleteTask.
func (c *Client) DeleteTask(ctx context.Context, id string) error {
	return c.do(ctx, http.MethodDelete, "/api/tasks/"+url.PathEscape(id), nil, nil)
}

// RenumberColumn implements Service.RenumberColumn.
func (c *Client) RenumberColumn(ctx context.Context, column domain.Column) error {
	path := "/api/columns/" + url.PathEscape(string(column)) + "/renumber"
	return c.do(ctx, http.MethodPost, path, nil, nil)
}

// do executes one request, encoding body as JSON when non-nil and decoding
// the response into out when non-nil.
func (c *Client) do(ctx context.Context, method, path string, body, out any) error {
	var reader io.Reader
	if body != nil {
		encoded, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("failed to encode request body: %w", err)
		}
		reader = bytes.NewReader(encoded)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode >= http.StatusBadRequest {
		return decodeAPIError(resp)
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("failed to decode response: %w", err)
		}
	}

	return nil
}

// APIError is an error response from the server.
type APIError struct {
	StatusCode int
	Message    string `json:"error"`
	TraceID    string `json:"trace_id"`
}

// Error implements the error interface for APIError.
func (e *APIError) Error() string {
	if e.TraceID != "" {
		return fmt.Sprintf("api error %d: %s (trace %s)", e.StatusCode, e.Message, e.TraceID)
	}
	return fmt.Sprintf("api error %d: %s", e.StatusCode, e.Message)
}

func decodeAPIError(resp *http.Response) error {
	apiErr := &APIError{StatusCode: resp.StatusCode}
	if err := json.NewDecoder(resp.Body).Decode(apiErr); err != nil || apiErr.Message == "" {
		apiErr.Message = http.StatusText(resp.StatusCode)
	}
	return apiErr
}
