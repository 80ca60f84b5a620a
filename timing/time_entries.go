package timing

import (
	"context"
	"net/http"
)

const timeEntriesCollection = "time-entries"

// TimeEntriesClient manages time entries and the running timer
type TimeEntriesClient struct {
	client *Client
}

// List retrieves time entries. A nil query sends no parameters.
func (t *TimeEntriesClient) List(ctx context.Context, query *TimeEntryListQuery) ([]TimeEntry, error) {
	params, err := queryParams(query)
	if err != nil {
		return nil, err
	}

	return send[[]TimeEntry](ctx, t.client, &Request{
		Operation: "time_entries.list",
		Method:    http.MethodGet,
		Path:      "/time-entries",
		Query:     params,
	})
}

// Get retrieves a single time entry by id or reference
func (t *TimeEntriesClient) Get(ctx context.Context, id string) (*TimeEntry, error) {
	path, err := resourcePath(timeEntriesCollection, id)
	if err != nil {
		return nil, err
	}

	return send[*TimeEntry](ctx, t.client, &Request{
		Operation: "time_entries.get",
		Method:    http.MethodGet,
		Path:      path,
	})
}

// Create records a finished time entry
func (t *TimeEntriesClient) Create(ctx context.Context, opts CreateTimeEntryOptions) (*TimeEntry, error) {
	body, err := bodyPayload(opts)
	if err != nil {
		return nil, err
	}

	return send[*TimeEntry](ctx, t.client, &Request{
		Operation: "time_entries.create",
		Method:    http.MethodPost,
		Path:      "/time-entries",
		Body:      body,
	})
}

// Update applies a partial update to a time entry
func (t *TimeEntriesClient) Update(ctx context.Context, id string, opts UpdateTimeEntryOptions) (*TimeEntry, error) {
	path, err := resourcePath(timeEntriesCollection, id)
	if err != nil {
		return nil, err
	}
	body, err := bodyPayload(opts)
	if err != nil {
		return nil, err
	}

	return send[*TimeEntry](ctx, t.client, &Request{
		Operation: "time_entries.update",
		Method:    http.MethodPut,
		Path:      path,
		Body:      body,
	})
}

// Delete deletes a time entry. The response body is ignored.
func (t *TimeEntriesClient) Delete(ctx context.Context, id string) error {
	path, err := resourcePath(timeEntriesCollection, id)
	if err != nil {
		return err
	}

	_, err = t.client.call(ctx, &Request{
		Operation: "time_entries.delete",
		Method:    http.MethodDelete,
		Path:      path,
	})
	return err
}

// DeleteMany deletes several time entries concurrently and reports each outcome.
func (t *TimeEntriesClient) DeleteMany(ctx context.Context, ids []string) BatchResult {
	return deleteMany(ctx, ids, t.Delete)
}

// Start starts a timer. Whether an already running timer is replaced is
// up to the service; ReplaceExisting is forwarded as given.
func (t *TimeEntriesClient) Start(ctx context.Context, opts StartTimerOptions) (*TimeEntry, error) {
	body, err := bodyPayload(opts)
	if err != nil {
		return nil, err
	}

	return send[*TimeEntry](ctx, t.client, &Request{
		Operation: "time_entries.start",
		Method:    http.MethodPost,
		Path:      "/time-entries/start",
		Body:      body,
	})
}

// Stop stops the running timer and returns the finished entry
func (t *TimeEntriesClient) Stop(ctx context.Context) (*TimeEntry, error) {
	return send[*TimeEntry](ctx, t.client, &Request{
		Operation: "time_entries.stop",
		Method:    http.MethodPut,
		Path:      "/time-entries/stop",
		Body:      map[string]any{},
	})
}
