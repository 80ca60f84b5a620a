package timing

import (
	"context"
	"time"
)

// ProjectsAPI defines the project operations
type ProjectsAPI interface {
	List(ctx context.Context, query *ProjectListQuery) ([]Project, error)
	Hierarchy(ctx context.Context) ([]Project, error)
	Get(ctx context.Context, id string) (*Project, error)
	Create(ctx context.Context, opts CreateProjectOptions) (*Project, error)
	Update(ctx context.Context, id string, opts UpdateProjectOptions) (*Project, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) BatchResult
}

// TimeEntriesAPI defines the time entry and timer operations
type TimeEntriesAPI interface {
	List(ctx context.Context, query *TimeEntryListQuery) ([]TimeEntry, error)
	Get(ctx context.Context, id string) (*TimeEntry, error)
	Create(ctx context.Context, opts CreateTimeEntryOptions) (*TimeEntry, error)
	Update(ctx context.Context, id string, opts UpdateTimeEntryOptions) (*TimeEntry, error)
	Delete(ctx context.Context, id string) error
	DeleteMany(ctx context.Context, ids []string) BatchResult

	// Start starts a new timer
	Start(ctx context.Context, opts StartTimerOptions) (*TimeEntry, error)
	// Stop stops the running timer
	Stop(ctx context.Context) (*TimeEntry, error)
}

// ReportsAPI defines report generation
type ReportsAPI interface {
	Generate(ctx context.Context, query *ReportQuery) ([]ReportRow, error)
}

// MetricsRecorder receives one observation per call. status is 0 when no
// response was received.
type MetricsRecorder interface {
	Observe(operation, method string, status int, duration time.Duration)
}

// Ensure the resource clients implement their APIs at compile time.
var (
	_ ProjectsAPI    = (*ProjectsClient)(nil)
	_ TimeEntriesAPI = (*TimeEntriesClient)(nil)
	_ ReportsAPI     = (*ReportsClient)(nil)
)
