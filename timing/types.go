package timing

import (
	"path"
	"strings"
	"time"
)

// Reference points at a resource instance, e.g. {"self": "/projects/123"}.
type Reference struct {
	Self string `json:"self"`
}

// ID returns the trailing identifier of the reference.
func (r Reference) ID() string {
	return referenceID(r.Self)
}

// Project as returned by the service. Field names follow the wire.
type Project struct {
	Self              string     `json:"self"`
	Title             string     `json:"title"`
	TitleChain        []string   `json:"title_chain,omitempty"`
	Color             string     `json:"color,omitempty"`
	ProductivityScore float64    `json:"productivity_score"`
	IsArchived        bool       `json:"is_archived"`
	Notes             string     `json:"notes,omitempty"`
	Parent            *Reference `json:"parent,omitempty"`
	Children          []Project  `json:"children,omitempty"`
}

// ID returns the trailing identifier of the project reference.
func (p Project) ID() string {
	return referenceID(p.Self)
}

// FullTitle joins the title chain, falling back to the title.
func (p Project) FullTitle() string {
	if len(p.TitleChain) == 0 {
		return p.Title
	}
	return JoinTitleChain(p.TitleChain)
}

// JoinTitleChain renders a project's ancestry, e.g. "Client ▸ Website".
func JoinTitleChain(chain []string) string {
	return strings.Join(chain, " ▸ ")
}

// TimeEntry as returned by the service.
type TimeEntry struct {
	Self      string     `json:"self"`
	StartDate *time.Time `json:"start_date,omitempty"`
	EndDate   *time.Time `json:"end_date,omitempty"`
	// Duration is in seconds.
	Duration  float64  `json:"duration"`
	Project   *Project `json:"project,omitempty"`
	Title     string   `json:"title,omitempty"`
	Notes     string   `json:"notes,omitempty"`
	IsRunning bool     `json:"is_running"`
}

// ID returns the trailing identifier of the time entry reference.
func (e TimeEntry) ID() string {
	return referenceID(e.Self)
}

// Elapsed returns the entry duration as a time.Duration.
func (e TimeEntry) Elapsed() time.Duration {
	return time.Duration(e.Duration * float64(time.Second))
}

// ReportRow is one aggregated row. Its keys depend on the requested
// columns, so it stays a raw wire mapping.
type ReportRow map[string]any

// Duration returns the row's duration in seconds, or 0.
func (r ReportRow) Duration() float64 {
	switch v := r["duration"].(type) {
	case float64:
		return v
	case int:
		return float64(v)
	}
	return 0
}

// Project returns the row's project reference, if the row carries one.
func (r ReportRow) Project() string {
	switch v := r["project"].(type) {
	case string:
		return v
	case map[string]any:
		s, _ := v["self"].(string)
		return s
	}
	return ""
}

// ProjectTitle returns a display title for the row's project: the joined
// title chain or title of an embedded project, else its reference.
func (r ReportRow) ProjectTitle() string {
	p, ok := r["project"].(map[string]any)
	if !ok {
		return r.Project()
	}
	if raw, ok := p["title_chain"].([]any); ok && len(raw) > 0 {
		chain := make([]string, 0, len(raw))
		for _, c := range raw {
			if s, ok := c.(string); ok {
				chain = append(chain, s)
			}
		}
		return JoinTitleChain(chain)
	}
	if title, ok := p["title"].(string); ok && title != "" {
		return title
	}
	return r.Project()
}

// ProjectListQuery filters GET /projects.
type ProjectListQuery struct {
	Title        string `json:"title,omitempty"`
	HideArchived *bool  `json:"hideArchived,omitempty"`
}

// CreateProjectOptions is the body of POST /projects.
type CreateProjectOptions struct {
	Title             string   `json:"title" validate:"required"`
	Parent            string   `json:"parent,omitempty"`
	Color             string   `json:"color,omitempty" validate:"omitempty,hexcolor"`
	ProductivityScore *float64 `json:"productivityScore,omitempty" validate:"omitempty,min=-1,max=1"`
	IsArchived        *bool    `json:"isArchived,omitempty"`
	Notes             string   `json:"notes,omitempty"`
}

// UpdateProjectOptions is a partial update; nil fields are not sent.
type UpdateProjectOptions struct {
	Title             *string  `json:"title,omitempty" validate:"omitempty,min=1"`
	Parent            *string  `json:"parent,omitempty"`
	Color             *string  `json:"color,omitempty" validate:"omitempty,hexcolor"`
	ProductivityScore *float64 `json:"productivityScore,omitempty" validate:"omitempty,min=-1,max=1"`
	IsArchived        *bool    `json:"isArchived,omitempty"`
	Notes             *string  `json:"notes,omitempty"`
}

// TimeEntryListQuery filters GET /time-entries. Limit and Offset are
// passed to the service as-is.
type TimeEntryListQuery struct {
	StartDateMin         *time.Time `json:"startDateMin,omitempty"`
	StartDateMax         *time.Time `json:"startDateMax,omitempty"`
	Projects             []string   `json:"projects,omitempty"`
	IncludeChildProjects *bool      `json:"includeChildProjects,omitempty"`
	SearchQuery          string     `json:"searchQuery,omitempty"`
	IsRunning            *bool      `json:"isRunning,omitempty"`
	IncludeProjectData   *bool      `json:"includeProjectData,omitempty"`
	Limit                *int       `json:"limit,omitempty" validate:"omitempty,min=1"`
	Offset               *int       `json:"offset,omitempty" validate:"omitempty,min=0"`
}

// CreateTimeEntryOptions is the body of POST /time-entries.
type CreateTimeEntryOptions struct {
	StartDate       *time.Time `json:"startDate" validate:"required"`
	EndDate         *time.Time `json:"endDate" validate:"required"`
	Project         string     `json:"project,omitempty"`
	Title           string     `json:"title,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ReplaceExisting *bool      `json:"replaceExisting,omitempty"`
}

// UpdateTimeEntryOptions is a partial update; nil fields are not sent.
type UpdateTimeEntryOptions struct {
	StartDate       *time.Time `json:"startDate,omitempty"`
	EndDate         *time.Time `json:"endDate,omitempty"`
	Project         *string    `json:"project,omitempty"`
	Title           *string    `json:"title,omitempty"`
	Notes           *string    `json:"notes,omitempty"`
	ReplaceExisting *bool      `json:"replaceExisting,omitempty"`
}

// StartTimerOptions is the body of POST /time-entries/start.
// ReplaceExisting is forwarded unchanged; whether a running timer may be
// replaced is decided by the service.
type StartTimerOptions struct {
	StartDate       *time.Time `json:"startDate,omitempty"`
	Project         string     `json:"project,omitempty"`
	Title           string     `json:"title,omitempty"`
	Notes           string     `json:"notes,omitempty"`
	ReplaceExisting *bool      `json:"replaceExisting,omitempty"`
}

// ReportQuery parameterises GET /report.
type ReportQuery struct {
	StartDateMin         *time.Time     `json:"startDateMin,omitempty"`
	StartDateMax         *time.Time     `json:"startDateMax,omitempty"`
	Projects             []string       `json:"projects,omitempty"`
	IncludeChildProjects *bool          `json:"includeChildProjects,omitempty"`
	SearchQuery          string         `json:"searchQuery,omitempty"`
	Columns              []string       `json:"columns,omitempty" validate:"omitempty,dive,oneof=project title notes timespan user"`
	ProjectGroupingLevel *int           `json:"projectGroupingLevel,omitempty" validate:"omitempty,min=-1"`
	IncludeProjectData   *bool          `json:"includeProjectData,omitempty"`
	TimespanGroupingMode string         `json:"timespanGroupingMode,omitempty" validate:"omitempty,oneof=exact day week month year"`
	Sort                 []string       `json:"sort,omitempty"`
	Filters              []ReportFilter `json:"filters,omitempty" validate:"omitempty,dive"`
}

// ReportFilter narrows a report on one field.
type ReportFilter struct {
	FieldName string `json:"fieldName" validate:"required"`
	MatchMode string `json:"matchMode,omitempty" validate:"omitempty,oneof=exact contains prefix"`
	Value     any    `json:"value"`
}

// Bool returns a pointer to v, for optional boolean fields.
func Bool(v bool) *bool { return &v }

// String returns a pointer to v, for optional string fields.
func String(v string) *string { return &v }

// Int returns a pointer to v, for optional integer fields.
func Int(v int) *int { return &v }

// Float returns a pointer to v, for optional float fields.
func Float(v float64) *float64 { return &v }

// Time returns a pointer to v, for optional date fields.
func Time(v time.Time) *time.Time { return &v }

func referenceID(ref string) string {
	if ref == "" {
		return ""
	}
	return path.Base(ref)
}
