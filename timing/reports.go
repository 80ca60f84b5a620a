package timing

import (
	"context"
	"net/http"
)

// ReportsClient generates aggregate reports
type ReportsClient struct {
	client *Client
}

// Generate runs a report. Plain string lists in the query (projects,
// columns, sort) are sent untouched; structured filters have their keys
// translated like any other field.
func (r *ReportsClient) Generate(ctx context.Context, query *ReportQuery) ([]ReportRow, error) {
	params, err := queryParams(query)
	if err != nil {
		return nil, err
	}

	return send[[]ReportRow](ctx, r.client, &Request{
		Operation: "reports.generate",
		Method:    http.MethodGet,
		Path:      "/report",
		Query:     params,
	})
}
