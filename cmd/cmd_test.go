package cmd

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/timekeeper/metrics"
)

func TestParseDate(t *testing.T) {
	tests := []struct {
		name    string
		value   string
		want    *time.Time
		wantErr bool
	}{
		{name: "empty", value: ""},
		{
			name:  "rfc3339",
			value: "2024-03-01T09:30:00+01:00",
			want:  ptr(time.Date(2024, 3, 1, 9, 30, 0, 0, time.FixedZone("", 3600))),
		},
		{
			name:  "calendar date",
			value: "2024-03-01",
			want:  ptr(time.Date(2024, 3, 1, 0, 0, 0, 0, time.Local)),
		},
		{name: "garbage", value: "yesterday", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseDate(tt.value)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.want == nil {
				assert.Nil(t, got)
				return
			}
			require.NotNil(t, got)
			assert.True(t, tt.want.Equal(*got), "want %s, got %s", tt.want, got)
		})
	}
}

func TestProjectRefs(t *testing.T) {
	assert.Equal(t, []string{"/projects/1", "/projects/2"}, projectRefs([]string{"1", " /projects/2 ", ""}))
	assert.Empty(t, projectRefs(nil))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0h00m", formatDuration(0))
	assert.Equal(t, "1h05m", formatDuration(65*time.Minute))
	assert.Equal(t, "26h00m", formatDuration(26*time.Hour+10*time.Second))
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "Client ...", truncate("Client ▸ Website", 10))
}

func TestPrintMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := metrics.NewClientMetrics(reg)
	m.Observe("projects.list", "GET", 200, 250*time.Millisecond)

	var buf bytes.Buffer
	require.NoError(t, printMetrics(&buf, reg))
	assert.Contains(t, buf.String(), `timekeeper_client_requests_total{method="GET",operation="projects.list",status="200"} 1`)
	assert.Contains(t, buf.String(), "timekeeper_client_request_duration_seconds")
}

func TestReportCommand(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/report", r.URL.Path)
		assert.Equal(t, "Bearer cli-token", r.Header.Get("Authorization"))
		assert.Equal(t, []string{"title"}, r.URL.Query()["columns[]"])
		assert.Equal(t, "true", r.URL.Query().Get("include_project_data"))
		_, _ = w.Write([]byte(`{"data":[
			{"title":"Code review","duration":7200},
			{"title":"Standup","duration":900}
		]}`))
	}))
	defer server.Close()

	t.Setenv("TIMEKEEPER_API_TOKEN", "cli-token")
	t.Setenv("TIMEKEEPER_API_BASE_URL", server.URL)
	t.Setenv("TIMEKEEPER_LOGGING_LEVEL", "error")
	t.Cleanup(func() {
		jsonOutput = false
		reportWhere = ""
		reportColumns = nil
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
	})

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetArgs([]string{"report", "--column", "title", "--where", "hours(duration) >= 1", "--json"})
	require.NoError(t, rootCmd.Execute())

	var rows []map[string]any
	require.NoError(t, json.Unmarshal(out.Bytes(), &rows))
	require.Len(t, rows, 1)
	assert.Equal(t, "Code review", rows[0]["title"])
}

func TestPrintReport(t *testing.T) {
	var buf bytes.Buffer
	printReport(&buf, []map[string]any{
		{"duration": float64(3600), "project": map[string]any{"self": "/projects/1", "title_chain": []any{"Client", "Website"}}, "title": "Review"},
	})

	got := buf.String()
	assert.Contains(t, got, "DURATION")
	assert.Contains(t, got, "PROJECT")
	assert.Contains(t, got, "Client ▸ Website")
	assert.Contains(t, got, "1 rows, 1h00m total")

	buf.Reset()
	printReport(&buf, nil)
	assert.Equal(t, "No report rows found.\n", buf.String())
}

func ptr[T any](v T) *T {
	return &v
}
