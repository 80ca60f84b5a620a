package cmd

import (
	"fmt"
	"io"
	"sort"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/timekeeper/filter"
	"github.com/s0up4200/timekeeper/timing"
)

var (
	reportFrom     string
	reportTo       string
	reportProjects []string
	reportColumns  []string
	reportGroupBy  string
	reportSearch   string
	reportWhere    string
)

// reportCmd represents the report command
var reportCmd = &cobra.Command{
	Use:   "report",
	Short: "Generate an aggregate report",
	Long: `Generate a report of tracked time, grouped by the requested columns.

Rows can be narrowed locally with an expression, for example:

  timekeeper report --column project --column title --where 'hours(duration) >= 2'`,
	Args: cobra.NoArgs,
	RunE: runReport,
}

func init() {
	rootCmd.AddCommand(reportCmd)

	reportCmd.Flags().StringVar(&reportFrom, "from", "", "earliest start date (YYYY-MM-DD or RFC 3339)")
	reportCmd.Flags().StringVar(&reportTo, "to", "", "latest start date (YYYY-MM-DD or RFC 3339)")
	reportCmd.Flags().StringSliceVar(&reportProjects, "project", nil, "restrict to project ids (repeatable)")
	reportCmd.Flags().StringSliceVar(&reportColumns, "column", nil, "group by column: project, title, notes, timespan, user (repeatable)")
	reportCmd.Flags().StringVar(&reportGroupBy, "group", "", "timespan grouping: exact, day, week, month, year")
	reportCmd.Flags().StringVar(&reportSearch, "search", "", "search titles and notes")
	reportCmd.Flags().StringVarP(&reportWhere, "where", "w", "", "filter expression applied to the rows")
}

func runReport(cmd *cobra.Command, args []string) error {
	// Compile the filter before calling the API so typos fail fast
	var rowFilter *filter.Filter
	if reportWhere != "" {
		var err error
		rowFilter, err = filter.Compile(reportWhere)
		if err != nil {
			return fmt.Errorf("invalid filter expression: %w", err)
		}
	}

	from, err := parseDate(reportFrom)
	if err != nil {
		return err
	}
	to, err := parseDate(reportTo)
	if err != nil {
		return err
	}

	query := &timing.ReportQuery{
		StartDateMin:         from,
		StartDateMax:         to,
		Projects:             projectRefs(reportProjects),
		Columns:              reportColumns,
		TimespanGroupingMode: reportGroupBy,
		SearchQuery:          reportSearch,
		IncludeProjectData:   timing.Bool(true),
	}

	rows, err := client.Reports.Generate(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to generate report: %w", err)
	}

	plain := make([]map[string]any, len(rows))
	for i, row := range rows {
		plain[i] = row
	}
	if rowFilter != nil {
		logger.Debug().Str("filter", rowFilter.Expression()).Int("rows", len(plain)).Msg("Filtering report rows")
		if plain, err = rowFilter.Apply(plain); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, plain)
	}
	printReport(out, plain)
	return nil
}

func printReport(out io.Writer, rows []map[string]any) {
	if len(rows) == 0 {
		fmt.Fprintln(out, "No report rows found.")
		return
	}

	w := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	defer w.Flush()

	columns := reportColumnsOf(rows)
	header := append([]string{"DURATION"}, upper(columns)...)
	fmt.Fprintln(w, strings.Join(header, "\t"))
	fmt.Fprintln(w, strings.Repeat("━", 85))

	var total time.Duration
	for _, row := range rows {
		r := timing.ReportRow(row)
		d := time.Duration(r.Duration() * float64(time.Second))
		total += d

		cells := []string{formatDuration(d)}
		for _, c := range columns {
			cells = append(cells, reportCell(r, c))
		}
		fmt.Fprintln(w, strings.Join(cells, "\t"))
	}
	fmt.Fprintln(w, strings.Repeat("━", 85))
	fmt.Fprintf(w, "%d rows, %s total\n", len(rows), formatDuration(total))
}

// reportColumnsOf lists the keys present in the rows, minus duration
func reportColumnsOf(rows []map[string]any) []string {
	seen := map[string]bool{"duration": true}
	var columns []string
	for _, row := range rows {
		for k := range row {
			if !seen[k] {
				seen[k] = true
				columns = append(columns, k)
			}
		}
	}
	sort.Strings(columns)
	return columns
}

func reportCell(r timing.ReportRow, column string) string {
	switch v := r[column].(type) {
	case nil:
		return ""
	case string:
		return v
	case map[string]any:
		if column == "project" {
			return r.ProjectTitle()
		}
	}
	return fmt.Sprint(r[column])
}

func upper(values []string) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = strings.ToUpper(v)
	}
	return out
}
