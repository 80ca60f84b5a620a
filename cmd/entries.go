package cmd

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/s0up4200/timekeeper/timing"
)

var (
	entriesFrom     string
	entriesTo       string
	entriesProjects []string
	entriesSearch   string
	entriesRunning  bool
	entriesLimit    int
	entriesOffset   int

	timerProject string
	timerTitle   string
	timerNotes   string
	timerReplace bool
)

// entriesCmd groups the time entry subcommands
var entriesCmd = &cobra.Command{
	Use:     "entries",
	Aliases: []string{"entry", "e"},
	Short:   "Manage time entries and the running timer",
}

var entriesListCmd = &cobra.Command{
	Use:   "list",
	Short: "List time entries",
	Args:  cobra.NoArgs,
	RunE:  runEntriesList,
}

var entriesStartCmd = &cobra.Command{
	Use:   "start",
	Short: "Start a timer",
	Args:  cobra.NoArgs,
	RunE:  runEntriesStart,
}

var entriesStopCmd = &cobra.Command{
	Use:   "stop",
	Short: "Stop the running timer",
	Args:  cobra.NoArgs,
	RunE:  runEntriesStop,
}

var entriesDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more time entries",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runEntriesDelete,
}

func init() {
	rootCmd.AddCommand(entriesCmd)
	entriesCmd.AddCommand(entriesListCmd, entriesStartCmd, entriesStopCmd, entriesDeleteCmd)

	entriesListCmd.Flags().StringVar(&entriesFrom, "from", "", "earliest start date (YYYY-MM-DD or RFC 3339)")
	entriesListCmd.Flags().StringVar(&entriesTo, "to", "", "latest start date (YYYY-MM-DD or RFC 3339)")
	entriesListCmd.Flags().StringSliceVar(&entriesProjects, "project", nil, "restrict to project ids (repeatable)")
	entriesListCmd.Flags().StringVar(&entriesSearch, "search", "", "search titles and notes")
	entriesListCmd.Flags().BoolVar(&entriesRunning, "running", false, "only the running timer")
	entriesListCmd.Flags().IntVar(&entriesLimit, "limit", 0, "maximum number of entries")
	entriesListCmd.Flags().IntVar(&entriesOffset, "offset", 0, "number of entries to skip")

	entriesStartCmd.Flags().StringVar(&timerProject, "project", "", "project id or reference")
	entriesStartCmd.Flags().StringVar(&timerTitle, "title", "", "entry title")
	entriesStartCmd.Flags().StringVar(&timerNotes, "notes", "", "entry notes")
	entriesStartCmd.Flags().BoolVar(&timerReplace, "replace", false, "replace an overlapping entry")
}

func runEntriesList(cmd *cobra.Command, args []string) error {
	from, err := parseDate(entriesFrom)
	if err != nil {
		return err
	}
	to, err := parseDate(entriesTo)
	if err != nil {
		return err
	}

	query := &timing.TimeEntryListQuery{
		StartDateMin: from,
		StartDateMax: to,
		Projects:     projectRefs(entriesProjects),
		SearchQuery:  entriesSearch,
	}
	if entriesRunning {
		query.IsRunning = timing.Bool(true)
	}
	if cmd.Flags().Changed("limit") {
		query.Limit = timing.Int(entriesLimit)
	}
	if cmd.Flags().Changed("offset") {
		query.Offset = timing.Int(entriesOffset)
	}

	entries, err := client.TimeEntries.List(cmd.Context(), query)
	if err != nil {
		return fmt.Errorf("failed to list time entries: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, entries)
	}
	if len(entries) == 0 {
		fmt.Fprintln(out, "No time entries found.")
		return nil
	}

	fmt.Fprintf(out, "%-10s %-17s %-10s %-25s %s\n", "ID", "START", "DURATION", "PROJECT", "TITLE")
	fmt.Fprintln(out, strings.Repeat("━", 85))
	var total time.Duration
	for _, e := range entries {
		printEntryRow(out, e)
		total += e.Elapsed()
	}
	fmt.Fprintln(out, strings.Repeat("━", 85))
	fmt.Fprintf(out, "%d entries, %s total\n", len(entries), formatDuration(total))
	return nil
}

func printEntryRow(w io.Writer, e timing.TimeEntry) {
	start := ""
	if e.StartDate != nil {
		start = e.StartDate.Local().Format("2006-01-02 15:04")
	}
	project := ""
	if e.Project != nil {
		project = e.Project.FullTitle()
	}
	title := e.Title
	if e.IsRunning {
		title += " [RUNNING]"
	}
	fmt.Fprintf(w, "%-10s %-17s %-10s %-25s %s\n", e.ID(), start, formatDuration(e.Elapsed()), truncate(project, 25), title)
}

func runEntriesStart(cmd *cobra.Command, args []string) error {
	opts := timing.StartTimerOptions{
		Title: timerTitle,
		Notes: timerNotes,
	}
	if timerProject != "" {
		opts.Project = projectRefs([]string{timerProject})[0]
	}
	if cmd.Flags().Changed("replace") {
		opts.ReplaceExisting = timing.Bool(timerReplace)
	}

	entry, err := client.TimeEntries.Start(cmd.Context(), opts)
	if err != nil {
		if apiErr, ok := timing.AsAPIError(err); ok && apiErr.IsConflict() {
			logger.Warn().Str("message", apiErr.Message).Msg("Timer conflicts with an existing entry, use --replace to override")
		}
		return fmt.Errorf("failed to start timer: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), entry)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Timer started (%s)\n", entry.Self)
	return nil
}

func runEntriesStop(cmd *cobra.Command, args []string) error {
	entry, err := client.TimeEntries.Stop(cmd.Context())
	if err != nil {
		if apiErr, ok := timing.AsAPIError(err); ok && apiErr.IsNotFound() {
			return fmt.Errorf("no timer is running")
		}
		return fmt.Errorf("failed to stop timer: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), entry)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Timer stopped after %s (%s)\n", formatDuration(entry.Elapsed()), entry.Self)
	return nil
}

func runEntriesDelete(cmd *cobra.Command, args []string) error {
	result := client.TimeEntries.DeleteMany(cmd.Context(), args)
	return printBatchResult(cmd.OutOrStdout(), "time entry", result)
}

// formatDuration renders d as hours and minutes, e.g. "1h05m"
func formatDuration(d time.Duration) string {
	d = d.Round(time.Minute)
	h := d / time.Hour
	m := (d % time.Hour) / time.Minute
	return fmt.Sprintf("%dh%02dm", h, m)
}
