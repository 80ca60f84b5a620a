package cmd

import (
	"fmt"
	"io"
	"strings"

	"github.com/spf13/cobra"

	"github.com/s0up4200/timekeeper/timing"
)

var (
	projectTitle        string
	projectHideArchived bool
	projectTree         bool
	projectParent       string
	projectColor        string
	projectScore        float64
	projectNotes        string
)

// projectsCmd groups the project subcommands
var projectsCmd = &cobra.Command{
	Use:     "projects",
	Aliases: []string{"project", "p"},
	Short:   "Manage projects",
}

var projectsListCmd = &cobra.Command{
	Use:   "list",
	Short: "List projects",
	Args:  cobra.NoArgs,
	RunE:  runProjectsList,
}

var projectsGetCmd = &cobra.Command{
	Use:   "get <id>",
	Short: "Show a single project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsGet,
}

var projectsCreateCmd = &cobra.Command{
	Use:   "create <title>",
	Short: "Create a project",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectsCreate,
}

var projectsDeleteCmd = &cobra.Command{
	Use:   "delete <id>...",
	Short: "Delete one or more projects",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runProjectsDelete,
}

func init() {
	rootCmd.AddCommand(projectsCmd)
	projectsCmd.AddCommand(projectsListCmd, projectsGetCmd, projectsCreateCmd, projectsDeleteCmd)

	projectsListCmd.Flags().StringVar(&projectTitle, "title", "", "only projects whose title matches")
	projectsListCmd.Flags().BoolVar(&projectHideArchived, "hide-archived", false, "hide archived projects")
	projectsListCmd.Flags().BoolVar(&projectTree, "tree", false, "show the project hierarchy")

	projectsCreateCmd.Flags().StringVar(&projectParent, "parent", "", "parent project id or reference")
	projectsCreateCmd.Flags().StringVar(&projectColor, "color", "", "color as #RRGGBB")
	projectsCreateCmd.Flags().Float64Var(&projectScore, "productivity", 0, "productivity score between -1 and 1")
	projectsCreateCmd.Flags().StringVar(&projectNotes, "notes", "", "project notes")
}

func runProjectsList(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	out := cmd.OutOrStdout()

	var (
		projects []timing.Project
		err      error
	)
	if projectTree {
		projects, err = client.Projects.Hierarchy(ctx)
	} else {
		query := &timing.ProjectListQuery{Title: projectTitle}
		if projectHideArchived {
			query.HideArchived = timing.Bool(true)
		}
		projects, err = client.Projects.List(ctx, query)
	}
	if err != nil {
		return fmt.Errorf("failed to list projects: %w", err)
	}

	if jsonOutput {
		return printJSON(out, projects)
	}

	if len(projects) == 0 {
		fmt.Fprintln(out, "No projects found.")
		return nil
	}

	if projectTree {
		printProjectTree(out, projects, 0)
		return nil
	}

	fmt.Fprintf(out, "%-10s %-50s %s\n", "ID", "PROJECT", "ARCHIVED")
	fmt.Fprintln(out, strings.Repeat("━", 70))
	for _, p := range projects {
		archived := ""
		if p.IsArchived {
			archived = "yes"
		}
		fmt.Fprintf(out, "%-10s %-50s %s\n", p.ID(), truncate(p.FullTitle(), 50), archived)
	}
	return nil
}

func printProjectTree(w io.Writer, projects []timing.Project, depth int) {
	for _, p := range projects {
		fmt.Fprintf(w, "%s• %s (%s)\n", strings.Repeat("  ", depth), p.Title, p.ID())
		printProjectTree(w, p.Children, depth+1)
	}
}

func runProjectsGet(cmd *cobra.Command, args []string) error {
	project, err := client.Projects.Get(cmd.Context(), args[0])
	if err != nil {
		return fmt.Errorf("failed to get project: %w", err)
	}

	out := cmd.OutOrStdout()
	if jsonOutput {
		return printJSON(out, project)
	}

	fmt.Fprintf(out, "%s\n", project.FullTitle())
	fmt.Fprintf(out, "  Reference:    %s\n", project.Self)
	if project.Color != "" {
		fmt.Fprintf(out, "  Color:        %s\n", project.Color)
	}
	fmt.Fprintf(out, "  Productivity: %.2f\n", project.ProductivityScore)
	fmt.Fprintf(out, "  Archived:     %t\n", project.IsArchived)
	if project.Parent != nil {
		fmt.Fprintf(out, "  Parent:       %s\n", project.Parent.Self)
	}
	if project.Notes != "" {
		fmt.Fprintf(out, "  Notes:        %s\n", project.Notes)
	}
	return nil
}

func runProjectsCreate(cmd *cobra.Command, args []string) error {
	opts := timing.CreateProjectOptions{
		Title: args[0],
		Color: projectColor,
		Notes: projectNotes,
	}
	if projectParent != "" {
		opts.Parent = projectRefs([]string{projectParent})[0]
	}
	if cmd.Flags().Changed("productivity") {
		opts.ProductivityScore = timing.Float(projectScore)
	}

	project, err := client.Projects.Create(cmd.Context(), opts)
	if err != nil {
		return fmt.Errorf("failed to create project: %w", err)
	}

	if jsonOutput {
		return printJSON(cmd.OutOrStdout(), project)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "✓ Created project %s (%s)\n", project.Title, project.Self)
	return nil
}

func runProjectsDelete(cmd *cobra.Command, args []string) error {
	result := client.Projects.DeleteMany(cmd.Context(), args)
	return printBatchResult(cmd.OutOrStdout(), "project", result)
}

// printBatchResult reports a DeleteMany outcome and fails when any delete did
func printBatchResult(w io.Writer, noun string, result timing.BatchResult) error {
	for _, id := range result.Deleted {
		fmt.Fprintf(w, "✓ Deleted %s %s\n", noun, id)
	}
	for _, failure := range result.Failed {
		logger.Error().Err(failure.Err).Str("id", failure.ID).Msgf("Failed to delete %s", noun)
	}
	if !result.OK() {
		return fmt.Errorf("%d of %d deletes failed", len(result.Failed), result.Requested)
	}
	return nil
}

// truncate shortens s to at most n runes
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}
