package cmd

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qactl/internal/client"
)

var (
	projectOutputJSON bool

	projectCreateBaseURL  string
	projectCreateAuthMode string
	projectCreateDesc     string
)

// projectCmd groups project management commands
var projectCmd = &cobra.Command{
	Use:   "project",
	Short: "Manage projects",
	Long: `Manage projects in the remote test service.

A project groups the pages, tests and credentials of one application
under test.`,
}

var projectListCmd = &cobra.Command{
	Use:   "list",
	Short: "List all projects",
	RunE:  runProjectList,
}

var projectGetCmd = &cobra.Command{
	Use:   "get <project-id>",
	Short: "Get a single project",
	Long: `Get a single project record by id.

The full record includes auth settings and credential names (never
passwords on list output; use --json for the raw record).`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectGet,
}

var projectCreateCmd = &cobra.Command{
	Use:   "create <name>",
	Short: "Create a project",
	Long: `Create a project.

Credentials, login URLs and the concurrency hint are edited through the
service; create only sets the basics.`,
	Args: cobra.ExactArgs(1),
	RunE: runProjectCreate,
}

var projectDeleteCmd = &cobra.Command{
	Use:   "delete <project-id>",
	Short: "Delete a project and everything under it",
	Args:  cobra.ExactArgs(1),
	RunE:  runProjectDelete,
}

func init() {
	rootCmd.AddCommand(projectCmd)
	projectCmd.AddCommand(projectListCmd)
	projectCmd.AddCommand(projectGetCmd)
	projectCmd.AddCommand(projectCreateCmd)
	projectCmd.AddCommand(projectDeleteCmd)

	projectCmd.PersistentFlags().BoolVar(&projectOutputJSON, "json", false, "Output raw JSON")

	projectCreateCmd.Flags().StringVar(&projectCreateBaseURL, "base-url", "", "Base URL of the application under test")
	projectCreateCmd.Flags().StringVar(&projectCreateAuthMode, "auth-mode", string(client.AuthModeNone), "Auth mode: none, existing_user or new_user")
	projectCreateCmd.Flags().StringVar(&projectCreateDesc, "description", "", "Project description")
	_ = projectCreateCmd.MarkFlagRequired("base-url")
}

func runProjectList(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	projects, err := c.ListProjects(cmdContext(cmd))
	if err != nil {
		return err
	}

	if projectOutputJSON {
		return printJSON(os.Stdout, projects)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tBASE URL\tAUTH")
	for _, p := range projects {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.BaseURL, p.AuthMode)
	}
	return w.Flush()
}

func runProjectGet(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	project, err := c.GetProject(cmdContext(cmd), args[0])
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, project)
}

func runProjectCreate(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	mode := client.AuthMode(projectCreateAuthMode)
	switch mode {
	case client.AuthModeNone, client.AuthModeExistingUser, client.AuthModeNewUser:
	default:
		return fmt.Errorf("invalid auth mode %q", projectCreateAuthMode)
	}

	project, err := c.CreateProject(cmdContext(cmd), client.ProjectCreate{
		Name:        args[0],
		BaseURL:     projectCreateBaseURL,
		Description: projectCreateDesc,
		AuthMode:    mode,
	})
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, project)
}

func runProjectDelete(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	if err := c.DeleteProject(cmdContext(cmd), args[0]); err != nil {
		return err
	}
	fmt.Printf("Project %s deleted\n", args[0])
	return nil
}
