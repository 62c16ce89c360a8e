package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"
)

var (
	testProject    string
	testOutputJSON bool
)

// testCmd groups test management commands
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Manage tests",
	Long: `Inspect the tests of a project.

Test listing is compact: the large instruction and script bodies are
omitted. Use 'qactl test get' for a full record.`,
}

var testListCmd = &cobra.Command{
	Use:   "list",
	Short: "List a project's tests",
	RunE:  runTestList,
}

var testGetCmd = &cobra.Command{
	Use:   "get <test-id>",
	Short: "Get a single test with its full instructions and script",
	Args:  cobra.ExactArgs(1),
	RunE:  runTestGet,
}

func init() {
	rootCmd.AddCommand(testCmd)
	testCmd.AddCommand(testListCmd)
	testCmd.AddCommand(testGetCmd)

	testCmd.PersistentFlags().StringVar(&testProject, "project", "", "Project id (default: from config)")
	testCmd.PersistentFlags().BoolVar(&testOutputJSON, "json", false, "Output raw JSON")
}

func runTestList(cmd *cobra.Command, args []string) error {
	c, cfg, err := newAPIClient()
	if err != nil {
		return err
	}
	projectID, err := resolveProject(testProject, cfg)
	if err != nil {
		return err
	}

	tests, err := c.ListTests(cmdContext(cmd), projectID, true)
	if err != nil {
		return err
	}

	if testOutputJSON {
		return printJSON(os.Stdout, tests)
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tSTATUS\tTAGS\tCREDENTIAL")
	for _, t := range tests {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
			t.ID, t.Name, t.Status, strings.Join(t.Tags, ","), t.CredentialName)
	}
	return w.Flush()
}

func runTestGet(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	test, err := c.GetTest(cmdContext(cmd), args[0])
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, test)
}
