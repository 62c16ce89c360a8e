package cmd

import (
	"fmt"
	"os"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"qactl/internal/batch"
	"qactl/internal/tui"
	"qactl/pkg/logging"
)

var (
	batchProject string
	batchFilter  string
	batchTestIDs []string
	batchWatch   bool
)

// batchCmd groups batch preparation commands
var batchCmd = &cobra.Command{
	Use:   "batch",
	Short: "Prepare ready-to-execute test batches",
	Long: `Prepare a batch: filter a project's tests, scope the project's
credentials to the selection, and start one fresh run per test.

The printed batch is what an executing agent consumes. The agent must
report exactly one terminal completion per run id (see 'qactl run').`,
}

var batchPrepareCmd = &cobra.Command{
	Use:   "prepare",
	Short: "Prepare a batch and print it",
	Long: `Prepare a batch and print it as JSON.

Selection, in order of precedence:
  --test       explicit test ids (repeatable); re-runs a known subset
  --filter     one expression: 'tag:<name>' matches a tag exactly
               (case-insensitive), '/<fragment>' matches page URLs by
               substring, anything else matches test names by substring
  (neither)    all active tests

A filter matching zero tests prints an empty batch; that is "nothing to
do", not an error.`,
	RunE: runBatchPrepare,
}

func init() {
	rootCmd.AddCommand(batchCmd)
	batchCmd.AddCommand(batchPrepareCmd)

	batchPrepareCmd.Flags().StringVar(&batchProject, "project", "", "Project id (default: from config)")
	batchPrepareCmd.Flags().StringVar(&batchFilter, "filter", "", "Filter expression")
	batchPrepareCmd.Flags().StringArrayVar(&batchTestIDs, "test", nil, "Explicit test id (repeatable, takes precedence over --filter)")
	batchPrepareCmd.Flags().BoolVar(&batchWatch, "watch", false, "Watch the batch's runs after preparing")
}

func runBatchPrepare(cmd *cobra.Command, args []string) error {
	c, cfg, err := newAPIClient()
	if err != nil {
		return err
	}
	projectID, err := resolveProject(batchProject, cfg)
	if err != nil {
		return err
	}

	preparer := batch.NewPreparer(c)
	result, err := preparer.Prepare(cmdContext(cmd), projectID, batch.Options{
		Filter:  batchFilter,
		TestIDs: batchTestIDs,
	})
	if err != nil {
		return err
	}

	if err := printJSON(os.Stdout, result); err != nil {
		return err
	}

	if result.Empty() {
		fmt.Fprintln(os.Stderr, "No tests selected; nothing to do.")
		return nil
	}

	if batchWatch {
		runIDs := make([]string, len(result.Tests))
		names := make([]string, len(result.Tests))
		for i, t := range result.Tests {
			runIDs[i] = t.RunID
			names[i] = t.Name
		}
		// Re-route logging before handing the terminal to the TUI; stderr
		// writes would corrupt the frame.
		logCh := logging.InitForWatch(logging.ParseLevel(rootLogLevel))
		defer logging.CloseWatchChannel()

		model := tui.New(c, runIDs, names).WithLogChannel(logCh)
		_, err := tea.NewProgram(model).Run()
		return err
	}
	return nil
}
