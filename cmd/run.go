package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"qactl/internal/client"
	"qactl/internal/run"
)

var (
	runStatus    string
	runResult    string
	runBatchFile string
)

// runCmd groups run lifecycle commands
var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Inspect and complete runs",
	Long: `Drive the run lifecycle.

A run is created in the running state when a batch is prepared and moves
exactly once to a terminal state (passed, failed, error) when completed.
Completing an already-completed run is an error; it signals duplicate
reporting by the executor.`,
}

var runGetCmd = &cobra.Command{
	Use:   "get <run-id>",
	Short: "Get a single run",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunGet,
}

var runCompleteCmd = &cobra.Command{
	Use:   "complete <run-id>",
	Short: "Record a run's terminal outcome",
	Args:  cobra.ExactArgs(1),
	RunE:  runRunComplete,
}

var runCompleteBatchCmd = &cobra.Command{
	Use:   "complete-batch",
	Short: "Record terminal outcomes for many runs in one call",
	Long: `Record terminal outcomes for many runs in one call.

The --file YAML has the shape:

  completions:
    - run_id: r-123
      status: passed
    - run_id: r-124
      status: failed
      result: "login button missing"

Entries fail independently; every entry's outcome is printed and the
command exits non-zero if any entry failed.`,
	RunE: runRunCompleteBatch,
}

func init() {
	rootCmd.AddCommand(runCmd)
	runCmd.AddCommand(runGetCmd)
	runCmd.AddCommand(runCompleteCmd)
	runCmd.AddCommand(runCompleteBatchCmd)

	runCompleteCmd.Flags().StringVar(&runStatus, "status", "", "Terminal status: passed, failed or error")
	runCompleteCmd.Flags().StringVar(&runResult, "result", "", "Free-text result summary")
	_ = runCompleteCmd.MarkFlagRequired("status")

	runCompleteBatchCmd.Flags().StringVar(&runBatchFile, "file", "", "YAML file with completions")
	_ = runCompleteBatchCmd.MarkFlagRequired("file")
}

func runRunGet(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	record, err := c.GetRun(cmdContext(cmd), args[0])
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, record)
}

func runRunComplete(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	lifecycle := run.NewLifecycle(c)
	record, err := lifecycle.Complete(cmdContext(cmd), run.Completion{
		RunID:  args[0],
		Status: client.RunStatus(runStatus),
		Result: runResult,
	})
	if err != nil {
		return err
	}
	return printJSON(os.Stdout, record)
}

// batchCompletionFile is the YAML shape accepted by complete-batch.
type batchCompletionFile struct {
	Completions []struct {
		RunID  string `yaml:"run_id"`
		Status string `yaml:"status"`
		Result string `yaml:"result,omitempty"`
	} `yaml:"completions"`
}

func runRunCompleteBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(runBatchFile)
	if err != nil {
		return fmt.Errorf("reading %s: %w", runBatchFile, err)
	}

	var file batchCompletionFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing %s: %w", runBatchFile, err)
	}
	if len(file.Completions) == 0 {
		return fmt.Errorf("%s contains no completions", runBatchFile)
	}

	completions := make([]run.Completion, len(file.Completions))
	for i, entry := range file.Completions {
		completions[i] = run.Completion{
			RunID:  entry.RunID,
			Status: client.RunStatus(entry.Status),
			Result: entry.Result,
		}
	}

	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	lifecycle := run.NewLifecycle(c)
	results, err := lifecycle.CompleteBatch(cmdContext(cmd), completions)
	if err != nil {
		return err
	}

	failed := 0
	for _, r := range results {
		if r.Err != nil {
			failed++
			fmt.Printf("%s: FAILED: %v\n", r.RunID, r.Err)
		} else {
			fmt.Printf("%s: ok\n", r.RunID)
		}
	}
	if failed > 0 {
		return fmt.Errorf("%d of %d completions failed", failed, len(results))
	}
	return nil
}
