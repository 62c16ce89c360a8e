package cmd

import (
	"fmt"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"qactl/internal/sweep"
)

var (
	sweepProject    string
	sweepPages      []string
	sweepPattern    string
	sweepOutputJSON bool
)

var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Impact analysis: find tests affected by changed pages",
	Long: `Match changed page URLs against a project's page catalogue and list
the tests associated with any matched page.

Changed pages are named either exactly (--page, repeatable) or by glob
pattern (--pattern, where '*' matches any characters including '/').
When both are given the matched sets are unioned. Sweeping never touches
runs; feed the result into 'qactl batch prepare --test ...' to re-run
the affected set.`,
	RunE: runSweep,
}

func init() {
	rootCmd.AddCommand(sweepCmd)

	sweepCmd.Flags().StringVar(&sweepProject, "project", "", "Project id (default: from config)")
	sweepCmd.Flags().StringArrayVar(&sweepPages, "page", nil, "Changed page URL, matched exactly (repeatable)")
	sweepCmd.Flags().StringVar(&sweepPattern, "pattern", "", "Glob pattern matched against page URLs")
	sweepCmd.Flags().BoolVar(&sweepOutputJSON, "json", false, "Output raw JSON")
}

func runSweep(cmd *cobra.Command, args []string) error {
	if len(sweepPages) == 0 && sweepPattern == "" {
		return fmt.Errorf("provide --page and/or --pattern")
	}

	c, cfg, err := newAPIClient()
	if err != nil {
		return err
	}
	projectID, err := resolveProject(sweepProject, cfg)
	if err != nil {
		return err
	}

	sweeper := sweep.NewSweeper(c)
	affected, err := sweeper.Sweep(cmdContext(cmd), projectID, sweep.Request{
		Pages:      sweepPages,
		URLPattern: sweepPattern,
	})
	if err != nil {
		return err
	}

	if sweepOutputJSON {
		return printJSON(os.Stdout, affected)
	}

	if len(affected) == 0 {
		fmt.Println("No tests affected.")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tTAGS")
	for _, t := range affected {
		fmt.Fprintf(w, "%s\t%s\t%s\n", t.ID, t.Name, strings.Join(t.Tags, ","))
	}
	return w.Flush()
}
