package cmd

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"qactl/internal/tui"
	"qactl/pkg/logging"
)

var watchCmd = &cobra.Command{
	Use:   "watch <run-id>...",
	Short: "Watch runs until they reach a terminal state",
	Long: `Watch one or more runs in a live view, polling the service until every
run reaches a terminal state.

Use 'qactl batch prepare --watch' to jump straight from preparation into
watching.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runWatch,
}

func init() {
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	c, _, err := newAPIClient()
	if err != nil {
		return err
	}

	// The TUI owns the terminal; route log entries into the view.
	logCh := logging.InitForWatch(logging.ParseLevel(rootLogLevel))
	defer logging.CloseWatchChannel()

	model := tui.New(c, args, nil).WithLogChannel(logCh)
	_, err = tea.NewProgram(model).Run()
	return err
}
