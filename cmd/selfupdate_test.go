package cmd

import (
	"bytes"
	"strings"
	"testing"

	"github.com/spf13/cobra"
)

func findSubcommand(t *testing.T, name string) *cobra.Command {
	t.Helper()
	for _, cmd := range rootCmd.Commands() {
		if cmd.Name() == name {
			return cmd
		}
	}
	t.Fatalf("subcommand %s not registered on root", name)
	return nil
}

func TestSelfUpdateCommandRegistration(t *testing.T) {
	cmd := findSubcommand(t, "self-update")

	if cmd.RunE == nil {
		t.Error("self-update must define RunE")
	}
	if cmd.Short == "" || cmd.Long == "" {
		t.Error("self-update must carry short and long descriptions")
	}
	if len(cmd.Commands()) != 0 {
		t.Errorf("self-update takes no subcommands, found %d", len(cmd.Commands()))
	}
	if githubRepoSlug != "qactl/qactl" {
		t.Errorf("releases are published under qactl/qactl, got %s", githubRepoSlug)
	}
}

func TestRunSelfUpdateRefusesUnreleasedBuilds(t *testing.T) {
	originalVersion := rootCmd.Version
	defer func() { rootCmd.Version = originalVersion }()

	// Neither an empty version nor the dev placeholder may reach the
	// release check; there is no release to compare them against.
	for _, version := range []string{"", "dev"} {
		rootCmd.Version = version

		err := runSelfUpdate(nil, nil)
		if err == nil {
			t.Errorf("version %q: expected refusal, got nil", version)
			continue
		}
		if !strings.Contains(err.Error(), "cannot self-update a development version") {
			t.Errorf("version %q: unexpected message: %s", version, err.Error())
		}
	}
}

func TestSelfUpdateHelpDescribesReplacement(t *testing.T) {
	cmd := newSelfUpdateCmd()

	var buf bytes.Buffer
	cmd.SetOut(&buf)
	cmd.SetErr(&buf)
	cmd.SetArgs([]string{"--help"})

	if err := cmd.Execute(); err != nil {
		t.Fatalf("help execution failed: %v", err)
	}

	// The long description must tell the user the binary is replaced in
	// place; that is the surprising part of the command.
	if !strings.Contains(buf.String(), "replaces the current binary") {
		t.Errorf("help output missing in-place replacement notice: %q", buf.String())
	}
}
