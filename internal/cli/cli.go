// Package cli dispatches atlas commands.
package cli

import (
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/koksalmehmet/atlas/internal/cli/commands"
)

var (
	buildVersion = "dev"
	buildCommit  = "unknown"
	buildDate    = "unknown"
)

// SetBuildInfo records the binary's build metadata for the version command.
func SetBuildInfo(version, commit, date string) {
	buildVersion = version
	buildCommit = commit
	buildDate = date
}

// Run dispatches the given arguments to a registered command.
func Run(args []string) error {
	if len(args) == 0 {
		return usage()
	}

	switch args[0] {
	case "version", "--version", "-v":
		fmt.Printf("atlas %s (%s, built %s)\n", buildVersion, buildCommit, buildDate)
		return nil
	case "help", "-h", "--help":
		return usage()
	}

	cmd, ok := commands.Get(args[0])
	if !ok {
		return fmt.Errorf("unknown command: %s\nRun 'atlas help' for usage", args[0])
	}
	return cmd.Run(args[1:])
}

func usage() error {
	fmt.Println("atlas — classify a directory tree into projects and workspaces")
	fmt.Println()
	fmt.Println("Usage: atlas <command> [flags]")
	fmt.Println()
	fmt.Println("Commands:")
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	for _, cmd := range commands.List() {
		fmt.Fprintf(w, "  %s\t%s\n", cmd.Name, cmd.Description)
	}
	if err := w.Flush(); err != nil {
		return err
	}
	fmt.Println()
	fmt.Println("Run 'atlas <command> -h' for command flags.")
	return nil
}
