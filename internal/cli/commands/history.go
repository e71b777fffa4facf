package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/koksalmehmet/atlas/internal/cli/flags"
	"github.com/koksalmehmet/atlas/internal/history"
)

func init() {
	Register(&Command{
		Name:        "history",
		Description: "List recorded detection runs for the workspace",
		Run:         RunHistory,
	})
}

// RunHistory executes the history command with parsed arguments.
func RunHistory(args []string) error {
	fs := flag.NewFlagSet("history", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	limit := flags.AddLimitFlag(fs, 20)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ExecuteHistory(*root, *limit)
}

// ExecuteHistory prints the most recent detection runs, newest first.
func ExecuteHistory(root string, limit int) error {
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	dbPath := history.DBPath(rootPath)
	if _, err := os.Stat(dbPath); err != nil {
		return fmt.Errorf("no detection history at %s; run `atlas detect --save` first", dbPath)
	}
	db, err := history.Open(dbPath)
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()

	runs, err := history.ListRuns(db, rootPath, limit)
	if err != nil {
		return err
	}
	if len(runs) == 0 {
		fmt.Println("no recorded runs")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "WHEN\tSTRUCTURE\tTYPE\tPROJECTS\tID")
	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			run.CreatedAt.Format(time.RFC3339), run.Structure, run.WorkspaceType,
			run.ProjectCount, run.ID)
	}
	return w.Flush()
}
