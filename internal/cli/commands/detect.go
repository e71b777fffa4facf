package commands

import (
	"encoding/json"
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/koksalmehmet/atlas/internal/cli/flags"
	"github.com/koksalmehmet/atlas/internal/config"
	"github.com/koksalmehmet/atlas/internal/detect"
	"github.com/koksalmehmet/atlas/internal/gitutil"
	"github.com/koksalmehmet/atlas/internal/history"
	"github.com/koksalmehmet/atlas/internal/logger"
	"github.com/koksalmehmet/atlas/internal/repourl"
)

func init() {
	Register(&Command{
		Name:        "detect",
		Description: "Classify the workspace into projects and print the result",
		Run:         RunDetect,
	})
}

// DetectOptions contains the configuration for the detect command.
type DetectOptions struct {
	Root    string
	Save    bool // persist settings and a history snapshot
	Verbose bool
	Debug   bool
}

// RunDetect executes the detect command with parsed arguments.
func RunDetect(args []string) error {
	fs := flag.NewFlagSet("detect", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	save := fs.Bool("save", false, "write workspace settings and record a history snapshot")
	verbose := flags.AddVerboseFlag(fs)
	debug := flags.AddDebugFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ExecuteDetect(DetectOptions{
		Root:    *root,
		Save:    *save,
		Verbose: *verbose,
		Debug:   *debug,
	})
}

// ExecuteDetect performs the detection with the given options.
// This is separated for easier testing.
func ExecuteDetect(opts DetectOptions) error {
	if opts.Debug {
		logger.SetLevel(logger.LevelDebug)
	} else if opts.Verbose {
		logger.SetLevel(logger.LevelInfo)
	}

	rootPath, err := filepath.Abs(opts.Root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	// Missing root is the one fatal condition; the engine does not
	// re-validate it.
	if _, err := os.Stat(rootPath); err != nil {
		return fmt.Errorf("root %s: %w", rootPath, err)
	}

	detector := detect.New()
	detector.SetIgnoreGlobs(config.IgnoreGlobs(rootPath))
	result := detector.Detect(rootPath)

	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "  ")
	if err := encoder.Encode(result); err != nil {
		return err
	}

	if !opts.Save {
		return nil
	}

	name := filepath.Base(rootPath)
	for _, p := range result.Projects {
		if p.Path == "." {
			name = p.Name
			break
		}
	}
	remotes := workspaceRemotes(rootPath)
	if err := config.SaveSettings(rootPath, config.BuildSettings(name, result, remotes)); err != nil {
		return fmt.Errorf("save settings: %w", err)
	}

	db, err := history.Open(history.DBPath(rootPath))
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer db.Close()
	run, err := history.SaveRun(db, rootPath, result)
	if err != nil {
		return fmt.Errorf("record run: %w", err)
	}
	fmt.Fprintf(os.Stderr, "saved settings to %s (run %s)\n", config.SettingsPath(rootPath), run.ID)
	return nil
}

// workspaceRemotes resolves the git remotes configured for the root, if
// any, through the URL codec. Absence of git is not an error.
func workspaceRemotes(rootPath string) []repourl.Remote {
	if !gitutil.IsGitRepo(rootPath) {
		return nil
	}
	refs, err := gitutil.ListRemotes(rootPath)
	if err != nil {
		logger.Warn("list remotes: %v", err)
		return nil
	}
	var remotes []repourl.Remote
	for _, ref := range refs {
		remote := repourl.Parse(ref.URL)
		remote.Name = ref.Name
		remotes = append(remotes, remote)
	}
	return remotes
}
