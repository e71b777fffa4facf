package commands

import (
	"flag"
	"fmt"
	"os"
	"path/filepath"

	"github.com/koksalmehmet/atlas/internal/cli/flags"
	"github.com/koksalmehmet/atlas/internal/config"
	"github.com/koksalmehmet/atlas/internal/detect"
)

func init() {
	Register(&Command{
		Name:        "init",
		Description: "Create the .atlas layout and starter workspace settings",
		Run:         RunInit,
	})
}

// RunInit executes the init command with parsed arguments.
func RunInit(args []string) error {
	fs := flag.NewFlagSet("init", flag.ContinueOnError)
	root := flags.AddRootFlag(fs)
	force := flags.AddForceFlag(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	return ExecuteInit(*root, *force)
}

// ExecuteInit seeds .atlas/workspace.jsonc from the starter template,
// pre-filled with a quick classification of the root.
func ExecuteInit(root string, force bool) error {
	rootPath, err := filepath.Abs(root)
	if err != nil {
		return fmt.Errorf("resolve root: %w", err)
	}
	if _, err := os.Stat(rootPath); err != nil {
		return fmt.Errorf("root %s: %w", rootPath, err)
	}
	if _, err := config.EnsureLayout(rootPath); err != nil {
		return err
	}

	detector := detect.New()
	detector.SetIgnoreGlobs(config.IgnoreGlobs(rootPath))
	result := detector.Detect(rootPath)
	name := filepath.Base(rootPath)
	for _, p := range result.Projects {
		if p.Path == "." {
			name = p.Name
			break
		}
	}

	dest := config.SettingsPath(rootPath)
	err = config.WriteTemplate(dest, "workspace.jsonc", map[string]string{
		"name":          name,
		"workspaceType": string(result.WorkspaceType),
		"structure":     string(result.Structure),
	}, force)
	if err != nil {
		return err
	}
	fmt.Printf("initialized %s (%s, %d projects)\n", dest, result.Structure, len(result.Projects))
	return nil
}
