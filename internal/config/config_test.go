package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/koksalmehmet/atlas/internal/detect"
	"github.com/koksalmehmet/atlas/internal/repourl"
)

func TestEnsureLayout(t *testing.T) {
	root := t.TempDir()
	atlasDir, err := EnsureLayout(root)
	if err != nil {
		t.Fatal(err)
	}
	if atlasDir != filepath.Join(root, ".atlas") {
		t.Errorf("atlasDir = %q", atlasDir)
	}
	for _, d := range []string{".atlas", ".atlas/index", ".atlas/outputs"} {
		info, err := os.Stat(filepath.Join(root, d))
		if err != nil || !info.IsDir() {
			t.Errorf("expected directory %s, err=%v", d, err)
		}
	}
	// idempotent
	if _, err := EnsureLayout(root); err != nil {
		t.Errorf("second EnsureLayout failed: %v", err)
	}
}

func TestSaveAndLoadSettings(t *testing.T) {
	root := t.TempDir()
	result := detect.Result{
		IsWorkspace:   true,
		WorkspaceType: "pnpm",
		Structure:     detect.StructureWorkspace,
		Projects:      []detect.Candidate{},
	}
	remotes := []repourl.Remote{
		repourl.Parse("git@github.com:acme/widget.git"),
	}
	settings := BuildSettings("widget", result, remotes)
	if err := SaveSettings(root, settings); err != nil {
		t.Fatal(err)
	}

	loaded, err := LoadSettings(root)
	if err != nil {
		t.Fatal(err)
	}
	if loaded.SchemaVersion != "1.0.0" || loaded.Kind != "atlas/workspace" {
		t.Errorf("header mismatch: %+v", loaded)
	}
	if loaded.Workspace.Name != "widget" {
		t.Errorf("Name = %q, want widget", loaded.Workspace.Name)
	}
	if loaded.Workspace.Type != "pnpm" || loaded.Workspace.Structure != "workspace" {
		t.Errorf("workspace info mismatch: %+v", loaded.Workspace)
	}
	if len(loaded.Repositories) != 1 || loaded.Repositories[0].Repo != "widget" {
		t.Errorf("repositories mismatch: %+v", loaded.Repositories)
	}
}

func TestSaveSettingsRejectsInvalid(t *testing.T) {
	root := t.TempDir()
	// structure outside the schema enum must fail validation
	settings := BuildSettings("bad", detect.Result{Structure: "spaghetti"}, nil)
	if err := SaveSettings(root, settings); err == nil {
		t.Error("expected schema validation error")
	}
}

func TestLoadSettingsMissing(t *testing.T) {
	if _, err := LoadSettings(t.TempDir()); err == nil {
		t.Error("expected error when settings file is absent")
	}
}

func TestWriteTemplateDoesNotOverwrite(t *testing.T) {
	root := t.TempDir()
	dest := filepath.Join(root, "workspace.jsonc")
	repl := map[string]string{
		"name": "first", "workspaceType": "pnpm", "structure": "workspace",
	}
	if err := WriteTemplate(dest, "workspace.jsonc", repl, false); err != nil {
		t.Fatal(err)
	}
	before, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}

	repl["name"] = "second"
	if err := WriteTemplate(dest, "workspace.jsonc", repl, false); err != nil {
		t.Fatal(err)
	}
	after, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(before) != string(after) {
		t.Error("template overwrote an existing file without allowOverwrite")
	}

	if err := WriteTemplate(dest, "workspace.jsonc", repl, true); err != nil {
		t.Fatal(err)
	}
	forced, err := os.ReadFile(dest)
	if err != nil {
		t.Fatal(err)
	}
	if string(forced) == string(before) {
		t.Error("allowOverwrite did not rewrite the file")
	}
}

func TestIgnoreGlobs(t *testing.T) {
	root := t.TempDir()

	// no settings file: defaults only
	defaults := IgnoreGlobs(root)
	if len(defaults) == 0 {
		t.Fatal("expected default ignore globs")
	}

	settings := BuildSettings("w", detect.Result{Structure: detect.StructureSingle}, nil)
	settings.IgnoreGlobs = []string{"generated/**", "node_modules/**"}
	if err := SaveSettings(root, settings); err != nil {
		t.Fatal(err)
	}

	merged := IgnoreGlobs(root)
	if len(merged) != len(defaults)+1 {
		t.Errorf("expected defaults plus one new glob, got %v", merged)
	}
	found := false
	for _, g := range merged {
		if g == "generated/**" {
			found = true
		}
	}
	if !found {
		t.Errorf("user glob missing from %v", merged)
	}
}
