// Package config owns the .atlas/ workspace layout and the persisted
// settings generated from a detection result.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/koksalmehmet/atlas/internal/detect"
	"github.com/koksalmehmet/atlas/internal/jsonc"
	"github.com/koksalmehmet/atlas/internal/repourl"
	"github.com/koksalmehmet/atlas/schemas"
	"github.com/koksalmehmet/atlas/starter"
)

// WorkspaceSettings is the persisted configuration built from a
// WorkspaceDetectionResult plus the repository remotes confirmed for the
// workspace.
type WorkspaceSettings struct {
	SchemaVersion string            `json:"schemaVersion"`
	Kind          string            `json:"kind"`
	Workspace     WorkspaceInfo     `json:"workspace"`
	IgnoreGlobs   []string          `json:"ignoreGlobs,omitempty"`
	Repositories  []repourl.Remote  `json:"repositories,omitempty"`
	Provenance    map[string]string `json:"provenance,omitempty"`
}

type WorkspaceInfo struct {
	Name      string `json:"name"`
	Type      string `json:"type,omitempty"`
	Structure string `json:"structure"`
}

// EnsureLayout creates the .atlas directory tree under root.
func EnsureLayout(root string) (string, error) {
	atlasDir := filepath.Join(root, ".atlas")
	dirs := []string{
		atlasDir,
		filepath.Join(atlasDir, "index"),
		filepath.Join(atlasDir, "outputs"),
	}
	for _, d := range dirs {
		if err := os.MkdirAll(d, 0o755); err != nil {
			return "", fmt.Errorf("create %s: %w", d, err)
		}
	}
	return atlasDir, nil
}

// SettingsPath returns the location of the workspace settings file.
func SettingsPath(root string) string {
	return filepath.Join(root, ".atlas", "workspace.jsonc")
}

// WriteTemplate renders a starter template to destPath unless the file
// already exists and overwriting is not allowed.
func WriteTemplate(destPath, templateName string, replacements map[string]string, allowOverwrite bool) error {
	if _, err := os.Stat(destPath); err == nil && !allowOverwrite {
		return nil
	}
	tpl, err := starter.Get(templateName)
	if err != nil {
		return fmt.Errorf("load template %s: %w", templateName, err)
	}
	if replacements == nil {
		replacements = map[string]string{}
	}
	if replacements["createdAt"] == "" {
		replacements["createdAt"] = time.Now().UTC().Format(time.RFC3339)
	}
	contents := starter.Apply(tpl, replacements)
	if err := os.WriteFile(destPath, []byte(contents), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", destPath, err)
	}
	return nil
}

// BuildSettings converts a detection result into persistable settings.
func BuildSettings(name string, result detect.Result, remotes []repourl.Remote) WorkspaceSettings {
	return WorkspaceSettings{
		SchemaVersion: "1.0.0",
		Kind:          "atlas/workspace",
		Workspace: WorkspaceInfo{
			Name:      name,
			Type:      string(result.WorkspaceType),
			Structure: string(result.Structure),
		},
		Repositories: remotes,
		Provenance: map[string]string{
			"createdBy": "atlas detect",
			"createdAt": time.Now().UTC().Format(time.RFC3339),
		},
	}
}

// SaveSettings validates settings against the workspace schema and
// writes them to .atlas/workspace.jsonc.
func SaveSettings(root string, settings WorkspaceSettings) error {
	if _, err := EnsureLayout(root); err != nil {
		return err
	}
	data, err := json.MarshalIndent(settings, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal settings: %w", err)
	}
	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return fmt.Errorf("decode settings: %w", err)
	}
	if err := schemas.Validate(schemas.Workspace, doc); err != nil {
		return err
	}
	if err := os.WriteFile(SettingsPath(root), data, 0o644); err != nil {
		return fmt.Errorf("write settings: %w", err)
	}
	return nil
}

// LoadSettings reads .atlas/workspace.jsonc if present.
func LoadSettings(root string) (*WorkspaceSettings, error) {
	var settings WorkspaceSettings
	if err := jsonc.DecodeFile(SettingsPath(root), &settings); err != nil {
		return nil, err
	}
	return &settings, nil
}

// defaultIgnoreGlobs mirror the engine's ignore set as globs for file
// walking.
func defaultIgnoreGlobs() []string {
	return []string{
		".git/**",
		".atlas/**",
		"node_modules/**",
		"dist/**",
		"build/**",
		"target/**",
		"vendor/**",
		"coverage/**",
		"__pycache__/**",
	}
}

// IgnoreGlobs returns the user's ignore globs merged over the defaults.
// Missing or malformed settings degrade to the defaults.
func IgnoreGlobs(root string) []string {
	def := defaultIgnoreGlobs()
	settings, err := LoadSettings(root)
	if err != nil {
		return def
	}
	return mergeGlobs(def, settings.IgnoreGlobs)
}

func mergeGlobs(base, extra []string) []string {
	seen := make(map[string]bool, len(base))
	out := make([]string, 0, len(base)+len(extra))
	for _, g := range base {
		if g != "" && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	for _, g := range extra {
		if g != "" && !seen[g] {
			seen[g] = true
			out = append(out, g)
		}
	}
	return out
}
