// Package detect implements the project and workspace classification
// engine: weighted indicator scoring, workspace topology detection with
// per-convention analyzers, and multi-project discovery with
// deduplication. The engine is read-only over the filesystem and
// best-effort over malformed input.
package detect

import (
	"os"

	"github.com/koksalmehmet/atlas/internal/fsutil"
	"github.com/koksalmehmet/atlas/internal/indicator"
)

// Structure describes the overall shape of the scanned root.
type Structure string

const (
	StructureSingle    Structure = "single-project"
	StructureMulti     Structure = "multi-project"
	StructureWorkspace Structure = "workspace"
)

// Candidate is one classified project directory.
type Candidate struct {
	// Path is relative to the scanned root, "." for the root itself. For
	// external projects it is the path declared by the workspace
	// descriptor.
	Path         string                `json:"path"`
	AbsolutePath string                `json:"absolutePath"`
	Name         string                `json:"name"`
	PrimaryType  indicator.ProjectType `json:"primaryType"`
	// Confidence is a normalized score in [0,100].
	Confidence        float64  `json:"confidence"`
	MatchedIndicators []string `json:"matchedIndicators"`
	FileCount         int      `json:"fileCount"`
	// IsExternal marks candidates reached through an explicit folder
	// reference pointing outside the scanned root.
	IsExternal bool `json:"isExternal"`
}

// Result is the immutable snapshot returned by Detector.Detect.
type Result struct {
	IsWorkspace     bool                    `json:"isWorkspace"`
	WorkspaceType   indicator.WorkspaceType `json:"workspaceType,omitempty"`
	Structure       Structure               `json:"structure"`
	Projects        []Candidate             `json:"projects"`
	PackagePatterns []string                `json:"packagePatterns,omitempty"`
}

// Probe is the file-probe capability the engine consumes. Implementations
// decide how probes hit the disk; the engine only depends on these
// signatures.
type Probe interface {
	Exists(pattern, baseDir string) bool
	ExpandGlob(baseDir, pattern string) []string
	GlobFiles(baseDir, pattern string) []string
	ListDirectories(baseDir string) ([]string, error)
	ReadFile(path string) ([]byte, error)
	CountFiles(dir string, ignoreDirs map[string]bool, ignoreGlobs []string) int
}

// osProbe backs the Probe capability with fsutil.
type osProbe struct{}

// NewProbe returns the default filesystem-backed probe.
func NewProbe() Probe { return osProbe{} }

func (osProbe) Exists(pattern, baseDir string) bool { return fsutil.Exists(pattern, baseDir) }

func (osProbe) ExpandGlob(baseDir, pattern string) []string {
	return fsutil.ExpandGlob(baseDir, pattern)
}

func (osProbe) GlobFiles(baseDir, pattern string) []string {
	return fsutil.GlobFiles(baseDir, pattern)
}

func (osProbe) ListDirectories(baseDir string) ([]string, error) {
	return fsutil.ListDirectories(baseDir)
}

func (osProbe) ReadFile(path string) ([]byte, error) { return os.ReadFile(path) }

func (osProbe) CountFiles(dir string, ignoreDirs map[string]bool, ignoreGlobs []string) int {
	return fsutil.CountFiles(dir, ignoreDirs, ignoreGlobs)
}

// DefaultIgnoreDirs are build, VCS and dependency-cache directory names
// excluded from discovery and file counting. Hidden directories are
// excluded unconditionally.
var DefaultIgnoreDirs = map[string]bool{
	"node_modules":     true,
	"bower_components": true,
	"dist":             true,
	"build":            true,
	"out":              true,
	"target":           true,
	"vendor":           true,
	"bin":              true,
	"obj":              true,
	"coverage":         true,
	"tmp":              true,
	"venv":             true,
	"__pycache__":      true,
}
