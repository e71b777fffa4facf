package detect

import (
	"path/filepath"

	"github.com/koksalmehmet/atlas/internal/indicator"
	"github.com/koksalmehmet/atlas/internal/logger"
)

// Detector classifies a root directory into a workspace, a multi-project
// tree or a single project. The caller must ensure the root exists;
// behavior on a missing root is undefined.
type Detector struct {
	probe       Probe
	scorer      *Scorer
	reg         *indicator.Registry
	ignoreGlobs []string
}

// NewDetector builds a detector over the given probe and registry.
func NewDetector(probe Probe, reg *indicator.Registry) *Detector {
	return &Detector{
		probe:  probe,
		scorer: NewScorer(probe, reg),
		reg:    reg,
	}
}

// New returns a detector with the default filesystem probe and the
// built-in indicator tables.
func New() *Detector {
	return NewDetector(NewProbe(), indicator.Default())
}

// Scorer exposes the detector's scorer for callers that classify single
// directories.
func (d *Detector) Scorer() *Scorer { return d.scorer }

// SetIgnoreGlobs adds user-configured ignore globs on top of the built-in
// ignore set. Discovery skips matching subdirectories and file counting
// skips matching paths.
func (d *Detector) SetIgnoreGlobs(globs []string) {
	d.ignoreGlobs = globs
	d.scorer.ignoreGlobs = globs
}

// Detect walks the ordered workspace indicator table (first match wins),
// lets the matching convention analyzer confirm and enrich the result,
// merges convention-declared candidates with a plain depth-1 scan, and
// returns the deduplicated, confidence-sorted project list.
func (d *Detector) Detect(rootDir string) Result {
	root, err := filepath.Abs(rootDir)
	if err != nil {
		root = rootDir
	}

	result := Result{Structure: StructureSingle}
	var declared []Candidate

	for _, ind := range d.reg.Workspaces() {
		if !d.probe.Exists(ind.Pattern, root) {
			continue
		}
		run, ok := analyzers[ind.Type]
		if !ok {
			continue
		}
		conv := run(d, root)
		if !conv.confirmed {
			// Marker present but not workspace-relevant; try the next
			// indicator.
			continue
		}
		result.IsWorkspace = true
		result.Structure = StructureWorkspace
		result.WorkspaceType = ind.Type
		if conv.workspaceType != "" {
			result.WorkspaceType = conv.workspaceType
		}
		result.PackagePatterns = conv.patterns
		declared = conv.candidates
		logger.Info("workspace convention: %s (%d declared candidates)", result.WorkspaceType, len(declared))
		break
	}

	scanned := d.Discover(root)
	projects := mergeCandidates(scanned, declared)
	sortByConfidence(projects)
	if projects == nil {
		projects = []Candidate{}
	}
	result.Projects = projects

	if !result.IsWorkspace && len(projects) > 1 {
		result.Structure = StructureMulti
		result.WorkspaceType = indicator.WorkspaceImplicit
	}

	return result
}
