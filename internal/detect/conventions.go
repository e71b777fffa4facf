package detect

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/koksalmehmet/atlas/internal/indicator"
	"github.com/koksalmehmet/atlas/internal/jsonc"
	"github.com/koksalmehmet/atlas/internal/logger"
)

// conventionResult is what a sub-analyzer reports back to the topology
// detector.
type conventionResult struct {
	// confirmed is false when the marker file exists but does not actually
	// declare a workspace (a Cargo.toml without [workspace], a
	// package.json without "workspaces"). The detector then falls through
	// to the next indicator.
	confirmed bool
	// workspaceType may refine the indicator's label (npm vs yarn,
	// decided by the lockfile present).
	workspaceType indicator.WorkspaceType
	candidates    []Candidate
	patterns      []string
}

type analyzer func(d *Detector, root string) conventionResult

var analyzers = map[indicator.WorkspaceType]analyzer{
	indicator.WorkspacePnpm:   analyzePnpm,
	indicator.WorkspaceLerna:  analyzeLerna,
	indicator.WorkspaceRush:   analyzeRush,
	indicator.WorkspaceMelos:  analyzeMelos,
	indicator.WorkspaceGoWork: analyzeGoWork,
	indicator.WorkspaceVSCode: analyzeCodeWorkspace,
	indicator.WorkspaceCargo:  analyzeCargoWorkspace,
	indicator.WorkspaceNpm:    analyzeNpmWorkspaces,
}

// scorePatterns expands package globs against the root and scores every
// matching directory. Non-existent targets simply produce no candidate.
func (d *Detector) scorePatterns(root string, patterns []string) []Candidate {
	var cands []Candidate
	seen := make(map[string]bool)
	for _, pattern := range patterns {
		for _, rel := range d.probe.ExpandGlob(root, pattern) {
			if rel == "." || seen[rel] {
				continue
			}
			seen[rel] = true
			if c := d.scorer.Score(filepath.Join(root, rel), rel); c != nil {
				cands = append(cands, *c)
			}
		}
	}
	return cands
}

// analyzePnpm expands the package globs declared in pnpm-workspace.yaml.
func analyzePnpm(d *Detector, root string) conventionResult {
	res := conventionResult{confirmed: true}
	data, err := d.probe.ReadFile(filepath.Join(root, "pnpm-workspace.yaml"))
	if err != nil {
		logger.Warn("pnpm-workspace.yaml unreadable: %v", err)
		return res
	}
	var manifest struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		logger.Warn("pnpm-workspace.yaml malformed: %v", err)
		return res
	}
	res.patterns = manifest.Packages
	res.candidates = d.scorePatterns(root, manifest.Packages)
	return res
}

func analyzeLerna(d *Detector, root string) conventionResult {
	res := conventionResult{confirmed: true}
	data, err := d.probe.ReadFile(filepath.Join(root, "lerna.json"))
	if err != nil {
		logger.Warn("lerna.json unreadable: %v", err)
		return res
	}
	var manifest struct {
		Packages []string `json:"packages"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		logger.Warn("lerna.json malformed: %v", err)
		return res
	}
	if len(manifest.Packages) == 0 {
		manifest.Packages = []string{"packages/*"}
	}
	res.patterns = manifest.Packages
	res.candidates = d.scorePatterns(root, manifest.Packages)
	return res
}

// analyzeRush reads the explicit project list out of rush.json. Rush
// allows comments in its config, so it goes through the JSONC decoder.
func analyzeRush(d *Detector, root string) conventionResult {
	res := conventionResult{confirmed: true}
	data, err := d.probe.ReadFile(filepath.Join(root, "rush.json"))
	if err != nil {
		logger.Warn("rush.json unreadable: %v", err)
		return res
	}
	var manifest struct {
		Projects []struct {
			PackageName   string `json:"packageName"`
			ProjectFolder string `json:"projectFolder"`
		} `json:"projects"`
	}
	if err := jsonc.Decode(data, &manifest); err != nil {
		logger.Warn("rush.json malformed: %v", err)
		return res
	}
	for _, p := range manifest.Projects {
		rel := filepath.ToSlash(p.ProjectFolder)
		res.patterns = append(res.patterns, rel)
		c := d.scorer.Score(filepath.Join(root, rel), rel)
		if c == nil {
			continue
		}
		if p.PackageName != "" {
			c.Name = p.PackageName
		}
		res.candidates = append(res.candidates, *c)
	}
	return res
}

func analyzeMelos(d *Detector, root string) conventionResult {
	res := conventionResult{confirmed: true}
	data, err := d.probe.ReadFile(filepath.Join(root, "melos.yaml"))
	if err != nil {
		logger.Warn("melos.yaml unreadable: %v", err)
		return res
	}
	var manifest struct {
		Packages []string `yaml:"packages"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		logger.Warn("melos.yaml malformed: %v", err)
		return res
	}
	if len(manifest.Packages) == 0 {
		manifest.Packages = []string{"packages/**"}
	}
	res.patterns = manifest.Packages
	res.candidates = d.scorePatterns(root, manifest.Packages)
	return res
}

// analyzeGoWork parses the use directives of a go.work file.
func analyzeGoWork(d *Detector, root string) conventionResult {
	res := conventionResult{confirmed: true}
	data, err := d.probe.ReadFile(filepath.Join(root, "go.work"))
	if err != nil {
		logger.Warn("go.work unreadable: %v", err)
		return res
	}
	var dirs []string
	inUse := false
	for _, line := range strings.Split(string(data), "\n") {
		line = strings.TrimSpace(line)
		switch {
		case line == "use (":
			inUse = true
		case inUse && line == ")":
			inUse = false
		case inUse:
			p := strings.Trim(line, " \t\"")
			if p != "" && !strings.HasPrefix(p, "//") {
				dirs = append(dirs, p)
			}
		case strings.HasPrefix(line, "use "):
			p := strings.Trim(strings.TrimPrefix(line, "use "), " \t\"")
			if p != "" {
				dirs = append(dirs, p)
			}
		}
	}
	for _, dir := range dirs {
		rel := filepath.ToSlash(filepath.Clean(dir))
		res.patterns = append(res.patterns, rel)
		if rel == "." {
			continue
		}
		if c := d.scorer.Score(filepath.Join(root, rel), rel); c != nil {
			res.candidates = append(res.candidates, *c)
		}
	}
	return res
}

// codeWorkspaceFolder is one folder entry of a VS Code multi-root
// workspace descriptor.
type codeWorkspaceFolder struct {
	Path string `json:"path"`
	Name string `json:"name"`
}

// analyzeCodeWorkspace resolves the folder entries of a *.code-workspace
// descriptor. Entries may point anywhere on disk; ones outside the root
// become external candidates carrying the declared name and path instead
// of the directory's own metadata. Projects are a flat set keyed by
// absolute path, so descriptors referencing each other cannot recurse.
func analyzeCodeWorkspace(d *Detector, root string) conventionResult {
	res := conventionResult{confirmed: true}
	files := d.probe.GlobFiles(root, "*.code-workspace")
	if len(files) == 0 {
		return conventionResult{}
	}
	data, err := d.probe.ReadFile(filepath.Join(root, files[0]))
	if err != nil {
		logger.Warn("%s unreadable: %v", files[0], err)
		return res
	}
	var manifest struct {
		Folders []codeWorkspaceFolder `json:"folders"`
	}
	if err := jsonc.Decode(data, &manifest); err != nil {
		logger.Warn("%s malformed: %v", files[0], err)
		return res
	}
	for _, folder := range manifest.Folders {
		if folder.Path == "" {
			continue
		}
		declared := filepath.ToSlash(folder.Path)
		abs := folder.Path
		if !filepath.IsAbs(abs) {
			// Relative to the descriptor's own location, which sits in
			// the root.
			abs = filepath.Join(root, folder.Path)
		}
		abs = filepath.Clean(abs)
		rel, err := filepath.Rel(root, abs)
		external := err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator))
		if !external {
			rel = filepath.ToSlash(rel)
		}
		res.patterns = append(res.patterns, declared)

		c := d.scorer.Score(abs, declared)
		if c == nil {
			continue
		}
		if external {
			c.IsExternal = true
			c.Path = declared
		} else {
			c.Path = rel
		}
		if folder.Name != "" {
			c.Name = folder.Name
		}
		res.candidates = append(res.candidates, *c)
	}
	return res
}

var cargoMembersRe = regexp.MustCompile(`(?ms)\[workspace\].*?members\s*=\s*\[([^\]]*)\]`)
var quotedRe = regexp.MustCompile(`"([^"]+)"`)

// analyzeCargoWorkspace confirms only when Cargo.toml carries a
// [workspace] section; a plain crate manifest falls through so the root
// can still classify as an ordinary Rust project.
func analyzeCargoWorkspace(d *Detector, root string) conventionResult {
	data, err := d.probe.ReadFile(filepath.Join(root, "Cargo.toml"))
	if err != nil {
		return conventionResult{}
	}
	content := string(data)
	if !strings.Contains(content, "[workspace]") {
		return conventionResult{}
	}
	res := conventionResult{confirmed: true}
	m := cargoMembersRe.FindStringSubmatch(content)
	if m == nil {
		return res
	}
	for _, q := range quotedRe.FindAllStringSubmatch(m[1], -1) {
		res.patterns = append(res.patterns, q[1])
	}
	res.candidates = d.scorePatterns(root, res.patterns)
	return res
}

// analyzeNpmWorkspaces confirms only when package.json declares a
// "workspaces" field. The lockfile present decides whether the workspace
// is labelled yarn or npm.
func analyzeNpmWorkspaces(d *Detector, root string) conventionResult {
	data, err := d.probe.ReadFile(filepath.Join(root, "package.json"))
	if err != nil {
		return conventionResult{}
	}
	var manifest struct {
		Workspaces any `json:"workspaces"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return conventionResult{}
	}
	patterns := workspacesField(manifest.Workspaces)
	if len(patterns) == 0 {
		return conventionResult{}
	}
	res := conventionResult{confirmed: true, workspaceType: indicator.WorkspaceNpm}
	if d.probe.Exists("yarn.lock", root) {
		res.workspaceType = indicator.WorkspaceYarn
	}
	res.patterns = patterns
	res.candidates = d.scorePatterns(root, patterns)
	return res
}

// workspacesField flattens the two shapes package.json allows: a bare
// array of globs, or an object with a "packages" array.
func workspacesField(v any) []string {
	switch ws := v.(type) {
	case []any:
		var out []string
		for _, w := range ws {
			if s, ok := w.(string); ok {
				out = append(out, s)
			}
		}
		return out
	case map[string]any:
		if packages, ok := ws["packages"].([]any); ok {
			var out []string
			for _, p := range packages {
				if s, ok := p.(string); ok {
					out = append(out, s)
				}
			}
			return out
		}
	}
	return nil
}
