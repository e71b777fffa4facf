package detect

import (
	"encoding/json"
	"path/filepath"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/koksalmehmet/atlas/internal/indicator"
)

var (
	goModuleRe      = regexp.MustCompile(`(?m)^module\s+(\S+)`)
	cargoNameRe     = regexp.MustCompile(`(?ms)\[package\].*?^\s*name\s*=\s*"([^"]+)"`)
	pyProjectRe     = regexp.MustCompile(`(?ms)\[(?:project|tool\.poetry)\].*?^\s*name\s*=\s*"([^"]+)"`)
	mavenArtifactRe = regexp.MustCompile(`<artifactId>([^<]+)</artifactId>`)
)

// projectName extracts the declared name from the primary manifest of the
// given type. Returns "" when the manifest is absent or declares no name;
// the caller falls back to the directory base name.
func (s *Scorer) projectName(dir string, typ indicator.ProjectType) string {
	switch typ {
	case indicator.TypeNode, indicator.TypeNext, indicator.TypeAngular,
		indicator.TypeVue, indicator.TypeSvelte, indicator.TypeNuxt:
		return s.jsonNameField(filepath.Join(dir, "package.json"))
	case indicator.TypeGo:
		return s.goModuleName(filepath.Join(dir, "go.mod"))
	case indicator.TypeRust:
		return s.regexName(filepath.Join(dir, "Cargo.toml"), cargoNameRe)
	case indicator.TypePython:
		return s.regexName(filepath.Join(dir, "pyproject.toml"), pyProjectRe)
	case indicator.TypeMaven:
		return s.regexName(filepath.Join(dir, "pom.xml"), mavenArtifactRe)
	case indicator.TypePHP:
		name := s.jsonNameField(filepath.Join(dir, "composer.json"))
		// composer names are vendor/package; the package half reads better.
		if i := strings.LastIndex(name, "/"); i >= 0 {
			return name[i+1:]
		}
		return name
	case indicator.TypeDart:
		return s.yamlNameField(filepath.Join(dir, "pubspec.yaml"))
	default:
		return ""
	}
}

func (s *Scorer) jsonNameField(path string) string {
	data, err := s.probe.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Name string `json:"name"`
	}
	if err := json.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

func (s *Scorer) yamlNameField(path string) string {
	data, err := s.probe.ReadFile(path)
	if err != nil {
		return ""
	}
	var manifest struct {
		Name string `yaml:"name"`
	}
	if err := yaml.Unmarshal(data, &manifest); err != nil {
		return ""
	}
	return manifest.Name
}

func (s *Scorer) goModuleName(path string) string {
	data, err := s.probe.ReadFile(path)
	if err != nil {
		return ""
	}
	m := goModuleRe.FindSubmatch(data)
	if m == nil {
		return ""
	}
	modPath := string(m[1])
	return modPath[strings.LastIndex(modPath, "/")+1:]
}

func (s *Scorer) regexName(path string, re *regexp.Regexp) string {
	data, err := s.probe.ReadFile(path)
	if err != nil {
		return ""
	}
	m := re.FindSubmatch(data)
	if m == nil {
		return ""
	}
	return string(m[1])
}
