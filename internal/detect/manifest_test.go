package detect

import (
	"testing"

	"github.com/koksalmehmet/atlas/internal/indicator"
)

func TestProjectNameExtraction(t *testing.T) {
	tests := []struct {
		name     string
		typ      indicator.ProjectType
		manifest string
		content  string
		want     string
	}{
		{
			name:     "package.json name",
			typ:      indicator.TypeNode,
			manifest: "package.json",
			content:  `{"name": "@scope/widget", "version": "1.0.0"}`,
			want:     "@scope/widget",
		},
		{
			name:     "go module path last segment",
			typ:      indicator.TypeGo,
			manifest: "go.mod",
			content:  "module github.com/acme/billing\n\ngo 1.25\n",
			want:     "billing",
		},
		{
			name:     "bare go module name",
			typ:      indicator.TypeGo,
			manifest: "go.mod",
			content:  "module billing\n",
			want:     "billing",
		},
		{
			name:     "cargo package name",
			typ:      indicator.TypeRust,
			manifest: "Cargo.toml",
			content:  "[package]\nname = \"ripgrep\"\nversion = \"14.0.0\"\n",
			want:     "ripgrep",
		},
		{
			name:     "cargo workspace-only manifest has no name",
			typ:      indicator.TypeRust,
			manifest: "Cargo.toml",
			content:  "[workspace]\nmembers = [\"crates/*\"]\n",
			want:     "",
		},
		{
			name:     "pyproject PEP 621",
			typ:      indicator.TypePython,
			manifest: "pyproject.toml",
			content:  "[project]\nname = \"httpx\"\nrequires-python = \">=3.9\"\n",
			want:     "httpx",
		},
		{
			name:     "pyproject poetry",
			typ:      indicator.TypePython,
			manifest: "pyproject.toml",
			content:  "[tool.poetry]\nname = \"pendulum\"\n",
			want:     "pendulum",
		},
		{
			name:     "maven first artifactId",
			typ:      indicator.TypeMaven,
			manifest: "pom.xml",
			content:  "<project><artifactId>spring-core</artifactId><dependencies><dependency><artifactId>junit</artifactId></dependency></dependencies></project>",
			want:     "spring-core",
		},
		{
			name:     "composer strips vendor prefix",
			typ:      indicator.TypePHP,
			manifest: "composer.json",
			content:  `{"name": "laravel/framework"}`,
			want:     "framework",
		},
		{
			name:     "pubspec name",
			typ:      indicator.TypeDart,
			manifest: "pubspec.yaml",
			content:  "name: flutter_bloc\ndescription: state management\n",
			want:     "flutter_bloc",
		},
		{
			name:     "malformed manifest yields empty",
			typ:      indicator.TypeNode,
			manifest: "package.json",
			content:  "{not json",
			want:     "",
		},
		{
			name:     "type without a name source",
			typ:      indicator.TypeCpp,
			manifest: "CMakeLists.txt",
			content:  "project(engine)\n",
			want:     "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			root := t.TempDir()
			write(t, root, tt.manifest, tt.content)

			got := newTestScorer().projectName(root, tt.typ)
			if got != tt.want {
				t.Errorf("projectName(%s) = %q, want %q", tt.typ, got, tt.want)
			}
		})
	}
}

func TestProjectNameMissingManifest(t *testing.T) {
	root := t.TempDir()
	if got := newTestScorer().projectName(root, indicator.TypeGo); got != "" {
		t.Errorf("expected empty name for missing manifest, got %q", got)
	}
}
