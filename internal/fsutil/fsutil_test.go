package fsutil

import (
	"os"
	"path/filepath"
	"testing"
)

func mkfile(t *testing.T, root, name string) {
	t.Helper()
	path := filepath.Join(root, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte("x"), 0o644); err != nil {
		t.Fatal(err)
	}
}

func TestExists(t *testing.T) {
	root := t.TempDir()
	mkfile(t, root, "package.json")
	mkfile(t, root, "src/main.csproj")

	tests := []struct {
		pattern string
		want    bool
	}{
		{"package.json", true},
		{"go.mod", false},
		{"*.json", true},
		{"*.csproj", false},
		{"src/*.csproj", true},
		{"**/*.csproj", true},
		{"*.sln", false},
	}
	for _, tt := range tests {
		if got := Exists(tt.pattern, root); got != tt.want {
			t.Errorf("Exists(%q) = %v, want %v", tt.pattern, got, tt.want)
		}
	}
}

func TestExistsMissingBaseDir(t *testing.T) {
	if Exists("package.json", filepath.Join(t.TempDir(), "nope")) {
		t.Error("expected false for missing base directory")
	}
}

func TestExpandGlob(t *testing.T) {
	root := t.TempDir()
	mkfile(t, root, "packages/web/package.json")
	mkfile(t, root, "packages/api/package.json")
	mkfile(t, root, "packages/README.md")
	mkfile(t, root, "apps/cli/main.go")

	tests := []struct {
		pattern string
		want    []string
	}{
		{"packages/*", []string{"packages/api", "packages/web"}},
		{"packages/**", []string{"packages/api", "packages/web"}},
		{"apps/cli", []string{"apps/cli"}},
		{"apps/cli/", []string{"apps/cli"}},
		{"missing/*", nil},
		{"missing", nil},
		{"packages/README.md", nil}, // files are not project directories
	}
	for _, tt := range tests {
		got := ExpandGlob(root, tt.pattern)
		if len(got) != len(tt.want) {
			t.Errorf("ExpandGlob(%q) = %v, want %v", tt.pattern, got, tt.want)
			continue
		}
		for i := range tt.want {
			if got[i] != tt.want[i] {
				t.Errorf("ExpandGlob(%q) = %v, want %v", tt.pattern, got, tt.want)
				break
			}
		}
	}
}

func TestGlobFiles(t *testing.T) {
	root := t.TempDir()
	mkfile(t, root, "team.code-workspace")
	mkfile(t, root, "other.code-workspace")
	if err := os.MkdirAll(filepath.Join(root, "dir.code-workspace"), 0o755); err != nil {
		t.Fatal(err)
	}

	got := GlobFiles(root, "*.code-workspace")
	want := []string{"other.code-workspace", "team.code-workspace"}
	if len(got) != 2 || got[0] != want[0] || got[1] != want[1] {
		t.Errorf("GlobFiles = %v, want %v (sorted, directories excluded)", got, want)
	}
}

func TestListDirectories(t *testing.T) {
	root := t.TempDir()
	mkfile(t, root, "file.txt")
	for _, d := range []string{"b", "a"} {
		if err := os.Mkdir(filepath.Join(root, d), 0o755); err != nil {
			t.Fatal(err)
		}
	}

	names, err := ListDirectories(root)
	if err != nil {
		t.Fatal(err)
	}
	if len(names) != 2 || names[0] != "a" || names[1] != "b" {
		t.Errorf("ListDirectories = %v, want [a b]", names)
	}

	if _, err := ListDirectories(filepath.Join(root, "missing")); err == nil {
		t.Error("expected error for missing directory")
	}
}

func TestMatchesIgnore(t *testing.T) {
	globs := []string{"node_modules/**", "**/*.log", "dist"}
	tests := []struct {
		path string
		want bool
	}{
		{"node_modules/left-pad/index.js", true},
		{"node_modules", true}, // "dir/**" covers the directory itself
		{"src/app.log", true},
		{"dist", true},
		{"src/app.go", false},
		{"", false},
	}
	for _, tt := range tests {
		if got := MatchesIgnore(tt.path, globs); got != tt.want {
			t.Errorf("MatchesIgnore(%q) = %v, want %v", tt.path, got, tt.want)
		}
	}
}

func TestCountFiles(t *testing.T) {
	root := t.TempDir()
	mkfile(t, root, "main.go")
	mkfile(t, root, "pkg/util.go")
	mkfile(t, root, "node_modules/dep/index.js")
	mkfile(t, root, ".git/config")

	ignore := map[string]bool{"node_modules": true}
	if got := CountFiles(root, ignore, nil); got != 2 {
		t.Errorf("CountFiles = %d, want 2", got)
	}
}

func TestCountFilesHonorsIgnoreGlobs(t *testing.T) {
	root := t.TempDir()
	mkfile(t, root, "main.go")
	mkfile(t, root, "generated/api.go")
	mkfile(t, root, "docs/readme.txt")

	got := CountFiles(root, nil, []string{"generated/**", "**/*.txt"})
	if got != 1 {
		t.Errorf("CountFiles = %d, want 1", got)
	}
}
