// Package indicator defines the static tables that drive project and
// workspace classification. An indicator maps a manifest filename or glob
// to a type tag; project indicators also carry a weight. The tables are
// immutable data injected into the engine, so tests can run with fixture
// registries.
package indicator

// ProjectType tags the technology of a classified project.
type ProjectType string

const (
	TypeNode    ProjectType = "node"
	TypeNext    ProjectType = "nextjs"
	TypeAngular ProjectType = "angular"
	TypeVue     ProjectType = "vue"
	TypeSvelte  ProjectType = "svelte"
	TypeNuxt    ProjectType = "nuxt"
	TypeGo      ProjectType = "go"
	TypeRust    ProjectType = "rust"
	TypePython  ProjectType = "python"
	TypeMaven   ProjectType = "maven"
	TypeGradle  ProjectType = "gradle"
	TypePHP     ProjectType = "php"
	TypeRuby    ProjectType = "ruby"
	TypeDotnet  ProjectType = "dotnet"
	TypeDart    ProjectType = "dart"
	TypeSwift   ProjectType = "swift"
	TypeCpp     ProjectType = "cpp"
)

// WorkspaceType labels the convention governing a multi-project root.
type WorkspaceType string

const (
	WorkspacePnpm     WorkspaceType = "pnpm"
	WorkspaceLerna    WorkspaceType = "lerna"
	WorkspaceRush     WorkspaceType = "rush"
	WorkspaceMelos    WorkspaceType = "melos"
	WorkspaceGoWork   WorkspaceType = "go-workspace"
	WorkspaceCargo    WorkspaceType = "cargo-workspace"
	WorkspaceVSCode   WorkspaceType = "vscode-workspace"
	WorkspaceYarn     WorkspaceType = "yarn"
	WorkspaceNpm      WorkspaceType = "npm"
	// WorkspaceImplicit labels a root that has no workspace manifest but
	// holds more than one discovered project.
	WorkspaceImplicit WorkspaceType = "implicit multi-project"
)

// ProjectIndicator associates a manifest pattern with a project type and a
// detection weight. Manifest files weigh 10, framework-specific config
// files 15 (they override the generic ecosystem tag), lockfiles 5.
type ProjectIndicator struct {
	Pattern string
	Type    ProjectType
	Weight  int
}

// WorkspaceIndicator associates a marker pattern with a workspace
// convention. The table is ordered; the first marker present under the
// root wins.
type WorkspaceIndicator struct {
	Pattern string
	Type    WorkspaceType
}

// Registry holds the indicator tables. Read-only after construction.
type Registry struct {
	projects   []ProjectIndicator
	workspaces []WorkspaceIndicator
}

// NewRegistry builds a registry from explicit tables. Registration order of
// project indicators is the tie-break priority for equal weights.
func NewRegistry(projects []ProjectIndicator, workspaces []WorkspaceIndicator) *Registry {
	return &Registry{projects: projects, workspaces: workspaces}
}

// Projects returns the project indicator table in registration order.
func (r *Registry) Projects() []ProjectIndicator {
	return r.projects
}

// Workspaces returns the ordered workspace indicator table.
func (r *Registry) Workspaces() []WorkspaceIndicator {
	return r.workspaces
}

// Default returns the built-in indicator tables covering the supported
// ecosystems.
func Default() *Registry {
	return NewRegistry(defaultProjects, defaultWorkspaces)
}

var defaultProjects = []ProjectIndicator{
	// Framework configs outrank the generic ecosystem manifest.
	{Pattern: "next.config.js", Type: TypeNext, Weight: 15},
	{Pattern: "next.config.mjs", Type: TypeNext, Weight: 15},
	{Pattern: "next.config.ts", Type: TypeNext, Weight: 15},
	{Pattern: "angular.json", Type: TypeAngular, Weight: 15},
	{Pattern: "vue.config.js", Type: TypeVue, Weight: 15},
	{Pattern: "svelte.config.js", Type: TypeSvelte, Weight: 15},
	{Pattern: "nuxt.config.js", Type: TypeNuxt, Weight: 15},
	{Pattern: "nuxt.config.ts", Type: TypeNuxt, Weight: 15},

	// Ecosystem manifests.
	{Pattern: "package.json", Type: TypeNode, Weight: 10},
	{Pattern: "go.mod", Type: TypeGo, Weight: 10},
	{Pattern: "Cargo.toml", Type: TypeRust, Weight: 10},
	{Pattern: "pyproject.toml", Type: TypePython, Weight: 10},
	{Pattern: "pom.xml", Type: TypeMaven, Weight: 10},
	{Pattern: "build.gradle", Type: TypeGradle, Weight: 10},
	{Pattern: "build.gradle.kts", Type: TypeGradle, Weight: 10},
	{Pattern: "composer.json", Type: TypePHP, Weight: 10},
	{Pattern: "Gemfile", Type: TypeRuby, Weight: 10},
	{Pattern: "pubspec.yaml", Type: TypeDart, Weight: 10},
	{Pattern: "Package.swift", Type: TypeSwift, Weight: 10},
	{Pattern: "*.csproj", Type: TypeDotnet, Weight: 10},
	{Pattern: "*.fsproj", Type: TypeDotnet, Weight: 10},

	// Weaker secondary markers.
	{Pattern: "setup.py", Type: TypePython, Weight: 8},
	{Pattern: "tsconfig.json", Type: TypeNode, Weight: 8},
	{Pattern: "*.sln", Type: TypeDotnet, Weight: 8},
	{Pattern: "CMakeLists.txt", Type: TypeCpp, Weight: 8},
	{Pattern: "requirements.txt", Type: TypePython, Weight: 6},
	{Pattern: "Pipfile", Type: TypePython, Weight: 6},

	// Lockfiles corroborate but never decide the type on their own.
	{Pattern: "package-lock.json", Type: TypeNode, Weight: 5},
	{Pattern: "yarn.lock", Type: TypeNode, Weight: 5},
	{Pattern: "pnpm-lock.yaml", Type: TypeNode, Weight: 5},
	{Pattern: "go.sum", Type: TypeGo, Weight: 5},
	{Pattern: "Cargo.lock", Type: TypeRust, Weight: 5},
	{Pattern: "poetry.lock", Type: TypePython, Weight: 5},
	{Pattern: "composer.lock", Type: TypePHP, Weight: 5},
	{Pattern: "Gemfile.lock", Type: TypeRuby, Weight: 5},
}

// Ordered by specificity: dedicated workspace manifests first, then
// markers that double as ordinary project manifests (those require the
// convention analyzer to confirm a workspace-defining section before the
// match commits).
var defaultWorkspaces = []WorkspaceIndicator{
	{Pattern: "pnpm-workspace.yaml", Type: WorkspacePnpm},
	{Pattern: "lerna.json", Type: WorkspaceLerna},
	{Pattern: "rush.json", Type: WorkspaceRush},
	{Pattern: "melos.yaml", Type: WorkspaceMelos},
	{Pattern: "go.work", Type: WorkspaceGoWork},
	{Pattern: "*.code-workspace", Type: WorkspaceVSCode},
	{Pattern: "Cargo.toml", Type: WorkspaceCargo},
	{Pattern: "package.json", Type: WorkspaceNpm},
}
