package indicator

import "testing"

func TestDefaultProjectTable(t *testing.T) {
	reg := Default()
	projects := reg.Projects()
	if len(projects) == 0 {
		t.Fatal("empty project table")
	}

	seen := make(map[string]bool)
	for _, p := range projects {
		if p.Pattern == "" || p.Type == "" {
			t.Errorf("incomplete indicator: %+v", p)
		}
		if p.Weight < 5 || p.Weight > 15 {
			t.Errorf("%s: weight %d outside the expected band", p.Pattern, p.Weight)
		}
		if seen[p.Pattern] {
			t.Errorf("duplicate pattern %s", p.Pattern)
		}
		seen[p.Pattern] = true
	}

	// Framework configs must outrank their ecosystem manifest so the
	// specific type wins the primary-type vote.
	weightOf := func(pattern string) int {
		for _, p := range projects {
			if p.Pattern == pattern {
				return p.Weight
			}
		}
		t.Fatalf("pattern %s missing from table", pattern)
		return 0
	}
	if weightOf("next.config.js") <= weightOf("package.json") {
		t.Error("framework config must weigh more than the generic manifest")
	}
	if weightOf("yarn.lock") >= weightOf("package.json") {
		t.Error("lockfiles must weigh less than manifests")
	}
}

func TestDefaultWorkspaceTableOrder(t *testing.T) {
	workspaces := Default().Workspaces()
	position := make(map[WorkspaceType]int)
	for i, w := range workspaces {
		if w.Pattern == "" || w.Type == "" {
			t.Errorf("incomplete indicator: %+v", w)
		}
		position[w.Type] = i
	}

	// Dedicated workspace manifests must rank ahead of markers that double
	// as plain project manifests.
	for _, dedicated := range []WorkspaceType{WorkspacePnpm, WorkspaceLerna, WorkspaceRush, WorkspaceGoWork} {
		for _, dual := range []WorkspaceType{WorkspaceCargo, WorkspaceNpm} {
			if position[dedicated] > position[dual] {
				t.Errorf("%s must rank before %s", dedicated, dual)
			}
		}
	}
}

func TestNewRegistryPreservesOrder(t *testing.T) {
	projects := []ProjectIndicator{
		{Pattern: "a", Type: "x", Weight: 10},
		{Pattern: "b", Type: "y", Weight: 10},
	}
	reg := NewRegistry(projects, nil)
	got := reg.Projects()
	if len(got) != 2 || got[0].Pattern != "a" || got[1].Pattern != "b" {
		t.Errorf("registration order not preserved: %+v", got)
	}
	if reg.Workspaces() != nil {
		t.Errorf("expected nil workspace table, got %+v", reg.Workspaces())
	}
}
