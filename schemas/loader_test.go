package schemas

import "testing"

func TestCompileAllSchemas(t *testing.T) {
	for _, name := range []string{Workspace, Detection} {
		if _, err := Compile(name); err != nil {
			t.Errorf("Compile(%s) failed: %v", name, err)
		}
	}
}

func TestCompileUnknownSchema(t *testing.T) {
	if _, err := Compile("nope"); err == nil {
		t.Error("expected error for unknown schema name")
	}
}

func TestValidateDetection(t *testing.T) {
	valid := map[string]any{
		"isWorkspace": true,
		"structure":   "workspace",
		"projects": []any{
			map[string]any{
				"path":       ".",
				"name":       "root",
				"confidence": 66.7,
			},
		},
	}
	if err := Validate(Detection, valid); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}

	invalid := map[string]any{
		"isWorkspace": true,
		"structure":   "workspace",
		"projects": []any{
			map[string]any{
				"path":       ".",
				"name":       "root",
				"confidence": 150.0,
			},
		},
	}
	if err := Validate(Detection, invalid); err == nil {
		t.Error("confidence above 100 must fail validation")
	}
}

func TestValidateWorkspace(t *testing.T) {
	valid := map[string]any{
		"schemaVersion": "1.0.0",
		"kind":          "atlas/workspace",
		"workspace": map[string]any{
			"name":      "demo",
			"structure": "single-project",
		},
	}
	if err := Validate(Workspace, valid); err != nil {
		t.Errorf("valid document rejected: %v", err)
	}

	missing := map[string]any{
		"schemaVersion": "1.0.0",
		"kind":          "atlas/workspace",
	}
	if err := Validate(Workspace, missing); err == nil {
		t.Error("missing workspace block must fail validation")
	}
}
