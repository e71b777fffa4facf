package starter

import (
	"strings"
	"testing"
)

func TestGet(t *testing.T) {
	for _, name := range []string{"workspace.jsonc", "mcp-server.json"} {
		content, err := Get(name)
		if err != nil {
			t.Errorf("Get(%s) failed: %v", name, err)
			continue
		}
		if content == "" {
			t.Errorf("Get(%s) returned empty content", name)
		}
	}

	if _, err := Get("missing.tmpl"); err == nil {
		t.Error("expected error for unknown template")
	}
}

func TestApply(t *testing.T) {
	tpl, err := Get("workspace.jsonc")
	if err != nil {
		t.Fatal(err)
	}
	out := Apply(tpl, map[string]string{
		"name":          "demo",
		"workspaceType": "pnpm",
		"structure":     "workspace",
		"createdAt":     "2026-01-01T00:00:00Z",
	})
	if strings.Contains(out, "{{") {
		t.Errorf("unreplaced placeholders remain:\n%s", out)
	}
	if !strings.Contains(out, `"name": "demo"`) {
		t.Errorf("substitution missing:\n%s", out)
	}
}

func TestApplyLeavesUnknownPlaceholders(t *testing.T) {
	out := Apply("hello {{who}}", map[string]string{"other": "x"})
	if out != "hello {{who}}" {
		t.Errorf("got %q", out)
	}
}
