package jsonc

import (
	"os"
	"path/filepath"
	"testing"
)

const sample = `{
  // the folders of this workspace
  "folders": [
    {"path": "frontend"}, /* inline */
    {"path": "backend"}
  ]
}`

type workspaceDoc struct {
	Folders []struct {
		Path string `json:"path"`
	} `json:"folders"`
}

func TestDecodeStripsComments(t *testing.T) {
	var doc workspaceDoc
	if err := Decode([]byte(sample), &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Folders) != 2 || doc.Folders[0].Path != "frontend" || doc.Folders[1].Path != "backend" {
		t.Errorf("unexpected folders: %+v", doc.Folders)
	}
}

func TestDecodeRejectsInvalidInput(t *testing.T) {
	var doc workspaceDoc
	if err := Decode([]byte("{unclosed"), &doc); err == nil {
		t.Error("expected error for invalid input")
	}
}

func TestDecodeFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ws.jsonc")
	if err := os.WriteFile(path, []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}
	var doc workspaceDoc
	if err := DecodeFile(path, &doc); err != nil {
		t.Fatal(err)
	}
	if len(doc.Folders) != 2 {
		t.Errorf("expected 2 folders, got %d", len(doc.Folders))
	}

	if err := DecodeFile(filepath.Join(t.TempDir(), "missing.jsonc"), &doc); err == nil {
		t.Error("expected error for missing file")
	}
}
