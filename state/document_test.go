package state

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestDocumentMissingFileYieldsDefault(t *testing.T) {
	doc := NewDocument(filepath.Join(t.TempDir(), "missing.json"), map[string]any{"current_state": "menu"})

	v, ok := doc.Read("current_state")
	if !ok || v != "menu" {
		t.Fatalf("expected default menu, got %v ok=%v", v, ok)
	}
	if _, ok := doc.Read("unknown"); ok {
		t.Fatalf("unknown key without default should report !ok")
	}
	if _, err := os.Stat(doc.Path()); !os.IsNotExist(err) {
		t.Fatalf("reading must not create the file")
	}
}

func TestDocumentCorruptFileYieldsDefault(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := NewDocument(path, map[string]any{"current_state": "menu"})
	if v, _ := doc.Read("current_state"); v != "menu" {
		t.Fatalf("expected default for corrupt file, got %v", v)
	}
}

func TestDocumentWritePreservesOtherKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	if err := os.WriteFile(path, []byte(`{"current_state":"menu","extra":"keep me"}`), 0o644); err != nil {
		t.Fatal(err)
	}
	doc := NewDocument(path, nil)

	if err := doc.Write("current_state", "game"); err != nil {
		t.Fatalf("write failed: %v", err)
	}

	b, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	var data map[string]any
	if err := json.Unmarshal(b, &data); err != nil {
		t.Fatalf("file is not valid json: %v", err)
	}
	if data["current_state"] != "game" || data["extra"] != "keep me" {
		t.Fatalf("unexpected content %v", data)
	}
	if !strings.Contains(string(b), "\n    \"") {
		t.Fatalf("expected four-space indentation, got %q", b)
	}
}

func TestDocumentWriteCreatesMissingFileFromDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "state.json")
	doc := NewDocument(path, map[string]any{"current_state": "menu", "score": 0})

	if err := doc.Write("score", 3); err != nil {
		t.Fatalf("write failed: %v", err)
	}
	all := doc.ReadAll()
	if all["current_state"] != "menu" {
		t.Fatalf("expected defaults to be written, got %v", all)
	}
	if all["score"] != float64(3) {
		t.Fatalf("expected score 3, got %v (%T)", all["score"], all["score"])
	}
}

func TestDocumentReset(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.json")
	doc := NewDocument(path, map[string]any{"current_state": "menu"})
	if err := doc.Write("current_state", "game"); err != nil {
		t.Fatal(err)
	}
	if err := doc.Reset(); err != nil {
		t.Fatal(err)
	}
	if v, _ := doc.Read("current_state"); v != "menu" {
		t.Fatalf("expected reset to menu, got %v", v)
	}
}
