package statefile

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestWriteBytesCreatesParentAndLeavesNoTempFiles(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "nested", "state", "record.json")

	if err := WriteBytes(path, []byte("hello\n")); err != nil {
		t.Fatalf("write bytes failed: %v", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("read back failed: %v", err)
	}
	if string(data) != "hello\n" {
		t.Fatalf("content mismatch: got %q", string(data))
	}

	entries, err := os.ReadDir(filepath.Dir(path))
	if err != nil {
		t.Fatalf("read dir failed: %v", err)
	}
	for _, e := range entries {
		if strings.HasPrefix(e.Name(), ".ytpd-tmp-") {
			t.Fatalf("temp file left behind: %s", e.Name())
		}
	}
}

func TestWriteJSONRoundTrip(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "record.json")

	type record struct {
		PID int `json:"pid"`
	}
	if err := WriteJSON(path, record{PID: 4242}); err != nil {
		t.Fatalf("write JSON failed: %v", err)
	}

	var got record
	if err := ReadJSON(path, &got); err != nil {
		t.Fatalf("read JSON failed: %v", err)
	}
	if got.PID != 4242 {
		t.Fatalf("pid mismatch: got %d want %d", got.PID, 4242)
	}
}

func TestReadJSONRejectsMalformedFile(t *testing.T) {
	tmp := t.TempDir()
	path := filepath.Join(tmp, "broken.json")
	if err := os.WriteFile(path, []byte("{not json"), 0o644); err != nil {
		t.Fatalf("seed broken file: %v", err)
	}

	var v map[string]any
	if err := ReadJSON(path, &v); err == nil {
		t.Fatal("expected parse error for malformed JSON")
	}
}
