package compare_test

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/goliatone/go-stackgen/pkg/compare"
)

func TestBytesMatch(t *testing.T) {
	doc := []byte(`{"StackName": "X"}`)

	result := compare.Bytes(doc, []byte(`{"StackName": "X"}`))
	if !result.Match {
		t.Fatal("identical documents must match")
	}
	if result.Diff != "" {
		t.Fatalf("match must carry no diff, got:\n%s", result.Diff)
	}
}

func TestBytesWhitespaceMismatch(t *testing.T) {
	// Structurally equivalent, textually different: still a mismatch.
	result := compare.Bytes([]byte(`{"StackName": "X"}`), []byte(`{"StackName":"X"}`))
	if result.Match {
		t.Fatal("whitespace difference must report a mismatch")
	}
	if result.Diff == "" {
		t.Fatal("mismatch must carry a diff report")
	}
}

func TestFiles(t *testing.T) {
	dir := t.TempDir()
	reference := filepath.Join(dir, "expected.json")
	if err := os.WriteFile(reference, []byte(`{"StackName": "X"}`), 0o644); err != nil {
		t.Fatal(err)
	}

	result, err := compare.Files([]byte(`{"StackName": "X"}`), reference)
	if err != nil {
		t.Fatalf("compare: %v", err)
	}
	if !result.Match {
		t.Fatal("want match")
	}
}

func TestFilesMissingReference(t *testing.T) {
	_, err := compare.Files([]byte("{}"), filepath.Join(t.TempDir(), "missing.json"))
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want fs.ErrNotExist, got %v", err)
	}
}
