// Package compare checks a rendered document against a reference file. The
// check is deliberately textual: structurally equivalent documents with
// different whitespace or key order report a mismatch.
package compare

import (
	"bytes"
	"fmt"
	"os"

	"github.com/google/go-cmp/cmp"
)

// Result captures a comparison outcome along with both documents.
type Result struct {
	Match     bool
	Rendered  []byte
	Reference []byte
	// Diff is a human-readable report, populated only on mismatch.
	Diff string
}

// Files reads the reference file and compares it with the rendered document.
func Files(rendered []byte, referencePath string) (Result, error) {
	reference, err := os.ReadFile(referencePath)
	if err != nil {
		return Result{}, fmt.Errorf("compare: read reference %q: %w", referencePath, err)
	}
	return Bytes(rendered, reference), nil
}

// Bytes compares two documents byte for byte.
func Bytes(rendered, reference []byte) Result {
	result := Result{
		Match:     bytes.Equal(rendered, reference),
		Rendered:  rendered,
		Reference: reference,
	}
	if !result.Match {
		result.Diff = cmp.Diff(string(reference), string(rendered))
	}
	return result
}
