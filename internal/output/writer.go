// Package output writes rendered documents to disk atomically: the document
// lands under its final path only after a successful fsync and rename, so a
// failed run never leaves a partial file behind.
package output

import (
	"errors"
	"fmt"

	"github.com/google/renameio/v2"
)

// ErrWrite marks output files that could not be written. Match with
// errors.Is.
var ErrWrite = errors.New("output: write failed")

// FileWriter writes documents through renameio pending files.
type FileWriter struct{}

// Write creates or replaces path with data.
func (FileWriter) Write(path string, data []byte) error {
	pending, err := renameio.NewPendingFile(path)
	if err != nil {
		return fmt.Errorf("output: create pending file for %q: %w: %v", path, ErrWrite, err)
	}
	defer func() {
		// Removes the temp file when the replace below never happened.
		_ = pending.Cleanup()
	}()

	if _, err := pending.Write(data); err != nil {
		return fmt.Errorf("output: write %q: %w: %v", path, ErrWrite, err)
	}
	if err := pending.CloseAtomicallyReplace(); err != nil {
		return fmt.Errorf("output: replace %q: %w: %v", path, ErrWrite, err)
	}
	return nil
}
