// Package document owns all access to the markdown source file: whole
// snapshot reads, cheap change fingerprints, and the checkbox toggle,
// which is the only write the tool ever performs. The document is never
// cached; every snapshot is a fresh read so the engine always parses
// what is on disk right now.
package document

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Fingerprint is a cheap identity for one on-disk state of the file.
// Two equal fingerprints mean the file has not visibly changed; polling
// compares them instead of reading content.
type Fingerprint struct {
	ModTime time.Time
	Size    int64
}

// Zero reports whether the fingerprint has never been taken.
func (f Fingerprint) Zero() bool {
	return f.ModTime.IsZero() && f.Size == 0
}

// Snapshot is the document at one instant: full content, the same
// content split into lines, and the fingerprint taken after reading.
// Lines are split on '\n' only, so a CR from a CRLF file stays at the
// end of its line string and writes remain byte-faithful.
type Snapshot struct {
	Content     string
	Lines       []string
	Fingerprint Fingerprint
}

// Store binds the lifecycle of one markdown file.
type Store struct {
	path string
}

// NewStore returns a store for the file at path. The file does not
// have to exist yet; Read reports the error when it matters.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Path returns the file path this store reads and writes.
func (s *Store) Path() string {
	return s.path
}

// Stat returns the current change fingerprint without reading content.
func (s *Store) Stat() (Fingerprint, error) {
	info, err := os.Stat(s.path)
	if err != nil {
		return Fingerprint{}, fmt.Errorf("stat %s: %w", s.path, err)
	}
	return Fingerprint{ModTime: info.ModTime(), Size: info.Size()}, nil
}

// Read takes a full snapshot of the document.
func (s *Store) Read() (Snapshot, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		return Snapshot{}, fmt.Errorf("read %s: %w", s.path, err)
	}
	fp, err := s.Stat()
	if err != nil {
		return Snapshot{}, err
	}
	content := string(data)
	return Snapshot{
		Content:     content,
		Lines:       strings.Split(content, "\n"),
		Fingerprint: fp,
	}, nil
}

// write replaces the file content atomically: the new content lands in
// a sibling temp file which is renamed over the original, so a reader
// never observes a half-written document. The original file mode is
// preserved when the file already exists.
func (s *Store) write(content string) error {
	mode := os.FileMode(0644)
	if info, err := os.Stat(s.path); err == nil {
		mode = info.Mode().Perm()
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(content), mode); err != nil {
		return fmt.Errorf("write %s: %w", tmp, err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		return fmt.Errorf("replace %s: %w", s.path, err)
	}
	return nil
}
