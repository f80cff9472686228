// Package blob stores uploaded bytes on disk under one directory per
// code. It is written against afero so tests can run on an in-memory
// filesystem.
package blob

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/afero"
)

// Store is a key-addressed blob store rooted at a single directory.
// Layout: <root>/<code>/<filename> for finished blobs plus flat
// upload-* temp files in <root> while a stream is still arriving.
type Store struct {
	fs   afero.Fs
	root string
}

func NewStore(fs afero.Fs, root string) (*Store, error) {
	if err := fs.MkdirAll(root, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create blob root, %w", err)
	}

	return &Store{fs: fs, root: root}, nil
}

// CreateTemp opens a fresh temp file inside the root. The caller
// either promotes it with Promote or throws it away with Discard
func (s *Store) CreateTemp() (afero.File, error) {
	return afero.TempFile(s.fs, s.root, "upload-*")
}

// Discard removes a temp file, tolerating it being gone already
func (s *Store) Discard(tmp afero.File) {
	name := tmp.Name()
	tmp.Close()
	_ = s.fs.Remove(name)
}

// Promote moves a fully written temp file to its final code-addressed
// location. The rename is atomic on a real filesystem, so a partial
// blob is never visible under its final key
func (s *Store) Promote(tmp afero.File, code, filename string) error {
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("failed to flush temp file, %w", err)
	}

	dir := filepath.Join(s.root, code)
	if err := s.fs.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("failed to create blob directory, %w", err)
	}

	if err := s.fs.Rename(tmp.Name(), filepath.Join(dir, filename)); err != nil {
		_ = s.fs.Remove(tmp.Name())
		_ = s.fs.RemoveAll(dir)
		return fmt.Errorf("failed to promote temp file, %w", err)
	}

	return nil
}

// Open returns the blob for reading together with its size
func (s *Store) Open(code, filename string) (afero.File, int64, error) {
	p := filepath.Join(s.root, code, filename)

	info, err := s.fs.Stat(p)
	if err != nil {
		return nil, 0, err
	}

	f, err := s.fs.Open(p)
	if err != nil {
		return nil, 0, err
	}

	return f, info.Size(), nil
}

// Exists reports whether a blob is present under the given key
func (s *Store) Exists(code, filename string) bool {
	ok, err := afero.Exists(s.fs, filepath.Join(s.root, code, filename))
	return err == nil && ok
}

// Delete removes a code directory and everything in it
func (s *Store) Delete(code string) error {
	return s.fs.RemoveAll(filepath.Join(s.root, code))
}

// Codes lists every code directory currently on disk, regardless of
// whether a metadata record exists for it. Temp files are skipped
func (s *Store) Codes() ([]string, error) {
	entries, err := afero.ReadDir(s.fs, s.root)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, err
	}

	var codes []string
	for _, e := range entries {
		if e.IsDir() {
			codes = append(codes, e.Name())
		}
	}

	return codes, nil
}
