// Package environ abstracts file access for checkers. The engine never
// touches the filesystem directly: it goes through an Environment so the
// same checkers run against the live local tree, the file-listing snapshot
// handed to a sync invocation, or a remote execution context.
package environ

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Environment is the scoped file-access collaborator consumed by checkers.
// Paths are relative to the managed project root. Implementations are
// expected to fail fast rather than hang; there is no retry semantics.
type Environment interface {
	FileExists(ctx context.Context, path string) (bool, error)
	ReadFile(ctx context.Context, path string) ([]byte, error)
}

// --- Local filesystem ---

// Local is an Environment over a directory on the local filesystem.
type Local struct {
	Root string
}

// NewLocal creates a filesystem environment rooted at dir.
func NewLocal(dir string) *Local {
	return &Local{Root: dir}
}

// FileExists reports whether the path exists relative to the root as a
// regular file.
func (l *Local) FileExists(_ context.Context, path string) (bool, error) {
	info, err := os.Stat(filepath.Join(l.Root, filepath.FromSlash(path)))
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("stat %s: %w", path, err)
	}
	return info.Mode().IsRegular(), nil
}

// ReadFile reads the file at path relative to the root.
func (l *Local) ReadFile(_ context.Context, path string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(l.Root, filepath.FromSlash(path)))
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	return data, nil
}

// --- Snapshot ---

// Snapshot is an Environment backed by the flat file list handed to a sync
// invocation. Existence checks are answered from the set; reads are
// delegated to a fallback environment (nil fallback means reads always
// fail, which checkers fold into unsatisfied results).
type Snapshot struct {
	files    map[string]bool
	fallback Environment
}

// NewSnapshot builds a snapshot from project-relative file paths.
func NewSnapshot(files []string, fallback Environment) *Snapshot {
	set := make(map[string]bool, len(files))
	for _, f := range files {
		set[filepath.ToSlash(f)] = true
	}
	return &Snapshot{files: set, fallback: fallback}
}

// FileExists answers from the snapshot set.
func (s *Snapshot) FileExists(_ context.Context, path string) (bool, error) {
	return s.files[filepath.ToSlash(path)], nil
}

// ReadFile delegates to the fallback environment. Files absent from the
// snapshot are reported missing without consulting the fallback.
func (s *Snapshot) ReadFile(ctx context.Context, path string) ([]byte, error) {
	if !s.files[filepath.ToSlash(path)] {
		return nil, fmt.Errorf("file %s not present in snapshot", path)
	}
	if s.fallback == nil {
		return nil, fmt.Errorf("snapshot has no reader for %s", path)
	}
	return s.fallback.ReadFile(ctx, path)
}
