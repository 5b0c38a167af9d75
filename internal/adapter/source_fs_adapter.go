// Package adapter contains parser, runtime, storage and filesystem adapters
// for the covdungeon CLI.
package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	m "github.com/mouse-blink/covdungeon/internal/model"
)

// levelExtensions are the file extensions treated as JavaScript levels.
var levelExtensions = []string{".js", ".mjs", ".cjs"}

// skippedDirs are never descended into when discovering levels.
var skippedDirs = []string{"node_modules", ".git", "vendor", "dist", "coverage"}

// SourceFSAdapter abstracts filesystem access so the workflow can be tested
// without touching the disk.
type SourceFSAdapter interface {
	// Get discovers JavaScript level files under the provided roots. A root
	// ending in "/..." is walked recursively.
	Get(roots []m.Path) ([]m.Level, error)

	// Load reads a single level file.
	Load(path m.Path) (m.Level, error)

	// Walk traverses the provided root path. When recursive is false the
	// implementation limits itself to the root directory.
	Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error

	ReadFile(path m.Path) ([]byte, error)

	FileInfo(path m.Path) (os.FileInfo, error)
}

// FilepathWalkFunc mirrors the callback shape used by filepath.Walk.
type FilepathWalkFunc func(path string, info os.FileInfo, err error) error

// LocalSourceFSAdapter implements SourceFSAdapter on the local disk.
type LocalSourceFSAdapter struct{}

// NewLocalSourceFSAdapter constructs a LocalSourceFSAdapter.
func NewLocalSourceFSAdapter() *LocalSourceFSAdapter {
	return &LocalSourceFSAdapter{}
}

// Get collects level files for the provided roots, deduplicated by absolute
// path, in discovery order.
func (a *LocalSourceFSAdapter) Get(roots []m.Path) ([]m.Level, error) {
	if len(roots) == 0 {
		return []m.Level{}, nil
	}

	seen := make(map[string]struct{})

	var levels []m.Level

	add := func(path string) error {
		if !IsLevelFile(path) {
			return nil
		}

		abs, err := filepath.Abs(path)
		if err != nil {
			return err
		}

		if _, exists := seen[abs]; exists {
			return nil
		}

		level, err := a.Load(m.Path(abs))
		if err != nil {
			return err
		}

		seen[abs] = struct{}{}
		levels = append(levels, level)

		return nil
	}

	for _, root := range roots {
		rootPath, recursive, err := normalizeRootPath(string(root))
		if err != nil {
			return nil, err
		}

		info, err := a.FileInfo(m.Path(rootPath))
		if err != nil {
			return nil, fmt.Errorf("root path error: %w", err)
		}

		if !info.IsDir() {
			if err := add(rootPath); err != nil {
				return nil, err
			}

			continue
		}

		err = a.Walk(m.Path(rootPath), recursive, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}

			if info.IsDir() {
				return nil
			}

			return add(path)
		})
		if err != nil {
			return nil, err
		}
	}

	return levels, nil
}

// Load reads and fingerprints one level file.
func (a *LocalSourceFSAdapter) Load(path m.Path) (m.Level, error) {
	src, err := a.ReadFile(path)
	if err != nil {
		return m.Level{}, fmt.Errorf("failed to read level %s: %w", path, err)
	}

	return m.Level{
		Origin: path,
		Hash:   fingerprint(src),
		Source: src,
	}, nil
}

// Walk iterates over files under root, optionally descending into
// subdirectories. Dependency and VCS directories are skipped.
func (a *LocalSourceFSAdapter) Walk(root m.Path, recursive bool, fn FilepathWalkFunc) error {
	rootStr := string(root)

	return filepath.Walk(rootStr, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			return fn(path, info, err)
		}

		if info.IsDir() && path != rootStr {
			if !recursive || slices.Contains(skippedDirs, info.Name()) {
				return filepath.SkipDir
			}
		}

		return fn(path, info, nil)
	})
}

// ReadFile loads file contents from disk.
func (a *LocalSourceFSAdapter) ReadFile(path m.Path) ([]byte, error) {
	return os.ReadFile(string(path))
}

// FileInfo returns os.FileInfo metadata for the given path.
func (a *LocalSourceFSAdapter) FileInfo(path m.Path) (os.FileInfo, error) {
	return os.Stat(string(path))
}

// IsLevelFile reports whether path names a JavaScript source that is not a
// test, spec or minified bundle.
func IsLevelFile(path string) bool {
	if !slices.Contains(levelExtensions, filepath.Ext(path)) {
		return false
	}

	base := filepath.Base(path)
	for _, marker := range []string{".test.", ".spec.", ".min."} {
		if strings.Contains(base, marker) {
			return false
		}
	}

	return true
}

func normalizeRootPath(root string) (string, bool, error) {
	rootStr, recursive := parseRootPath(root)

	if strings.HasPrefix(rootStr, "~") {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", false, err
		}

		suffix := strings.TrimPrefix(rootStr, "~")
		suffix = strings.TrimPrefix(suffix, string(os.PathSeparator))
		rootStr = filepath.Join(home, suffix)
	}

	if rootStr == "" {
		rootStr = "."
	}

	abs, err := filepath.Abs(rootStr)
	if err != nil {
		return "", false, err
	}

	return abs, recursive, nil
}

func parseRootPath(rootStr string) (path string, recursive bool) {
	if strings.HasSuffix(rootStr, "/...") {
		return strings.TrimSuffix(rootStr, "/..."), true
	}

	return rootStr, false
}

// fingerprint is the SHA-256 of a level's source, hex encoded. Runs are
// stored under it so editing a file starts a fresh history.
func fingerprint(src []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(src))
}
