package adapter

import (
	"crypto/sha256"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	m "github.com/mouse-blink/covdungeon/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const levelSource = "function check(x) {\n  if (x > 10) {\n    return 'big';\n  }\n  return 'small';\n}\n"

func TestLocalSourceFSAdapter_Walk(t *testing.T) {
	t.Run("non recursive skips nested files", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		writeTestFile(t, filepath.Join(root, "main.js"), levelSource)

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		writeTestFile(t, filepath.Join(nestedDir, "child.js"), levelSource)

		var visited []string
		err := adapter.Walk(m.Path(root), false, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.False(t, containsPath(visited, filepath.Join(nestedDir, "child.js")))
		assert.True(t, containsPath(visited, filepath.Join(root, "main.js")))
	})

	t.Run("recursive skips dependency directories", func(t *testing.T) {
		adapter := NewLocalSourceFSAdapter()

		root := t.TempDir()
		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		child := filepath.Join(nestedDir, "child.js")
		writeTestFile(t, child, levelSource)

		modules := filepath.Join(root, "node_modules")
		mustMkdir(t, modules)
		vendored := filepath.Join(modules, "lib.js")
		writeTestFile(t, vendored, levelSource)

		var visited []string
		err := adapter.Walk(m.Path(root), true, func(path string, info os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			visited = append(visited, path)
			return nil
		})
		require.NoError(t, err)

		assert.True(t, containsPath(visited, child))
		assert.False(t, containsPath(visited, vendored))
	})
}

func TestLocalSourceFSAdapter_LoadFingerprint(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "level.js")
	writeTestFile(t, path, levelSource)

	first, err := adapter.Load(m.Path(path))
	require.NoError(t, err)

	again, err := adapter.Load(m.Path(path))
	require.NoError(t, err)
	assert.Equal(t, first.Hash, again.Hash)
	assert.Len(t, first.Hash, 64)

	writeTestFile(t, path, levelSource+"\n// edited\n")

	edited, err := adapter.Load(m.Path(path))
	require.NoError(t, err)
	assert.NotEqual(t, first.Hash, edited.Hash)
	assert.Equal(t, fingerprint([]byte(levelSource+"\n// edited\n")), edited.Hash)
}

func TestLocalSourceFSAdapter_Load(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	path := filepath.Join(t.TempDir(), "level.js")
	writeTestFile(t, path, levelSource)

	level, err := adapter.Load(m.Path(path))
	require.NoError(t, err)

	assert.Equal(t, m.Path(path), level.Origin)
	assert.Equal(t, levelSource, string(level.Source))
	assert.Equal(t, fmt.Sprintf("%x", sha256.Sum256([]byte(levelSource))), level.Hash)
	assert.Empty(t, level.Function)

	_, err = adapter.Load(m.Path(filepath.Join(t.TempDir(), "missing.js")))
	require.Error(t, err)
}

func TestIsLevelFile(t *testing.T) {
	tests := []struct {
		path string
		want bool
	}{
		{path: "src/level.js", want: true},
		{path: "src/level.mjs", want: true},
		{path: "src/level.cjs", want: true},
		{path: "src/level.ts", want: false},
		{path: "src/level.test.js", want: false},
		{path: "src/level.spec.js", want: false},
		{path: "dist/bundle.min.js", want: false},
		{path: "main.go", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.path, func(t *testing.T) {
			assert.Equal(t, tt.want, IsLevelFile(tt.path))
		})
	}
}

func TestLocalSourceFSAdapter_Get(t *testing.T) {
	adapter := NewLocalSourceFSAdapter()

	t.Run("dot selects current directory non-recursive", func(t *testing.T) {
		root := t.TempDir()
		mainPath := filepath.Join(root, "main.js")
		writeTestFile(t, mainPath, levelSource)
		writeTestFile(t, filepath.Join(root, "main.test.js"), levelSource)
		writeTestFile(t, filepath.Join(root, "README.md"), "# levels\n")

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		nestedPath := filepath.Join(nestedDir, "child.js")
		writeTestFile(t, nestedPath, levelSource)

		chdir(t, root)

		levels, err := adapter.Get([]m.Path{"."})
		require.NoError(t, err)

		require.Len(t, levels, 1)
		assert.Equal(t, m.Path(mainPath), levels[0].Origin)
		assert.Equal(t, levelSource, string(levels[0].Source))
	})

	t.Run("tilde expands home directory", func(t *testing.T) {
		home := t.TempDir()
		t.Setenv("HOME", home)

		mainPath := filepath.Join(home, "home.js")
		writeTestFile(t, mainPath, levelSource)

		levels, err := adapter.Get([]m.Path{"~"})
		require.NoError(t, err)

		require.Len(t, levels, 1)
		assert.Equal(t, m.Path(mainPath), levels[0].Origin)
	})

	t.Run("recursive path includes nested", func(t *testing.T) {
		root := t.TempDir()
		mainPath := filepath.Join(root, "main.js")
		writeTestFile(t, mainPath, levelSource)

		nestedDir := filepath.Join(root, "nested")
		mustMkdir(t, nestedDir)
		nestedPath := filepath.Join(nestedDir, "child.mjs")
		writeTestFile(t, nestedPath, levelSource)

		chdir(t, root)

		levels, err := adapter.Get([]m.Path{"./..."})
		require.NoError(t, err)

		assert.ElementsMatch(t, []m.Path{m.Path(mainPath), m.Path(nestedPath)}, origins(levels))
	})

	t.Run("file roots and duplicates", func(t *testing.T) {
		root := t.TempDir()
		mainPath := filepath.Join(root, "main.js")
		writeTestFile(t, mainPath, levelSource)

		levels, err := adapter.Get([]m.Path{m.Path(mainPath), m.Path(root)})
		require.NoError(t, err)

		assert.Equal(t, []m.Path{m.Path(mainPath)}, origins(levels))
	})

	t.Run("missing root fails", func(t *testing.T) {
		_, err := adapter.Get([]m.Path{m.Path(filepath.Join(t.TempDir(), "absent"))})
		require.Error(t, err)
		assert.Contains(t, err.Error(), "root path error")
	})

	t.Run("no roots", func(t *testing.T) {
		levels, err := adapter.Get(nil)
		require.NoError(t, err)
		assert.Empty(t, levels)
	})
}

func TestParseRootPath(t *testing.T) {
	path, recursive := parseRootPath("./levels/...")
	assert.Equal(t, "./levels", path)
	assert.True(t, recursive)

	path, recursive = parseRootPath("./levels")
	assert.Equal(t, "./levels", path)
	assert.False(t, recursive)
}

func origins(levels []m.Level) []m.Path {
	out := make([]m.Path, 0, len(levels))
	for _, level := range levels {
		out = append(out, level.Origin)
	}

	return out
}

func chdir(t *testing.T, dir string) {
	t.Helper()

	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(wd) })
}

func writeTestFile(t *testing.T, path, contents string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(contents), 0o644); err != nil {
		t.Fatalf("failed to write %s: %v", path, err)
	}
}

func mustMkdir(t *testing.T, path string) {
	t.Helper()
	if err := os.Mkdir(path, 0o755); err != nil {
		t.Fatalf("failed to create dir %s: %v", path, err)
	}
}

func containsPath(paths []string, target string) bool {
	for _, p := range paths {
		if p == target {
			return true
		}
	}

	return false
}
