package imports

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanPaths_ProjectTree(t *testing.T) {
	result := ScanPaths([]string{filepath.Join("testdata", "project")})

	require.Empty(t, result.Warnings)
	assert.Equal(t, 2, result.FilesScanned, "notes.txt must not be scanned")

	want := []string{
		"PIL", "common", "cv2", "json", "numpy", "os", "pathlib",
		"sklearn", "sys", "tcr", "torch", "yaml",
	}
	assert.Equal(t, want, result.Sorted())

	// Docstrings, comments and bare relative imports contribute nothing.
	assert.NotContains(t, result.Identifiers, "fake_from_docstring")
	assert.NotContains(t, result.Identifiers, "ignored_inside_string")
	assert.NotContains(t, result.Identifiers, "commented_out")
	assert.NotContains(t, result.Identifiers, "siblings")
}

func TestScanPaths_SingleFileRoot(t *testing.T) {
	result := ScanPaths([]string{filepath.Join("testdata", "project", "utils", "helpers.py")})

	require.Empty(t, result.Warnings)
	assert.Equal(t, []string{"PIL", "cv2", "numpy", "tcr"}, result.Sorted())
}

func TestScanPaths_MissingPathWarns(t *testing.T) {
	result := ScanPaths([]string{filepath.Join("testdata", "no-such-dir")})

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].String(), "path does not exist")
	assert.Empty(t, result.Identifiers)
}

func TestScanPaths_MalformedImportWarnsAndContinues(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "bad.py", "import 123abc\nimport requests\n")

	result := ScanPaths([]string{dir})

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0].Message, "malformed import")
	assert.Equal(t, []string{"requests"}, result.Sorted(), "scan continues past the bad statement")
}

func TestScanPaths_ImportForms(t *testing.T) {
	tests := []struct {
		name   string
		source string
		want   []string
	}{
		{"dotted import keeps first segment", "import a.b.c\n", []string{"a"}},
		{"from import keeps module root", "from a.b import c\n", []string{"a"}},
		{"alias contributes original name", "import x as y\n", []string{"x"}},
		{"comma list", "import foo, bar.baz as b\n", []string{"bar", "foo"}},
		{"relative with no module", "from . import x\nfrom .. import y\n", nil},
		{"relative with module", "from .pkg import x\n", []string{"pkg"}},
		{"continuation line", "import \\\n    requests\n", []string{"requests"}},
		{"semicolon statements", "import os; import flask\n", []string{"flask", "os"}},
		{"nested import inside a function", "def f():\n    import inner\n", []string{"inner"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := t.TempDir()
			writeFile(t, dir, "case.py", tt.source)

			result := ScanPaths([]string{dir})
			require.Empty(t, result.Warnings)
			if tt.want == nil {
				assert.Empty(t, result.Sorted())
			} else {
				assert.Equal(t, tt.want, result.Sorted())
			}
		})
	}
}

func TestScanPaths_SkipsVirtualenvDirs(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "app.py", "import flask\n")
	writeFile(t, filepath.Join(dir, ".venv", "lib"), "vendored.py", "import vendored_thing\n")
	writeFile(t, filepath.Join(dir, "__pycache__"), "cached.py", "import cached_thing\n")

	result := ScanPaths([]string{dir})

	assert.Equal(t, []string{"flask"}, result.Sorted())
}

func TestFilter_RemovesStdlibAndLocal(t *testing.T) {
	identifiers := map[string]bool{
		"sklearn": true,
		"yaml":    true,
		"os":      true,
		"tcr":     true,
	}

	external := Filter(identifiers, map[string]bool{"tcr": true}, nil)

	assert.Equal(t, map[string]bool{"sklearn": true, "yaml": true}, external)
}

func TestFilter_ExtraStdlib(t *testing.T) {
	identifiers := map[string]bool{"tomllib": true, "requests": true}

	external := Filter(identifiers, nil, []string{"tomllib"})

	assert.Equal(t, map[string]bool{"requests": true}, external)
}

func TestFilter_NeverContainsAllowlisted(t *testing.T) {
	identifiers := map[string]bool{}
	for name := range stdlibModules {
		identifiers[name] = true
	}
	identifiers["numpy"] = true

	external := Filter(identifiers, nil, nil)

	for name := range external {
		assert.False(t, IsStdlib(name), "%s leaked through the filter", name)
	}
	assert.Equal(t, map[string]bool{"numpy": true}, external)
}

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}
