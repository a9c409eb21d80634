package naming

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalize_KnownMappings(t *testing.T) {
	n := NewNormalizer(nil)

	assert.Equal(t, "scikit-learn", n.Normalize("sklearn"))
	assert.Equal(t, "opencv-python", n.Normalize("cv2"))
	assert.Equal(t, "Pillow", n.Normalize("PIL"))
	assert.Equal(t, "pyyaml", n.Normalize("yaml"))
	assert.Equal(t, "beautifulsoup4", n.Normalize("bs4"))
	assert.Equal(t, "python-dotenv", n.Normalize("dotenv"))
	assert.Equal(t, "pytorch-lightning", n.Normalize("lightning"))
}

func TestNormalize_IdentityFallback(t *testing.T) {
	n := NewNormalizer(nil)

	assert.Equal(t, "requests", n.Normalize("requests"))
	assert.Equal(t, "numpy", n.Normalize("numpy"))
}

func TestNormalize_Idempotent(t *testing.T) {
	n := NewNormalizer(nil)

	// Table values are never themselves keys, so normalizing twice must be
	// a no-op for every configured mapping.
	for identifier, want := range n.Table() {
		once := n.Normalize(identifier)
		assert.Equal(t, want, once)
		assert.Equal(t, once, n.Normalize(once), "mapping %s is not idempotent", identifier)
	}
}

func TestNormalize_OverridesWin(t *testing.T) {
	n := NewNormalizer(map[string]string{
		"yaml": "ruamel.yaml",
		"fitz": "PyMuPDF",
	})

	assert.Equal(t, "ruamel.yaml", n.Normalize("yaml"))
	assert.Equal(t, "PyMuPDF", n.Normalize("fitz"))
	assert.Equal(t, "scikit-learn", n.Normalize("sklearn"), "built-ins survive unrelated overrides")
}

func TestNormalizeAll_SortedAndDeduplicated(t *testing.T) {
	n := NewNormalizer(nil)

	got := n.NormalizeAll(map[string]bool{
		"sklearn": true,
		"yaml":    true,
		"numpy":   true,
	})

	assert.Equal(t, []string{"numpy", "pyyaml", "scikit-learn"}, got)
}

func TestLoadOverrides(t *testing.T) {
	path := filepath.Join(t.TempDir(), "mappings.yaml")
	require.NoError(t, os.WriteFile(path, []byte("mappings:\n  fitz: PyMuPDF\n  attr: attrs\n"), 0o644))

	got, err := LoadOverrides(path)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"fitz": "PyMuPDF", "attr": "attrs"}, got)
}

func TestLoadOverrides_MissingFile(t *testing.T) {
	_, err := LoadOverrides(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}
