package inventory

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/StinkyLord/py-env-sync/internal/model"
)

func TestNew_LowerCasesNames(t *testing.T) {
	inv := New([]model.PackageRecord{
		{Name: "Flask", Version: "3.0.0"},
		{Name: "NumPy", Version: "1.26.0"},
	})

	m, ok := inv.Find("flask")
	require.True(t, ok)
	assert.Equal(t, "flask", m.Key)
	assert.Equal(t, "3.0.0", m.Version)
}

func TestFind_TransformationOrder(t *testing.T) {
	tests := []struct {
		name      string
		inventory map[string]string
		query     string
		wantKey   string
		wantOK    bool
	}{
		{
			name:      "exact match wins",
			inventory: map[string]string{"scikit-learn": "1.3.0"},
			query:     "scikit-learn",
			wantKey:   "scikit-learn",
			wantOK:    true,
		},
		{
			name:      "hyphen resolves to underscore spelling",
			inventory: map[string]string{"typing_extensions": "4.8.0"},
			query:     "typing-extensions",
			wantKey:   "typing_extensions",
			wantOK:    true,
		},
		{
			name:      "underscore resolves to hyphen spelling",
			inventory: map[string]string{"scikit-learn": "1.3.0"},
			query:     "scikit_learn",
			wantKey:   "scikit-learn",
			wantOK:    true,
		},
		{
			name:      "case-insensitive",
			inventory: map[string]string{"pillow": "10.0.0"},
			query:     "Pillow",
			wantKey:   "pillow",
			wantOK:    true,
		},
		{
			name:      "not found",
			inventory: map[string]string{"numpy": "1.26.0"},
			query:     "torch",
			wantOK:    false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			inv := FromMap(tt.inventory)
			m, ok := inv.Find(tt.query)
			assert.Equal(t, tt.wantOK, ok)
			if tt.wantOK {
				assert.Equal(t, tt.wantKey, m.Key)
			}
		})
	}
}

func TestFind_DeterministicAcrossRebuilds(t *testing.T) {
	// An inventory pathologically holding two spellings of the same logical
	// package must resolve the same way no matter how it was built.
	records := []model.PackageRecord{
		{Name: "my_pkg", Version: "1.0"},
		{Name: "my-pkg", Version: "2.0"},
	}
	reversed := []model.PackageRecord{records[1], records[0]}

	first, ok := New(records).Find("my-pkg")
	require.True(t, ok)

	for i := 0; i < 50; i++ {
		again, ok := New(reversed).Find("my-pkg")
		require.True(t, ok)
		assert.Equal(t, first, again)
	}
	// The hyphen spelling is the exact key, so it must win over my_pkg.
	assert.Equal(t, "my-pkg", first.Key)
	assert.Equal(t, "2.0", first.Version)
}

func TestDecodePipList(t *testing.T) {
	inv, err := decodePipList([]byte(`[{"name": "NumPy", "version": "1.26.0"}, {"name": "torch", "version": "2.1.0"}]`))
	require.NoError(t, err)

	assert.Equal(t, 2, inv.Len())
	m, ok := inv.Find("numpy")
	require.True(t, ok)
	assert.Equal(t, "1.26.0", m.Version)
}

func TestDecodePipList_BadJSON(t *testing.T) {
	_, err := decodePipList([]byte("pip is broken"))
	assert.ErrorContains(t, err, "parse pip list output")
}

func TestDetectPackageManager_ExplicitPip(t *testing.T) {
	assert.Equal(t, ManagerPip, DetectPackageManager(ManagerPip))
}
