package validate

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestScanOrphans(t *testing.T) {
	root := t.TempDir()
	for _, rel := range []string{"pics/cat.jpg", "pics/dog.png", "notes/readme.txt"} {
		full := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(full), 0755))
		require.NoError(t, os.WriteFile(full, []byte("x"), 0644))
	}

	supported := map[string]bool{".jpg": true, ".png": true}
	known := map[string]bool{"pics/cat.jpg": true}

	orphans, warnings := ScanOrphans(root, supported, known)

	assert.Empty(t, warnings, "expected no walk warnings")
	assert.Equal(t, []string{"pics/dog.png"}, orphans,
		"known files and unsupported extensions are not orphans")
}

func TestScanOrphans_MissingRoot(t *testing.T) {
	orphans, warnings := ScanOrphans(filepath.Join(t.TempDir(), "nope"), map[string]bool{".jpg": true}, nil)

	assert.Empty(t, orphans)
	require.Len(t, warnings, 1, "unreadable root is reported, not fatal")
}

func TestScanOrphans_CaseInsensitiveExtensions(t *testing.T) {
	root := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(root, "LOUD.JPG"), []byte("x"), 0644))

	orphans, _ := ScanOrphans(root, map[string]bool{".jpg": true}, nil)

	assert.Equal(t, []string{"LOUD.JPG"}, orphans)
}
