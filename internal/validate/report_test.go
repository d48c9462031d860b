package validate

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFprint(t *testing.T) {
	result := &Result{
		RunID:   "run-1",
		Success: false,
		Errors:  []string{"Missing file: x/y.jpg"},
		Warnings: []string{
			"Orphaned file not in catalogue: extra/foo.png",
		},
		Stats: Stats{
			TotalAssets:   3,
			ValidAssets:   2,
			InvalidAssets: 1,
			MissingFiles:  1,
			OrphanedFiles: 1,
		},
		DurationMillis: 12,
	}

	var buf strings.Builder
	result.Fprint(&buf)
	out := buf.String()

	assert.Contains(t, out, "Validation FAIL")
	assert.Contains(t, out, "Total assets:   3")
	assert.Contains(t, out, "Errors (1):")
	assert.Contains(t, out, "- Missing file: x/y.jpg")
	assert.Contains(t, out, "Warnings (1):")

	result.Success = true
	result.Errors = nil
	buf.Reset()
	result.Fprint(&buf)
	assert.Contains(t, buf.String(), "Validation PASS")
	assert.NotContains(t, buf.String(), "Errors (")
}
