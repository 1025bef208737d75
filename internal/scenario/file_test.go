package scenario

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeScenarioFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "scenarios.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadFile(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: rate_shock
    rate_change_pp: 3.0
  - name: rent_crash
    rent_change_pct: -10.0
    void_change_pp: 3.0
`)
	defs, err := LoadFile(path)
	require.NoError(t, err)
	require.Len(t, defs, 2)
	assert.Equal(t, "rate_shock", defs[0].Name)
	assert.Equal(t, 3.0, defs[0].RateChangePP)
	assert.Equal(t, -10.0, defs[1].RentChangePct)
	assert.Equal(t, 3.0, defs[1].VoidChangePP)
}

func TestLoadFileRejectsUnnamed(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - rate_change_pp: 3.0
`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "name is required")
}

func TestLoadFileRejectsDuplicates(t *testing.T) {
	path := writeScenarioFile(t, `
scenarios:
  - name: shock
    rate_change_pp: 3.0
  - name: shock
    rate_change_pp: 5.0
`)
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "duplicate name")
}

func TestLoadFileRejectsEmpty(t *testing.T) {
	path := writeScenarioFile(t, "scenarios: []\n")
	_, err := LoadFile(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no scenarios")
}

func TestLoadFileMissing(t *testing.T) {
	_, err := LoadFile(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
