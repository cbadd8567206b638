package capsearch_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/symcap/capsearch"
)

func TestLoadConfig(t *testing.T) {
	path := filepath.Join(t.TempDir(), "search.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
eps_det: 1.0e-12
eps_feas: 1.0e-8
action_bound: 10
exact_check: true
workers: 4
time_limit_ms: 250
`), 0o644))

	c, err := capsearch.LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, 1e-12, c.EpsDet)
	assert.Equal(t, 1e-8, c.EpsFeas)
	assert.Equal(t, 10.0, c.ActionBound)
	assert.True(t, c.ExactCheck)
	assert.Equal(t, 4, c.Workers)
	assert.Equal(t, 250, c.TimeLimitMS)

	// Zero fields contribute no option.
	assert.Len(t, c.Options(), 6)
}

func TestLoadConfig_Missing(t *testing.T) {
	_, err := capsearch.LoadConfig(filepath.Join(t.TempDir(), "absent.yaml"))
	assert.Error(t, err)
}

func TestLoadConfig_Malformed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("workers: [not an int"), 0o644))

	_, err := capsearch.LoadConfig(path)
	assert.Error(t, err)
}
