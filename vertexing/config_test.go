package vertexing

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadConfigTOML(t *testing.T) {
	path := writeConfig(t, "cuts.toml", `
[dplus]
mass_window = 0.1
cos_pointing_min = 0.9
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	cuts := cfg.DplusCuts()
	assert.Equal(t, 0.1, cuts.MassWindow)
	assert.Equal(t, 0.9, cuts.CosPointingMin)
	assert.Equal(t, DefaultDplusCuts().PtKaonMin, cuts.PtKaonMin)
}

func TestLoadConfigYAML(t *testing.T) {
	path := writeConfig(t, "cuts.yaml", `
dplus:
  pt_kaon_min: 0.7
  sigma_vert_max: 0.03
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	cuts := cfg.DplusCuts()
	assert.Equal(t, 0.7, cuts.PtKaonMin)
	assert.Equal(t, 0.03, cuts.SigmaVertMax)
	assert.Equal(t, DefaultDplusCuts().MassWindow, cuts.MassWindow)
}

func TestLoadConfigErrors(t *testing.T) {
	_, err := LoadConfig(writeConfig(t, "cuts.C", "ConfigVertexingHF()"))
	assert.ErrorIs(t, err, ErrUnknownFormat)

	_, err = LoadConfig(writeConfig(t, "cuts.toml", "[dplus]\nmass_window = -1\n"))
	assert.Error(t, err)

	_, err = LoadConfig(writeConfig(t, "cuts.toml", "[dplus\n"))
	assert.Error(t, err)

	_, err = LoadConfig(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestPrintStatus(t *testing.T) {
	var sb strings.Builder
	DefaultConfig().PrintStatus(&sb)

	out := sb.String()
	assert.Contains(t, out, "D+ -> K pi pi cuts:")
	assert.Contains(t, out, "cos(pointing angle) min")
	assert.Contains(t, out, "0.85")
}
