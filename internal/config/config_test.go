package config

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marshallyale/go-outdoors-learning/internal/errors"
)

func TestLoad_Defaults(t *testing.T) {
	for _, key := range []string{"PLOTS_DIR", "PLOT_DPI", "PLOT_WIDTH_IN", "PLOT_HEIGHT_IN", "LAYOUT_FILE", "SCALE_FROM_HEADER"} {
		t.Setenv(key, "")
	}

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "plots", cfg.Output.Dir)
	assert.False(t, cfg.Survey.ScaleFromHeader)
}

func TestLoad_Overrides(t *testing.T) {
	t.Setenv("PLOTS_DIR", "out")
	t.Setenv("PLOT_DPI", "150")
	t.Setenv("PLOT_WIDTH_IN", "12.5")
	t.Setenv("SCALE_FROM_HEADER", "true")
	t.Setenv("LAYOUT_FILE", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, "out", cfg.Output.Dir)
	assert.Equal(t, 150, cfg.Output.DPI)
	assert.Equal(t, 12.5, cfg.Output.WidthIn)
	assert.True(t, cfg.Survey.ScaleFromHeader)
}

func TestLoad_InvalidValuesFallBackOrFail(t *testing.T) {
	t.Setenv("PLOT_DPI", "not-a-number")
	t.Setenv("LAYOUT_FILE", "")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 300, cfg.Output.DPI)

	t.Setenv("PLOT_DPI", "-5")
	_, err = Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}

func TestLoad_MissingLayoutFile(t *testing.T) {
	t.Setenv("LAYOUT_FILE", filepath.Join(t.TempDir(), "missing.yaml"))

	_, err := Load()
	require.Error(t, err)
	assert.Equal(t, errors.CodeConfigInvalid, errors.GetCode(err))
}
