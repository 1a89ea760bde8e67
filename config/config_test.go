package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"

	"github.com/wippyai/gameres/errors"
	"github.com/wippyai/gameres/resource"
	"github.com/wippyai/gameres/schema"
)

func TestDefault(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	w, err := cfg.AddressWidth()
	require.NoError(t, err)
	assert.Equal(t, resource.Width64, w)

	g, err := cfg.Generation()
	require.NoError(t, err)
	assert.Equal(t, schema.Gen3, g)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "resdump.yaml")
	data := []byte(`
width: 32
game: gen1
type: skeleton
log_level: debug
development: true
hashes:
  - pelvis
  - spine_01
`)
	require.NoError(t, os.WriteFile(path, data, 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 32, cfg.Width)
	assert.Equal(t, "gen1", cfg.Game)
	assert.True(t, cfg.Development)
	assert.Equal(t, []string{"pelvis", "spine_01"}, cfg.Hashes)

	typ, err := cfg.ResourceType()
	require.NoError(t, err)
	assert.Equal(t, resource.TypeSkeleton, typ)

	logger, err := cfg.Logger()
	require.NoError(t, err)
	assert.True(t, logger.Core().Enabled(zapcore.DebugLevel))
}

func TestParseEmptyKeepsDefaults(t *testing.T) {
	cfg, err := Parse(nil)
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	cfg, err = Parse([]byte("game: gen2\n"))
	require.NoError(t, err)
	assert.Equal(t, "gen2", cfg.Game)
	assert.Equal(t, 64, cfg.Width)
}

func TestParseErrors(t *testing.T) {
	tests := []struct {
		name string
		data string
		kind errors.Kind
	}{
		{"bad width", "width: 16\n", errors.KindInvalidInput},
		{"bad game", "game: gen7\n", errors.KindInvalidInput},
		{"bad type", "type: sound\n", errors.KindInvalidInput},
		{"bad level", "log_level: loud\n", errors.KindInvalidInput},
		{"unknown key", "colour: red\n", errors.KindInvalidData},
		{"not yaml", "width: [\n", errors.KindInvalidData},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse([]byte(tt.data))
			assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: tt.kind})
		})
	}

	_, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.ErrorIs(t, err, &errors.Error{Phase: errors.PhaseConfig, Kind: errors.KindNotFound})
}
