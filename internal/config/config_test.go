package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaults(t *testing.T) {
	cfg := Config{}

	assert.Equal(t, 60, cfg.Sim.GetTickRate())
	assert.Equal(t, 4, cfg.Sim.GetWorkers())
	assert.Equal(t, int64(1337), cfg.World.GetSeed())
	assert.Equal(t, 4, cfg.World.GetViewDistance())
	assert.Equal(t, "./data/world", cfg.Storage.GetDataPath())
	assert.Equal(t, 30, cfg.Storage.GetSaveEvery())
	assert.Equal(t, 2112, cfg.Server.GetMetricsPort())
}

func TestEnvFallback(t *testing.T) {
	t.Setenv("SAND_TICK_RATE", "30")
	t.Setenv("SAND_WORLD_SEED", "42")
	t.Setenv("SAND_DATA_PATH", "/tmp/sandbox")

	cfg := Config{}
	assert.Equal(t, 30, cfg.Sim.GetTickRate())
	assert.Equal(t, int64(42), cfg.World.GetSeed())
	assert.Equal(t, "/tmp/sandbox", cfg.Storage.GetDataPath())
}

func TestConfigTakesPriorityOverEnv(t *testing.T) {
	t.Setenv("SAND_TICK_RATE", "30")

	cfg := Config{Sim: SimConfig{TickRate: 120}}
	assert.Equal(t, 120, cfg.Sim.GetTickRate(), "значение из конфига важнее переменной окружения")
}

func TestInvalidEnvIgnored(t *testing.T) {
	t.Setenv("SAND_TICK_RATE", "not-a-number")

	cfg := Config{}
	assert.Equal(t, 60, cfg.Sim.GetTickRate())
}

func TestLoadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yml")
	yaml := `
sim:
  tick_rate: 20
world:
  seed: 7
  view_distance_chunks: 2
storage:
  data_path: ./var/world
server:
  metrics_port: 9100
`
	require.NoError(t, os.WriteFile(path, []byte(yaml), 0o644))

	cfg, err := Load(path)
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, 20, cfg.Sim.GetTickRate())
	assert.Equal(t, int64(7), cfg.World.GetSeed())
	assert.Equal(t, 2, cfg.World.GetViewDistance())
	assert.Equal(t, "./var/world", cfg.Storage.GetDataPath())
	assert.Equal(t, 9100, cfg.Server.GetMetricsPort())
}

func TestLoadWithoutPath(t *testing.T) {
	t.Setenv("SAND_CONFIG", "")

	cfg, err := Load("")
	require.NoError(t, err)
	assert.Nil(t, cfg, "отсутствие конфига не является ошибкой")
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "no-such.yml"))
	assert.Error(t, err)
}
