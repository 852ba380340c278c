package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func clearEnv(t *testing.T) {
	t.Setenv("TRIPBOARD_DB", "")
	t.Setenv("TRIPBOARD_ADDR", "")
	t.Setenv("TRIPBOARD_LOG_LEVEL", "")
}

func TestDefault(t *testing.T) {
	cfg := Default()
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Len(t, cfg.Content.Pace, 4)
	assert.Len(t, cfg.Content.OpsTips, 4)
	assert.Equal(t, "資料載入失敗，請確認 data.json 與檔案路徑。", cfg.Content.LoadError)
	assert.NoError(t, cfg.Validate())
}

func TestLoad_MissingFileReturnsDefaults(t *testing.T) {
	clearEnv(t)
	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, Default().Server.Addr, cfg.Server.Addr)
}

func TestConfig_SaveLoad(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "nested", "config.yaml")

	cfg := Default()
	cfg.Server.Addr = ":9999"
	cfg.Content.Pace = []string{"慢慢玩"}
	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":9999", loaded.Server.Addr)
	assert.Equal(t, []string{"慢慢玩"}, loaded.Content.Pace)
	assert.Equal(t, cfg.Content.Risks, loaded.Content.Risks)
}

func TestLoad_PartialFileKeepsOtherDefaults(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: debug\n"), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.NotEmpty(t, cfg.Content.Tweaks)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("TRIPBOARD_DB", "/tmp/override.db")
	t.Setenv("TRIPBOARD_ADDR", "0.0.0.0:1234")
	t.Setenv("TRIPBOARD_LOG_LEVEL", "WARN")

	cfg, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.NoError(t, err)
	assert.Equal(t, "/tmp/override.db", cfg.DBPath)
	assert.Equal(t, "0.0.0.0:1234", cfg.Server.Addr)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_InvalidYAML(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("server: [unclosed"), 0644))

	_, err := Load(path)
	assert.Error(t, err)
}

func TestLoad_InvalidLevel(t *testing.T) {
	clearEnv(t)
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte("logging:\n  level: loud\n"), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "logging.level")
}

func TestDefaultPath_EnvOverride(t *testing.T) {
	t.Setenv("TRIPBOARD_CONFIG", "/etc/tripboard.yaml")
	assert.Equal(t, "/etc/tripboard.yaml", DefaultPath())
}
