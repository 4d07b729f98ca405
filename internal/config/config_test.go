package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_ValidConfig(t *testing.T) {
	t.Parallel()

	content := `
server:
  ip_version: v6
  port: 8080
  board_file: "boards/easy.txt"
  accept_loop: false
  transport: websocket

redis:
  addr: "redis:6379"
  password: "secret"
  db: 1
  recent_games: 10

client:
  sound: false
`
	cfg, err := Load(writeConfig(t, content))
	require.NoError(t, err)
	require.NotNil(t, cfg)

	assert.Equal(t, "v6", cfg.Server.IPVersion)
	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, "boards/easy.txt", cfg.Server.BoardFile)
	assert.False(t, cfg.Server.AcceptLoop)
	assert.Equal(t, "websocket", cfg.Server.Transport)
	assert.Equal(t, "redis:6379", cfg.Redis.Addr)
	assert.Equal(t, "secret", cfg.Redis.Password)
	assert.Equal(t, 1, cfg.Redis.DB)
	assert.Equal(t, 10, cfg.Redis.RecentGames)
	assert.False(t, cfg.Client.Sound)
	assert.True(t, cfg.StatsEnabled())
}

func TestLoad_DefaultsForMissingFields(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "server:\n  board_file: b.txt\n"))
	require.NoError(t, err)

	assert.Equal(t, DefaultIPVersion, cfg.Server.IPVersion)
	assert.Equal(t, DefaultPort, cfg.Server.Port)
	assert.True(t, cfg.Server.AcceptLoop)
	assert.Equal(t, DefaultTransport, cfg.Server.Transport)
	assert.Equal(t, DefaultRecentGames, cfg.Redis.RecentGames)
	assert.True(t, cfg.Client.Sound)
	assert.False(t, cfg.StatsEnabled())
}

func TestLoad_FileNotFound(t *testing.T) {
	t.Parallel()

	cfg, err := Load("/nonexistent/path/config.yaml")
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestLoad_InvalidYAML(t *testing.T) {
	t.Parallel()

	cfg, err := Load(writeConfig(t, "server: [unclosed"))
	assert.Error(t, err)
	assert.Nil(t, cfg)
}

func TestDefault(t *testing.T) {
	t.Parallel()

	cfg := Default()
	assert.Equal(t, "v4", cfg.Server.IPVersion)
	assert.Equal(t, 51511, cfg.Server.Port)
	assert.Equal(t, "tcp", cfg.Server.Transport)
	assert.True(t, cfg.Server.AcceptLoop)
	assert.Empty(t, cfg.Redis.Addr)
	assert.NoError(t, cfg.Validate())
}

func TestApplyEnv(t *testing.T) {
	t.Setenv("SERVER_IP_VERSION", "v6")
	t.Setenv("SERVER_PORT", "6000")
	t.Setenv("SERVER_BOARD_FILE", "/tmp/board.txt")
	t.Setenv("SERVER_TRANSPORT", "websocket")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("REDIS_PASSWORD", "pw")
	t.Setenv("CLIENT_SOUND", "false")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, "v6", cfg.Server.IPVersion)
	assert.Equal(t, 6000, cfg.Server.Port)
	assert.Equal(t, "/tmp/board.txt", cfg.Server.BoardFile)
	assert.Equal(t, "websocket", cfg.Server.Transport)
	assert.Equal(t, "localhost:6379", cfg.Redis.Addr)
	assert.Equal(t, "pw", cfg.Redis.Password)
	assert.False(t, cfg.Client.Sound)
}

func TestApplyEnv_OverridesFile(t *testing.T) {
	t.Setenv("SERVER_PORT", "7000")

	cfg, err := Load(writeConfig(t, "server:\n  port: 8080\n"))
	require.NoError(t, err)
	assert.Equal(t, 7000, cfg.Server.Port)
}

func TestApplyEnv_InvalidValues(t *testing.T) {
	t.Run("port", func(t *testing.T) {
		t.Setenv("SERVER_PORT", "abc")
		assert.Error(t, Default().ApplyEnv())
	})
	t.Run("sound", func(t *testing.T) {
		t.Setenv("CLIENT_SOUND", "loud")
		assert.Error(t, Default().ApplyEnv())
	})
}

func TestValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr bool
	}{
		{"default", func(c *Config) {}, false},
		{"ipv6", func(c *Config) { c.Server.IPVersion = "v6" }, false},
		{"bad ip version", func(c *Config) { c.Server.IPVersion = "v5" }, true},
		{"port zero", func(c *Config) { c.Server.Port = 0 }, false},
		{"port max", func(c *Config) { c.Server.Port = 65535 }, false},
		{"negative port", func(c *Config) { c.Server.Port = -1 }, true},
		{"port too large", func(c *Config) { c.Server.Port = 65536 }, true},
		{"websocket", func(c *Config) { c.Server.Transport = "websocket" }, false},
		{"bad transport", func(c *Config) { c.Server.Transport = "udp" }, true},
		{"negative recent games", func(c *Config) { c.Redis.RecentGames = -1 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if tt.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}
