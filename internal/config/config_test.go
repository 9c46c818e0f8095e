package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad(t *testing.T) {
	t.Setenv("TEST_ADMIN_KEY", "sekrit")

	path := writeConfig(t, `
server:
  addr: ":8099"
upstream:
  chat_url: "https://runtime.example.com/v1/chat/completions"
connection_store:
  base_url: "https://store.example.com"
  timeout: "5s"
vault:
  mount: "kv"
admin:
  api_key: "${TEST_ADMIN_KEY}"
logging:
  level: "debug"
models:
  - id: "sales:gpt-4"
    name: "Sales GPT"
  - id: "gpt-4"
    agent_id: "support"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, ":8099", cfg.Server.Addr)
	assert.Equal(t, "https://runtime.example.com/v1/chat/completions", cfg.Upstream.ChatURL)
	assert.Equal(t, 5*time.Second, cfg.ConnectionStore.Timeout)
	assert.Equal(t, "kv", cfg.Vault.Mount)
	assert.Equal(t, "sekrit", cfg.Admin.APIKey)
	assert.Equal(t, "debug", cfg.Logging.Level)
	require.Len(t, cfg.Models, 2)
	assert.Equal(t, "support", cfg.Models[1].AgentID)
}

func TestLoadDefaults(t *testing.T) {
	path := writeConfig(t, `
upstream:
  chat_url: "https://runtime.example.com/v1/chat/completions"
connection_store:
  base_url: "https://store.example.com"
`)

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, DefaultAddr, cfg.Server.Addr)
	assert.Equal(t, DefaultStoreTimeout, cfg.ConnectionStore.Timeout)
	assert.Equal(t, DefaultVaultMount, cfg.Vault.Mount)
}

func TestLoadMissingUpstream(t *testing.T) {
	path := writeConfig(t, `
connection_store:
  base_url: "https://store.example.com"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "upstream.chat_url")
}

func TestLoadBadDuration(t *testing.T) {
	path := writeConfig(t, `
upstream:
  chat_url: "https://runtime.example.com"
connection_store:
  base_url: "https://store.example.com"
  timeout: "soon"
`)
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "timeout")
}

func TestFromEnv(t *testing.T) {
	t.Setenv("PORT", "7070")
	t.Setenv("UPSTREAM_CHAT_URL", "https://runtime.example.com/v1/chat/completions")
	t.Setenv("CONNECTION_STORE_URL", "https://store.example.com")
	t.Setenv("CONNECTION_STORE_TIMEOUT", "2s")
	t.Setenv("VAULT_MOUNT_PATH", "kv")
	t.Setenv("ADMIN_API_KEY", "admin-key")

	cfg, err := FromEnv()
	require.NoError(t, err)
	assert.Equal(t, ":7070", cfg.Server.Addr)
	assert.Equal(t, 2*time.Second, cfg.ConnectionStore.Timeout)
	assert.Equal(t, "kv", cfg.Vault.Mount)
	assert.Equal(t, "admin-key", cfg.Admin.APIKey)
}

func TestFromEnvMissingStore(t *testing.T) {
	t.Setenv("UPSTREAM_CHAT_URL", "https://runtime.example.com")
	t.Setenv("CONNECTION_STORE_URL", "")
	_, err := FromEnv()
	require.Error(t, err)
}
