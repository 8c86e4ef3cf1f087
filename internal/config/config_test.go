// internal/config/config_test.go
package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfigFile(t, `
rpc_list:
  - https://api.mainnet-beta.solana.com
wallets_file: data/wallets.csv
tasks_file: data/tasks.yaml
debug_logging: true
skip_confirmation: false
workers: 3
`)

	cfg, err := LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"https://api.mainnet-beta.solana.com"}, cfg.RPCList)
	assert.Equal(t, 3, cfg.Workers)
	assert.True(t, cfg.DebugLogging)
	assert.True(t, cfg.WaitConfirmation, "wait_confirmation defaults to true")
	assert.Equal(t, DefaultLogFile, cfg.LogFile)
}

func TestLoadConfig_MissingRPC(t *testing.T) {
	path := writeConfigFile(t, "wallets_file: w.csv\ntasks_file: t.yaml\n")
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_BadRPCProtocol(t *testing.T) {
	path := writeConfigFile(t, `
rpc_list:
  - ftp://not-an-rpc
`)
	_, err := LoadConfig(path)
	require.Error(t, err)
}

func TestLoadConfig_EnvOverride(t *testing.T) {
	t.Setenv("RAYSWAP_RPC_LIST", "https://one.example , https://two.example")

	path := writeConfigFile(t, `
rpc_list:
  - https://config.example
`)
	cfg, err := LoadConfig(path)
	require.NoError(t, err)
	assert.Equal(t, []string{"https://one.example", "https://two.example"}, cfg.RPCList)
}

func TestLoadConfig_FileMissing(t *testing.T) {
	_, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yaml"))
	require.Error(t, err)
}
