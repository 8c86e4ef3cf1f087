// internal/logger/logger_test.go
package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWritesToFile(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "rayswap.log")

	log, err := New(&Config{
		LogFile:    logFile,
		MaxSize:    1,
		MaxAge:     1,
		MaxBackups: 1,
	})
	require.NoError(t, err)

	log.Info("swap submitted")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), "swap submitted")
	assert.Contains(t, string(data), `"timestamp"`, "file output is JSON encoded")
}

func TestWithOperationAddsCorrelationID(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "l.log")
	log, err := New(&Config{LogFile: logFile})
	require.NoError(t, err)

	log.WithOperation("swap").Info("starting")
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"correlation_id"`)
	assert.Contains(t, string(data), `"operation":"swap"`)
}

func TestLoggerChaining(t *testing.T) {
	logFile := filepath.Join(t.TempDir(), "l.log")
	log, err := New(&Config{LogFile: logFile})
	require.NoError(t, err)

	log.WithOperation("swap").
		WithTask("buy-usdc", "main").
		WithWallet("4Nd1mYQ").
		WithTransaction("5ksig").
		LogError("Swap confirmation failed", assert.AnError)
	require.NoError(t, log.Sync())

	data, err := os.ReadFile(logFile)
	require.NoError(t, err)
	out := string(data)
	assert.Contains(t, out, `"correlation_id"`)
	assert.Contains(t, out, `"task":"buy-usdc"`)
	assert.Contains(t, out, `"wallet_name":"main"`)
	assert.Contains(t, out, `"wallet":"4Nd1mYQ"`)
	assert.Contains(t, out, `"tx_signature":"5ksig"`)
	assert.Contains(t, out, assert.AnError.Error())
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, "rayswap.log", cfg.LogFile)
	assert.False(t, cfg.Development)
}
