package logging

import (
	"bufio"
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNew_WritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer

	logger, err := New(Options{
		Env:          "test",
		Dir:          filepath.Join(dir, "logs"),
		Console:      &console,
		ConsoleLevel: zapcore.InfoLevel,
		FileLevel:    zapcore.DebugLevel,
	})
	require.NoError(t, err)

	logger.Debug("debug only in file", zap.String("outing_id", "o1"))
	logger.Info("Boat saved", zap.String("boat", "1st VIII"))
	require.NoError(t, logger.Sync())

	assert.Contains(t, console.String(), "Boat saved")
	assert.NotContains(t, console.String(), "debug only in file")

	files, err := filepath.Glob(filepath.Join(dir, "logs", "test_*.log"))
	require.NoError(t, err)
	require.Len(t, files, 1)

	f, err := os.Open(files[0])
	require.NoError(t, err)
	defer f.Close()

	var messages []string
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(scanner.Bytes(), &entry))
		assert.Contains(t, entry, "timestamp")
		messages = append(messages, entry["msg"].(string))
	}
	assert.Equal(t, []string{"debug only in file", "Boat saved"}, messages)
}

func TestInitLogger_UsesLogDirEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv(LogDirEnv, dir)

	logger, err := InitLogger("prod")
	require.NoError(t, err)
	logger.Info("hello")
	_ = logger.Sync() // syncing stderr fails on some platforms

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.True(t, strings.HasPrefix(entries[0].Name(), "prod_"))
}
