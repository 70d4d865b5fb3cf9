package logger_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"checkout/internal/pkg/logger"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, logger.ParseLevel("DEBUG"))
	assert.Equal(t, zapcore.WarnLevel, logger.ParseLevel(" warn "))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel(""))
	assert.Equal(t, zapcore.InfoLevel, logger.ParseLevel("verbose"))
}

func TestNewWithWriter_JSONAndLevel(t *testing.T) {
	var buf bytes.Buffer
	l := logger.NewWithWriter(logger.Config{Level: "warn"}, &buf)

	l.Info("dropped")
	l.Warn("kept", zap.String("invoice", "INV-1"))
	require.NoError(t, l.Sync())

	lines := bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n"))
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal(lines[0], &entry))
	assert.Equal(t, "kept", entry["msg"])
	assert.Equal(t, "warn", entry["level"])
	assert.Equal(t, "INV-1", entry["invoice"])
}

func TestNew_FileOutput(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "checkout.log")

	l, err := logger.New(logger.Config{Output: logger.OutputFile, FilePath: path})
	require.NoError(t, err)

	l.Info("started")
	require.NoError(t, logger.Sync(l))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"msg":"started"`)
}

func TestNew_InvalidOutput(t *testing.T) {
	_, err := logger.New(logger.Config{Output: "syslog"})
	require.Error(t, err)

	_, err = logger.New(logger.Config{Output: logger.OutputFile})
	require.Error(t, err)
}
