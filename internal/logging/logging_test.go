package logging

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/llehouerou/aurex/internal/config"
)

func TestNew_Levels(t *testing.T) {
	tests := []struct {
		level string
		want  logrus.Level
	}{
		{"debug", logrus.DebugLevel},
		{"trace", logrus.TraceLevel},
		{"WARN", logrus.WarnLevel},
		{"", logrus.InfoLevel},
		{"loud", logrus.InfoLevel},
	}
	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			logger, closer, err := New(config.LogConfig{Level: tt.level})
			require.NoError(t, err)
			defer closer.Close()
			assert.Equal(t, tt.want, logger.GetLevel())
			assert.Equal(t, os.Stderr, logger.Out)
		})
	}
}

func TestNew_JSONFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "aurex.log")

	logger, closer, err := New(config.LogConfig{Level: "info", File: path, JSON: true})
	require.NoError(t, err)
	logger.WithField("op", "load").Info("hello")
	logger.Debug("hidden")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	require.Len(t, lines, 1)

	var entry map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &entry))
	assert.Equal(t, "hello", entry["msg"])
	assert.Equal(t, "load", entry["op"])
	assert.Equal(t, "info", entry["level"])
}

func TestNew_TextFileAppends(t *testing.T) {
	path := filepath.Join(t.TempDir(), "aurex.log")

	for _, msg := range []string{"first", "second"} {
		logger, closer, err := New(config.LogConfig{File: path})
		require.NoError(t, err)
		logger.Warn(msg)
		require.NoError(t, closer.Close())
	}

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "msg=first")
	assert.Contains(t, string(data), "msg=second")
}

func TestDiscard(t *testing.T) {
	logger := Discard()
	logger.Error("nobody hears this")
	assert.Equal(t, logrus.InfoLevel, logger.GetLevel())
}
