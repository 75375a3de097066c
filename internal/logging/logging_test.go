package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"pms/internal/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestNewLevels(t *testing.T) {
	tests := []struct {
		name    string
		cfg     config.LoggingConfig
		verbose bool
		want    zapcore.Level
	}{
		{"default", config.LoggingConfig{}, false, zapcore.InfoLevel},
		{"warn json", config.LoggingConfig{Level: "warn", Format: config.FormatJSON}, false, zapcore.WarnLevel},
		{"verbose wins", config.LoggingConfig{Level: "error"}, true, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := New(tt.cfg, tt.verbose)
			require.NoError(t, err)
			assert.True(t, logger.Core().Enabled(tt.want))
			if tt.want > zapcore.DebugLevel {
				assert.False(t, logger.Core().Enabled(tt.want-1))
			}
		})
	}
}

func TestNewRejectsBadSettings(t *testing.T) {
	_, err := New(config.LoggingConfig{Level: "loud"}, false)
	assert.Error(t, err)

	_, err = New(config.LoggingConfig{Format: "xml"}, false)
	assert.Error(t, err)
}

func TestNewWriterJSON(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(config.LoggingConfig{Level: "debug", Format: config.FormatJSON}, &buf)
	require.NoError(t, err)

	logger.Named("store").Debug("committed", zap.String("entity", "city"))
	require.NoError(t, logger.Sync())

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "committed", entry["msg"])
	assert.Equal(t, "store", entry["logger"])
	assert.Equal(t, "city", entry["entity"])
}

func TestNewWriterFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	logger, err := NewWriter(config.LoggingConfig{Level: "warn"}, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	logger.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}
