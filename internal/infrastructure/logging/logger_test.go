package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/andrescamacho/fueleu-go/internal/infrastructure/config"
)

func TestNewLogger_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, "json", zerolog.WarnLevel, false)

	logger.Info().Msg("hidden")
	logger.Warn().Str("ship_id", "R001").Msg("shown")

	var line map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "shown", line["message"])
	assert.Equal(t, "R001", line["ship_id"])
	assert.Equal(t, "warn", line["level"])
}

func TestNewLogger_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "fueleu.log")

	logger, closer, err := NewLogger(config.LoggingConfig{Level: "info", Format: "json", Output: "file", FilePath: path})
	require.NoError(t, err)
	logger.Info().Msg("pool created")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "pool created")
}

func TestNewLogger_UnknownLevelFallsBackToInfo(t *testing.T) {
	logger, _, err := NewLogger(config.LoggingConfig{Level: "verbose", Format: "text", Output: "stderr"})

	require.NoError(t, err)
	assert.Equal(t, zerolog.InfoLevel, logger.GetLevel())
}
