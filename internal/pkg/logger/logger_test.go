package logger

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zerolog.DebugLevel, ParseLevel("debug"))
	assert.Equal(t, zerolog.WarnLevel, ParseLevel("WARN"))
	assert.Equal(t, zerolog.InfoLevel, ParseLevel("verbose"))
}

func TestConfigureJSON(t *testing.T) {
	var buf bytes.Buffer
	Configure(Config{Level: InfoLevel, Output: &buf})
	t.Cleanup(func() { Configure(Config{Level: InfoLevel, Pretty: true}) })

	Debug().Msg("hidden")
	Info().Str("projectID", "p1").Msg("Project registered")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "Project registered", entry["message"])
	assert.Equal(t, "p1", entry["projectID"])
	assert.Equal(t, "info", entry["level"])
}
