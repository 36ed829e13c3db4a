package logging

import (
	"bytes"
	"encoding/json"
	"os"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func restoreLogger(t *testing.T) {
	t.Cleanup(func() {
		log.SetOutput(os.Stderr)
		log.SetLevel(log.InfoLevel)
		log.SetFormatter(&log.TextFormatter{})
	})
}

func TestSetup_JSON(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer

	require.NoError(t, Setup(Options{Level: "debug", Format: "json", Output: &buf}))
	assert.Equal(t, log.DebugLevel, log.GetLevel())

	log.WithField("episode", "100.5").Debug("resolved episode")

	var entry map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "resolved episode", entry["msg"])
	assert.Equal(t, "100.5", entry["episode"])
	assert.Equal(t, "debug", entry["level"])
}

func TestSetup_LevelFilters(t *testing.T) {
	restoreLogger(t)
	var buf bytes.Buffer

	require.NoError(t, Setup(Options{Level: "warn", Format: "text", Output: &buf}))
	log.Info("hidden")
	log.Warn("shown")

	assert.NotContains(t, buf.String(), "hidden")
	assert.Contains(t, buf.String(), "shown")
}

func TestSetup_Rejects(t *testing.T) {
	restoreLogger(t)

	assert.Error(t, Setup(Options{Level: "loud", Format: "text"}))
	assert.Error(t, Setup(Options{Level: "info", Format: "xml"}))
}
