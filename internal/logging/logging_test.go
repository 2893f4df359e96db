package logging_test

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/trip-planner/internal/logging"
)

func TestNew_JSONRespectsLevel(t *testing.T) {
	var buf bytes.Buffer
	log, closer, err := logging.New(logging.Options{Level: "warn", Format: "json", Stdout: &buf})
	require.NoError(t, err)
	defer closer.Close()

	log.Info("hidden")
	log.Warn("shown", "trip", "kyoto")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "shown", entry["msg"])
	assert.Equal(t, "kyoto", entry["trip"])
}

func TestNew_TextUsesTint(t *testing.T) {
	var buf bytes.Buffer
	log, _, err := logging.New(logging.Options{Level: "bogus", Format: "text", Stdout: &buf})
	require.NoError(t, err)

	log.Info("trip store ready", "loaded", 3)

	assert.Contains(t, buf.String(), "trip store ready")
	assert.Contains(t, buf.String(), "loaded")
	assert.False(t, json.Valid(bytes.TrimSpace(buf.Bytes())), "text output is not JSON")
}

func TestNew_FileReceivesJSON(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "logs", "api.log")
	log, closer, err := logging.New(logging.Options{Format: "text", File: path, Stdout: &buf})
	require.NoError(t, err)

	log.With("component", "store").Error("persist trips failed")
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	var entry map[string]any
	require.NoError(t, json.Unmarshal(bytes.TrimSpace(data), &entry))
	assert.Equal(t, "persist trips failed", entry["msg"])
	assert.Equal(t, "store", entry["component"])
	assert.Contains(t, buf.String(), "persist trips failed")
}
