package logs

import (
	"bytes"
	"encoding/json"
	"testing"

	"tracker/config"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewWithWriter_JSON(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.ServiceName = "tracker"
	cfg.Env.Log.Level = "warn"

	var buf bytes.Buffer
	logger, err := NewWithWriter(cfg, &buf)
	require.NoError(t, err)

	logger.Info("hidden")
	assert.Empty(t, buf.String())

	logger.Warn("visible")

	var line map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &line))
	assert.Equal(t, "visible", line["msg"])
	assert.Equal(t, "tracker", line["service"])
}

func TestNewWithWriter_Pretty(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Pretty = true
	cfg.Env.Log.Level = "DEBUG"

	var buf bytes.Buffer
	logger, err := NewWithWriter(cfg, &buf)
	require.NoError(t, err)

	logger.Debug("hello")
	assert.Contains(t, buf.String(), "msg=hello")
}

func TestNewWithWriter_UnknownLevel(t *testing.T) {
	cfg := &config.Config{}
	cfg.Env.Log.Level = "verbose"

	_, err := NewWithWriter(cfg, &bytes.Buffer{})
	require.EqualError(t, err, "unknown log level: verbose")
}
