package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadServerConfigDefaults(t *testing.T) {
	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, ":9014", cfg.HTTPAddr)
	assert.Equal(t, int64(65536), cfg.MaxBodyBytes)
	assert.False(t, cfg.MQTTEnabled)
	assert.Equal(t, "voicecmd", cfg.MQTTTopicPrefix)
	assert.Zero(t, cfg.MQTTMinConfidence)
	assert.Equal(t, 10*time.Minute, cfg.MQTTSessionTTL)
}

func TestLoadServerConfigFromEnv(t *testing.T) {
	t.Setenv("INTERPRETER_HTTP_ADDR", ":8088")
	t.Setenv("MQTT_ENABLED", "true")
	t.Setenv("MQTT_TOPIC_PREFIX", "/robots/")
	t.Setenv("MQTT_MIN_CONFIDENCE", "0.6")

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, ":8088", cfg.HTTPAddr)
	assert.True(t, cfg.MQTTEnabled)
	assert.Equal(t, "robots", cfg.MQTTTopicPrefix)
	assert.InDelta(t, 0.6, cfg.MQTTMinConfidence, 1e-9)
}

func TestLoadServerConfigValidation(t *testing.T) {
	tests := []struct {
		name string
		env  map[string]string
	}{
		{name: "non-positive body limit", env: map[string]string{"INTERPRETER_MAX_BODY_BYTES": "0"}},
		{name: "mqtt without broker", env: map[string]string{"MQTT_ENABLED": "true", "MQTT_BROKER_URL": " "}},
		{name: "confidence floor above one", env: map[string]string{"MQTT_MIN_CONFIDENCE": "1.5"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			for k, v := range tt.env {
				t.Setenv(k, v)
			}
			_, err := LoadServerConfig()
			assert.Error(t, err)
		})
	}
}

func TestLoadServerConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "voicecmd.yaml")
	require.NoError(t, os.WriteFile(path, []byte("INTERPRETER_HTTP_ADDR: \":7000\"\nLOG_LEVEL: debug\n"), 0o600))
	t.Setenv("VOICECMD_CONFIG", path)

	cfg, err := LoadServerConfig()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.HTTPAddr)
	assert.Equal(t, "debug", cfg.LogLevel)
}

func TestLoadClientConfig(t *testing.T) {
	t.Setenv("INTERPRETER_BASE_URL", "http://interp:9014/")
	t.Setenv("INTERPRETER_TIMEOUT_MS", "250")

	cfg, err := LoadClientConfig()
	require.NoError(t, err)
	assert.Equal(t, "http://interp:9014", cfg.BaseURL)
	assert.Equal(t, 250*time.Millisecond, cfg.Timeout)
}
