package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type ServerConfig struct {
	HTTPAddr          string
	MaxBodyBytes      int64
	LogLevel          string
	LogFormat         string
	DBDSN             string
	MQTTEnabled       bool
	MQTTBrokerURL     string
	MQTTClientID      string
	MQTTUsername      string
	MQTTPassword      string
	MQTTTopicPrefix   string
	MQTTMinConfidence float64
	MQTTSessionTTL    time.Duration
}

type ClientConfig struct {
	BaseURL   string
	Timeout   time.Duration
	DBDSN     string
	LogLevel  string
	LogFormat string
}

func newViper() (*viper.Viper, error) {
	// .env is optional; real environment variables take precedence.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("INTERPRETER_HTTP_ADDR", ":9014")
	v.SetDefault("INTERPRETER_MAX_BODY_BYTES", 65536)
	v.SetDefault("INTERPRETER_BASE_URL", "http://localhost:9014")
	v.SetDefault("INTERPRETER_TIMEOUT_MS", 1500)
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("LOG_FORMAT", "console")
	v.SetDefault("DB_DSN", "")
	v.SetDefault("MQTT_ENABLED", false)
	v.SetDefault("MQTT_BROKER_URL", "tcp://localhost:1883")
	v.SetDefault("MQTT_CLIENT_ID", "voicecmd-interpreter")
	v.SetDefault("MQTT_USERNAME", "")
	v.SetDefault("MQTT_PASSWORD", "")
	v.SetDefault("MQTT_TOPIC_PREFIX", "voicecmd")
	v.SetDefault("MQTT_MIN_CONFIDENCE", 0.0)
	v.SetDefault("MQTT_SESSION_TTL_SECONDS", 600)
	v.AutomaticEnv()

	if path := strings.TrimSpace(os.Getenv("VOICECMD_CONFIG")); path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}
	return v, nil
}

func LoadServerConfig() (ServerConfig, error) {
	v, err := newViper()
	if err != nil {
		return ServerConfig{}, err
	}

	cfg := ServerConfig{
		HTTPAddr:          strings.TrimSpace(v.GetString("INTERPRETER_HTTP_ADDR")),
		MaxBodyBytes:      v.GetInt64("INTERPRETER_MAX_BODY_BYTES"),
		LogLevel:          v.GetString("LOG_LEVEL"),
		LogFormat:         v.GetString("LOG_FORMAT"),
		DBDSN:             strings.TrimSpace(v.GetString("DB_DSN")),
		MQTTEnabled:       v.GetBool("MQTT_ENABLED"),
		MQTTBrokerURL:     strings.TrimSpace(v.GetString("MQTT_BROKER_URL")),
		MQTTClientID:      v.GetString("MQTT_CLIENT_ID"),
		MQTTUsername:      v.GetString("MQTT_USERNAME"),
		MQTTPassword:      v.GetString("MQTT_PASSWORD"),
		MQTTTopicPrefix:   strings.Trim(strings.TrimSpace(v.GetString("MQTT_TOPIC_PREFIX")), "/"),
		MQTTMinConfidence: v.GetFloat64("MQTT_MIN_CONFIDENCE"),
		MQTTSessionTTL:    time.Duration(v.GetInt("MQTT_SESSION_TTL_SECONDS")) * time.Second,
	}

	if cfg.HTTPAddr == "" {
		return ServerConfig{}, errors.New("INTERPRETER_HTTP_ADDR is required")
	}
	if cfg.MaxBodyBytes <= 0 {
		return ServerConfig{}, fmt.Errorf("INTERPRETER_MAX_BODY_BYTES must be positive, got %d", cfg.MaxBodyBytes)
	}
	if cfg.MQTTEnabled {
		if cfg.MQTTBrokerURL == "" {
			return ServerConfig{}, errors.New("MQTT_BROKER_URL is required when MQTT_ENABLED=true")
		}
		if cfg.MQTTTopicPrefix == "" {
			return ServerConfig{}, errors.New("MQTT_TOPIC_PREFIX is required when MQTT_ENABLED=true")
		}
	}
	if cfg.MQTTMinConfidence < 0 || cfg.MQTTMinConfidence > 1 {
		return ServerConfig{}, fmt.Errorf("MQTT_MIN_CONFIDENCE must be within [0,1], got %v", cfg.MQTTMinConfidence)
	}

	return cfg, nil
}

func LoadClientConfig() (ClientConfig, error) {
	v, err := newViper()
	if err != nil {
		return ClientConfig{}, err
	}
	cfg := ClientConfig{
		BaseURL:   strings.TrimRight(strings.TrimSpace(v.GetString("INTERPRETER_BASE_URL")), "/"),
		Timeout:   time.Duration(v.GetInt("INTERPRETER_TIMEOUT_MS")) * time.Millisecond,
		DBDSN:     strings.TrimSpace(v.GetString("DB_DSN")),
		LogLevel:  v.GetString("LOG_LEVEL"),
		LogFormat: v.GetString("LOG_FORMAT"),
	}
	return cfg, nil
}
