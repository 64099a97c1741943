package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"voicecmd/internal/command"
	"voicecmd/internal/config"
	"voicecmd/internal/db"
	"voicecmd/internal/interpreter"
	"voicecmd/internal/logging"
	"voicecmd/internal/mqtt"
)

func main() {
	cfg, err := config.LoadServerConfig()
	if err != nil {
		fmt.Fprintf(os.Stderr, "load config failed: %v\n", err)
		os.Exit(1)
	}

	logger, err := logging.New(cfg.LogLevel, cfg.LogFormat)
	if err != nil {
		fmt.Fprintf(os.Stderr, "init logger failed: %v\n", err)
		os.Exit(1)
	}
	defer func() { _ = logger.Sync() }()

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	interp, err := db.LoadInterpreter(ctx, cfg.DBDSN, logger)
	if err != nil {
		logger.Error("build interpreter failed", zap.Error(err))
		os.Exit(1)
	}

	if cfg.MQTTEnabled {
		hub := mqtt.NewHub(mqtt.HubConfig{
			BrokerURL:     cfg.MQTTBrokerURL,
			ClientID:      cfg.MQTTClientID,
			Username:      cfg.MQTTUsername,
			Password:      cfg.MQTTPassword,
			TopicPrefix:   cfg.MQTTTopicPrefix,
			MinConfidence: cfg.MQTTMinConfidence,
			SessionTTL:    cfg.MQTTSessionTTL,
		}, interp, logger)
		if err := hub.Start(ctx); err != nil {
			logger.Error("start mqtt hub failed", zap.Error(err))
			os.Exit(1)
		}
	}

	httpServer := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           interpreter.NewRouter(interpreter.ServerConfig{MaxBodyBytes: cfg.MaxBodyBytes}, interp, logger),
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		logger.Info("interpreter server started",
			zap.String("addr", cfg.HTTPAddr),
			zap.String("schema", command.Schema),
			zap.String("engine", command.Engine),
			zap.Bool("mqtt", cfg.MQTTEnabled),
		)
		if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("http server error", zap.Error(err))
			cancel()
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case <-sigCh:
		logger.Info("received shutdown signal")
	case <-ctx.Done():
	}

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := httpServer.Shutdown(shutdownCtx); err != nil {
		logger.Error("http shutdown failed", zap.Error(err))
	}
}
