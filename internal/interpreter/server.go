package interpreter

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"math"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.uber.org/zap"

	"voicecmd/internal/command"
	"voicecmd/internal/domain"
	"voicecmd/internal/metrics"
)

type ServerConfig struct {
	MaxBodyBytes int64
}

// NewRouter exposes an Interpreter over HTTP.
func NewRouter(cfg ServerConfig, interp *command.Interpreter, logger *zap.Logger) http.Handler {
	r := chi.NewRouter()
	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]any{
			"ok":     true,
			"schema": command.Schema,
			"engine": command.Engine,
		})
	})
	r.Handle("/metrics", promhttp.Handler())

	r.Route("/v1/commands", func(r chi.Router) {
		r.Post("/classify", func(w http.ResponseWriter, req *http.Request) {
			var in domain.ClassifyRequest
			if err := decodeJSONBody(req, cfg.MaxBodyBytes, &in); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}

			start := time.Now()
			cmd := interp.Classify(in.Text, in.Confidence)
			msg := command.ToMessage(cmd)
			cost := time.Since(start)
			metrics.ClassifyDuration.WithLabelValues(metrics.SourceHTTP).Observe(cost.Seconds())
			metrics.CommandsClassified.WithLabelValues(string(cmd.Type()), metrics.SourceHTTP).Inc()

			raw, err := json.Marshal(cmd)
			if err != nil {
				logger.Error("encode command failed", zap.Error(err))
				writeJSON(w, http.StatusInternalServerError, map[string]any{"error": "encode command failed"})
				return
			}
			writeJSON(w, http.StatusOK, domain.ClassifyResponse{
				RequestID: uuid.NewString(),
				Command:   raw,
				Message:   msg,
				LatencyMS: roundMillis(cost),
			})
		})
		r.Post("/message", func(w http.ResponseWriter, req *http.Request) {
			var in domain.MessageRequest
			if err := decodeJSONBody(req, cfg.MaxBodyBytes, &in); err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}
			if len(in.Command) == 0 {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": "command is required"})
				return
			}
			cmd, err := command.Decode(in.Command)
			if err != nil {
				writeJSON(w, http.StatusBadRequest, map[string]any{"error": err.Error()})
				return
			}
			writeJSON(w, http.StatusOK, domain.MessageResponse{Message: command.ToMessage(cmd)})
		})
		r.Get("/help", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, domain.HelpResponse{Text: command.HelpText()})
		})
		r.Get("/tables", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, map[string]any{
				"schema": command.Schema,
				"tables": interp.Tables(),
			})
		})
	})
	return r
}

func decodeJSONBody(req *http.Request, maxBytes int64, out any) error {
	defer req.Body.Close()
	data, err := io.ReadAll(io.LimitReader(req.Body, maxBytes+1))
	if err != nil {
		return fmt.Errorf("read body: %w", err)
	}
	if int64(len(data)) > maxBytes {
		return fmt.Errorf("request body too large")
	}
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()
	if err := dec.Decode(out); err != nil {
		return fmt.Errorf("invalid json: %w", err)
	}
	var extra any
	if err := dec.Decode(&extra); err != io.EOF {
		if err == nil {
			return fmt.Errorf("invalid json: multiple JSON values")
		}
		return fmt.Errorf("invalid json: %w", err)
	}
	return nil
}

func roundMillis(d time.Duration) float64 {
	ms := float64(d.Microseconds()) / 1000.0
	return math.Round(ms*1000) / 1000
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
