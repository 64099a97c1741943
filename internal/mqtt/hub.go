package mqtt

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	paho "github.com/eclipse/paho.mqtt.golang"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"voicecmd/internal/command"
	"voicecmd/internal/domain"
	"voicecmd/internal/metrics"
	"voicecmd/internal/session"
)

var (
	ErrInterimTranscript = errors.New("interim transcript")
	ErrLowConfidence     = errors.New("transcript below confidence floor")
)

type HubConfig struct {
	BrokerURL     string
	ClientID      string
	Username      string
	Password      string
	TopicPrefix   string
	MinConfidence float64
	SessionTTL    time.Duration
}

// Classifier turns a finalized utterance into a command.
type Classifier interface {
	Classify(text string, confidence float64) command.Command
}

// Publication is one outbound MQTT message.
type Publication struct {
	Topic   string
	Payload []byte
}

// Hub bridges speech terminals to the interpreter: final transcripts in,
// command envelopes and navigation events out.
type Hub struct {
	cfg        HubConfig
	client     paho.Client
	classifier Classifier
	sessions   *session.Registry
	logger     *zap.Logger
}

func NewHub(cfg HubConfig, classifier Classifier, logger *zap.Logger) *Hub {
	return &Hub{
		cfg:        cfg,
		classifier: classifier,
		sessions:   session.NewRegistry(cfg.SessionTTL),
		logger:     logger.With(zap.String("component", "mqtt_hub")),
	}
}

func (h *Hub) Sessions() *session.Registry {
	return h.sessions
}

func (h *Hub) Start(ctx context.Context) error {
	opts := paho.NewClientOptions().
		AddBroker(h.cfg.BrokerURL).
		SetClientID(h.cfg.ClientID).
		SetAutoReconnect(true).
		SetConnectRetry(true)

	if h.cfg.Username != "" {
		opts.SetUsername(h.cfg.Username)
		opts.SetPassword(h.cfg.Password)
	}

	opts.SetConnectionLostHandler(func(_ paho.Client, err error) {
		h.logger.Error("mqtt connection lost", zap.Error(err))
	})
	// Subscriptions are not persisted across reconnects without a session.
	opts.SetOnConnectHandler(func(c paho.Client) {
		if token := c.Subscribe(TopicTerminalTranscripts(h.cfg.TopicPrefix), 1, h.handleTranscript); token.Wait() && token.Error() != nil {
			h.logger.Error("subscribe transcripts failed", zap.Error(token.Error()))
		}
	})

	h.client = paho.NewClient(opts)
	if token := h.client.Connect(); token.Wait() && token.Error() != nil {
		return token.Error()
	}
	h.logger.Info("mqtt hub connected",
		zap.String("broker", h.cfg.BrokerURL),
		zap.String("topic", TopicTerminalTranscripts(h.cfg.TopicPrefix)),
	)

	go func() {
		<-ctx.Done()
		h.client.Disconnect(100)
	}()
	go h.pruneLoop(ctx)

	return nil
}

func (h *Hub) handleTranscript(_ paho.Client, msg paho.Message) {
	pubs, err := h.Dispatch(msg.Topic(), msg.Payload())
	switch {
	case errors.Is(err, ErrInterimTranscript):
		metrics.TranscriptsSkipped.WithLabelValues("interim").Inc()
		return
	case errors.Is(err, ErrLowConfidence):
		metrics.TranscriptsSkipped.WithLabelValues("low_confidence").Inc()
		h.logger.Debug("skip low confidence transcript", zap.String("topic", msg.Topic()))
		return
	case err != nil:
		metrics.TranscriptsSkipped.WithLabelValues("invalid").Inc()
		h.logger.Warn("skip invalid transcript", zap.String("topic", msg.Topic()), zap.Error(err))
		return
	}

	for _, p := range pubs {
		if token := h.client.Publish(p.Topic, 1, false, p.Payload); token.WaitTimeout(5*time.Second) && token.Error() != nil {
			h.logger.Error("publish failed", zap.String("topic", p.Topic), zap.Error(token.Error()))
		}
	}
}

// Dispatch classifies one transcript message and returns what to publish.
func (h *Hub) Dispatch(topic string, payload []byte) ([]Publication, error) {
	terminalID, err := ParseTerminalID(topic, h.cfg.TopicPrefix)
	if err != nil {
		return nil, err
	}

	var ev domain.TranscriptEvent
	if err := json.Unmarshal(payload, &ev); err != nil {
		return nil, fmt.Errorf("invalid transcript payload: %w", err)
	}
	if !ev.IsFinal {
		return nil, ErrInterimTranscript
	}
	if ev.Confidence < h.cfg.MinConfidence {
		return nil, fmt.Errorf("%w: %.3f < %.3f", ErrLowConfidence, ev.Confidence, h.cfg.MinConfidence)
	}

	requestID := strings.TrimSpace(ev.TranscriptID)
	if requestID == "" {
		requestID = uuid.NewString()
	}

	start := time.Now()
	cmd := h.classifier.Classify(ev.Text, ev.Confidence)
	metrics.ClassifyDuration.WithLabelValues(metrics.SourceMQTT).Observe(time.Since(start).Seconds())
	metrics.CommandsClassified.WithLabelValues(string(cmd.Type()), metrics.SourceMQTT).Inc()

	raw, err := json.Marshal(cmd)
	if err != nil {
		return nil, fmt.Errorf("encode command: %w", err)
	}
	envelope := domain.CommandEnvelope{
		RequestID:  requestID,
		TerminalID: terminalID,
		Command:    raw,
		Message:    command.ToMessage(cmd),
	}
	if a, ok := cmd.(command.ActionCommand); ok {
		switch a.Action {
		case command.ActionHelp:
			envelope.Help = command.HelpText()
		case command.ActionRepeatLast:
			if last, ok := h.sessions.LastMessage(terminalID); ok {
				envelope.Repeat = last
			}
		case command.ActionClearChat:
			h.sessions.Reset(terminalID)
		}
		h.sessions.Touch(terminalID)
	} else {
		h.sessions.Record(terminalID, requestID, string(cmd.Type()), envelope.Message)
	}
	body, err := json.Marshal(envelope)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}
	pubs := []Publication{{Topic: TopicCommand(h.cfg.TopicPrefix, terminalID), Payload: body}}

	if nav, ok := cmd.(command.NavigationCommand); ok {
		navBody, err := json.Marshal(domain.NavigationEvent{RequestID: requestID, Destination: string(nav.Destination)})
		if err != nil {
			return nil, fmt.Errorf("encode navigation event: %w", err)
		}
		pubs = append(pubs, Publication{Topic: TopicNavigate(h.cfg.TopicPrefix, terminalID), Payload: navBody})
	}

	h.logger.Info("transcript classified",
		zap.String("terminal_id", terminalID),
		zap.String("request_id", requestID),
		zap.String("type", string(cmd.Type())),
		zap.Float64("confidence", ev.Confidence),
	)
	return pubs, nil
}

func (h *Hub) pruneLoop(ctx context.Context) {
	ticker := time.NewTicker(time.Minute)
	defer ticker.Stop()
	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if n := h.sessions.Prune(); n > 0 {
				h.logger.Debug("pruned idle terminals", zap.Int("count", n), zap.Strings("active", h.activeTerminals()))
			}
		}
	}
}

func (h *Hub) activeTerminals() []string {
	states := h.sessions.ListActive()
	ids := make([]string, 0, len(states))
	for _, s := range states {
		ids = append(ids, s.TerminalID)
	}
	return ids
}
