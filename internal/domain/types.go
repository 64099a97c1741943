package domain

import "encoding/json"

type ClassifyRequest struct {
	Text       string  `json:"text"`
	Confidence float64 `json:"confidence"`
}

type ClassifyResponse struct {
	RequestID string          `json:"request_id"`
	Command   json.RawMessage `json:"command"`
	Message   string          `json:"message"`
	LatencyMS float64         `json:"latency_ms"`
}

type MessageRequest struct {
	Command json.RawMessage `json:"command"`
}

type MessageResponse struct {
	Message string `json:"message"`
}

type HelpResponse struct {
	Text string `json:"text"`
}

// MQTT payloads

// TranscriptEvent is emitted by a speech terminal. Interim results have IsFinal=false.
type TranscriptEvent struct {
	TranscriptID string  `json:"transcript_id,omitempty"`
	Text         string  `json:"text"`
	Confidence   float64 `json:"confidence"`
	IsFinal      bool    `json:"is_final"`
}

type CommandEnvelope struct {
	RequestID  string          `json:"request_id"`
	TerminalID string          `json:"terminal_id"`
	Command    json.RawMessage `json:"command"`
	Message    string          `json:"message"`
	Help       string          `json:"help,omitempty"`
	Repeat     string          `json:"repeat,omitempty"`
}

type NavigationEvent struct {
	RequestID   string `json:"request_id"`
	Destination string `json:"destination"`
}
