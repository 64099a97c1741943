package session

import (
	"sort"
	"strings"
	"sync"
	"time"
)

// TerminalState is what the bridge remembers about one speech terminal.
type TerminalState struct {
	TerminalID    string
	LastRequestID string
	LastType      string
	LastMessage   string
	Commands      int64
	LastUpdated   time.Time
}

// Registry keeps the last answered message per terminal so that
// "repeat that" can be served without another round trip.
type Registry struct {
	mu   sync.RWMutex
	data map[string]TerminalState
	ttl  time.Duration
	now  func() time.Time
}

func NewRegistry(ttl time.Duration) *Registry {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &Registry{
		data: make(map[string]TerminalState),
		ttl:  ttl,
		now:  time.Now,
	}
}

// Record stores the message produced for a terminal's latest utterance.
func (r *Registry) Record(terminalID, requestID, commandType, message string) {
	if strings.TrimSpace(terminalID) == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	current := r.data[terminalID]
	r.data[terminalID] = TerminalState{
		TerminalID:    terminalID,
		LastRequestID: requestID,
		LastType:      commandType,
		LastMessage:   message,
		Commands:      current.Commands + 1,
		LastUpdated:   r.now(),
	}
}

// Touch counts a command without replacing the remembered message.
func (r *Registry) Touch(terminalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.data[terminalID]
	if !ok {
		state = TerminalState{TerminalID: terminalID}
	}
	state.Commands++
	state.LastUpdated = r.now()
	r.data[terminalID] = state
}

// Reset forgets the remembered message, e.g. after "clear chat".
func (r *Registry) Reset(terminalID string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	state, ok := r.data[terminalID]
	if !ok {
		return
	}
	state.LastRequestID = ""
	state.LastType = ""
	state.LastMessage = ""
	state.LastUpdated = r.now()
	r.data[terminalID] = state
}

func (r *Registry) LastMessage(terminalID string) (string, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.data[terminalID]
	if !ok || r.isExpired(state) || state.LastMessage == "" {
		return "", false
	}
	return state.LastMessage, true
}

func (r *Registry) GetState(terminalID string) (TerminalState, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	state, ok := r.data[terminalID]
	if !ok || r.isExpired(state) {
		return TerminalState{}, false
	}
	return state, true
}

// ListActive returns unexpired terminals ordered by id.
func (r *Registry) ListActive() []TerminalState {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]TerminalState, 0, len(r.data))
	for _, state := range r.data {
		if r.isExpired(state) {
			continue
		}
		out = append(out, state)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TerminalID < out[j].TerminalID })
	return out
}

// Prune drops expired terminals and reports how many were removed.
func (r *Registry) Prune() int {
	r.mu.Lock()
	defer r.mu.Unlock()

	removed := 0
	for id, state := range r.data {
		if r.isExpired(state) {
			delete(r.data, id)
			removed++
		}
	}
	return removed
}

func (r *Registry) isExpired(state TerminalState) bool {
	return r.now().Sub(state.LastUpdated) > r.ttl
}
