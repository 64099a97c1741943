package mqtt

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseTerminalID(t *testing.T) {
	id, err := ParseTerminalID("voicecmd/terminal/kiosk-7/transcript", "voicecmd")
	require.NoError(t, err)
	assert.Equal(t, "kiosk-7", id)

	id, err = ParseTerminalID("org/voice/terminal/t1/transcript", "org/voice")
	require.NoError(t, err)
	assert.Equal(t, "t1", id)
}

func TestParseTerminalIDRejects(t *testing.T) {
	tests := []struct {
		name  string
		topic string
	}{
		{name: "too short", topic: "voicecmd/terminal/t1"},
		{name: "prefix mismatch", topic: "other/terminal/t1/transcript"},
		{name: "missing terminal segment", topic: "voicecmd/device/t1/transcript"},
		{name: "empty id", topic: "voicecmd/terminal//transcript"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseTerminalID(tt.topic, "voicecmd")
			assert.Error(t, err)
		})
	}
}

func TestTopicsRoundTrip(t *testing.T) {
	for _, topic := range []string{
		"voicecmd/terminal/t9/transcript",
		TopicCommand("voicecmd", "t9"),
		TopicNavigate("voicecmd", "t9"),
	} {
		id, err := ParseTerminalID(topic, "voicecmd")
		require.NoError(t, err, topic)
		assert.Equal(t, "t9", id)
	}
	assert.Equal(t, "voicecmd/terminal/+/transcript", TopicTerminalTranscripts("voicecmd"))
}
