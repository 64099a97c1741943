package main

import (
	"bytes"
	"encoding/json"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"voicecmd/internal/db"
)

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Setenv("DB_DSN", "")
	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)
	err := root.Execute()
	return out.String(), err
}

func TestClassifyText(t *testing.T) {
	out, err := run(t, "classify", "go", "to", "alerts")
	require.NoError(t, err)
	assert.Contains(t, out, "type:       navigation")
	assert.Contains(t, out, "intent:     navigate")
	assert.Contains(t, out, "message:    Navigate to alerts")
}

func TestClassifyJSON(t *testing.T) {
	out, err := run(t, "classify", "-o", "json", "-c", "0.9", "what's the price of tesla")
	require.NoError(t, err)

	var got struct {
		Command struct {
			Type       string            `json:"type"`
			Confidence float64           `json:"confidence"`
			Parameters map[string]string `json:"parameters"`
		} `json:"command"`
		Message string `json:"message"`
	}
	require.NoError(t, json.Unmarshal([]byte(out), &got))
	assert.Equal(t, "stock_query", got.Command.Type)
	assert.Equal(t, 0.9, got.Command.Confidence)
	assert.Equal(t, "TSLA", got.Command.Parameters["symbol"])
	assert.Equal(t, "What's the current price of TSLA?", got.Message)
}

func TestClassifyYAML(t *testing.T) {
	out, err := run(t, "classify", "--output", "yaml", "stop talking")
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, yaml.Unmarshal([]byte(out), &got))
	assert.Equal(t, "Stop speaking", got["message"])
}

func TestClassifyRejectsUnknownFormat(t *testing.T) {
	_, err := run(t, "classify", "-o", "xml", "help")
	assert.ErrorContains(t, err, "unsupported output format")
}

func TestMessageCommand(t *testing.T) {
	out, err := run(t, "message", `{"type":"action","parameters":{"action":"repeat_last"}}`)
	require.NoError(t, err)
	assert.Equal(t, "Repeat the last response\n", out)

	_, err = run(t, "message", `{"type":"bogus"}`)
	assert.Error(t, err)
}

func TestExamplesCommand(t *testing.T) {
	out, err := run(t, "examples")
	require.NoError(t, err)
	assert.Contains(t, out, "Stock queries:")
}

func TestPrintAliases(t *testing.T) {
	records := []db.AliasRecord{
		{ID: 1, Alias: "palantir", Ticker: "PLTR", CreatedAt: time.Unix(0, 0)},
		{ID: 2, Alias: "ibm", Ticker: "IBM", CreatedAt: time.Unix(0, 0)},
	}

	var text bytes.Buffer
	require.NoError(t, printAliases(&text, "text", records))
	assert.Equal(t, "ALIAS     TICKER\npalantir  PLTR\nibm       IBM\n", text.String())

	var js bytes.Buffer
	require.NoError(t, printAliases(&js, "json", records))
	assert.JSONEq(t, `[{"alias":"palantir","ticker":"PLTR"},{"alias":"ibm","ticker":"IBM"}]`, js.String())
}

func TestClassifyLocalReadsAliasStoreWhenDSNSet(t *testing.T) {
	t.Setenv("DB_DSN", "postgres://user:pw@localhost:notaport/db")
	t.Setenv("LOG_LEVEL", "error")

	root := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"classify", "how", "is", "palantir"})
	err := root.Execute()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "connect db")
}
