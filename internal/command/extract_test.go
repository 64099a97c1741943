package command

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{"", "  Go To Alerts  ", "ANALYZE AAPL", "\tWhat's the price?\n", "ÉQUITY"}
	for _, in := range inputs {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
	assert.Equal(t, "go to alerts", Normalize("  Go To Alerts  "))
}

func TestExtractSymbol(t *testing.T) {
	tests := []struct {
		name   string
		text   string
		want   string
		wantOK bool
	}{
		{name: "allowed symbol", text: "analyze aapl", want: "AAPL", wantOK: true},
		{name: "allowed symbol without context", text: "thoughts on nvda", want: "NVDA", wantOK: true},
		{name: "unlisted token with context", text: "is zzz a good investment", want: "IS", wantOK: true},
		{name: "unlisted token without context", text: "hello there friend", wantOK: false},
		{name: "ticker phrase", text: "ticker nvda", want: "NVDA", wantOK: true},
		{name: "ticker phrase after short word", text: "the ticker is nvda", want: "THE", wantOK: true},
		{name: "symbol phrase", text: "symbol msft", want: "MSFT", wantOK: true},
		{name: "five letter context word", text: "stock symbol msft", want: "STOCK", wantOK: true},
		{name: "long words only", text: "wonderful afternoon", wantOK: false},
		{name: "digits break tokens", text: "analyze aapl123", wantOK: false},
		{name: "empty", text: "", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ExtractSymbol(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractCompanyFirstDeclaredWins(t *testing.T) {
	tests := []struct {
		text      string
		wantAlias string
		wantTick  string
	}{
		{text: "google or meta", wantAlias: "google", wantTick: "GOOGL"},
		{text: "meta or google", wantAlias: "google", wantTick: "GOOGL"},
		{text: "alphabet and google", wantAlias: "google", wantTick: "GOOGL"},
		{text: "facebook earnings", wantAlias: "facebook", wantTick: "META"},
		{text: "coca-cola dividend", wantAlias: "coca-cola", wantTick: "KO"},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractCompany(tt.text)
			assert.True(t, ok)
			assert.Equal(t, CompanyMatch{Alias: tt.wantAlias, TickerSymbol: tt.wantTick}, got)
		})
	}

	_, ok := ExtractCompany("no companies here")
	assert.False(t, ok)
}

// Aliases match as plain substrings, so they also fire inside longer words.
func TestExtractCompanyMatchesInsideWords(t *testing.T) {
	got, ok := ExtractCompany("pineapple juice")
	assert.True(t, ok)
	assert.Equal(t, "AAPL", got.TickerSymbol)
}

func TestExtractAnalysisType(t *testing.T) {
	tests := []struct {
		text   string
		want   AnalysisType
		wantOK bool
	}{
		{text: "fundamental view of apple", want: AnalysisFundamental, wantOK: true},
		{text: "show me the chart", want: AnalysisTechnical, wantOK: true},
		{text: "market sentiment", want: AnalysisSentiment, wantOK: true},
		{text: "a comprehensive look", want: AnalysisCombined, wantOK: true},
		{text: "technical and fundamental", want: AnalysisFundamental, wantOK: true},
		{text: "nothing relevant", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractAnalysisType(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestExtractAction(t *testing.T) {
	tests := []struct {
		text   string
		want   QueryAction
		wantOK bool
	}{
		{text: "price of tesla", want: QueryPrice, wantOK: true},
		{text: "analyze the price of nvidia", want: QueryPrice, wantOK: true},
		{text: "latest headlines for amazon", want: QueryNews, wantOK: true},
		{text: "compare apple and microsoft", want: QueryCompare, wantOK: true},
		{text: "tell me about netflix", want: QueryAnalyze, wantOK: true},
		{text: "how is disney doing", want: QueryAnalyze, wantOK: true},
		{text: "news and price", want: QueryPrice, wantOK: true},
		{text: "good morning", wantOK: false},
	}
	for _, tt := range tests {
		t.Run(tt.text, func(t *testing.T) {
			got, ok := ExtractAction(tt.text)
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}
