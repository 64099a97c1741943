package command

const (
	Schema = "command-v1"
	Engine = "go-keyword-v1"
)

// PatternEntry maps an ordered keyword list to a tag. Earlier entries win.
type PatternEntry struct {
	Tag      string   `json:"tag"`
	Keywords []string `json:"keywords"`
}

// CompanyEntry maps company-name aliases to a ticker symbol. Earlier aliases win.
type CompanyEntry struct {
	Aliases      []string `json:"aliases"`
	TickerSymbol string   `json:"ticker_symbol"`
}

var systemActionPatterns = []PatternEntry{
	{Tag: string(ActionClearChat), Keywords: []string{"clear chat", "clear the chat", "clear conversation", "clear the conversation", "new conversation", "start over"}},
	{Tag: string(ActionRepeatLast), Keywords: []string{"repeat that", "say that again", "repeat last", "repeat the last", "repeat"}},
	{Tag: string(ActionStopSpeaking), Keywords: []string{"stop speaking", "stop talking", "be quiet", "stop reading", "silence"}},
	{Tag: string(ActionHelp), Keywords: []string{"help", "what can you do", "what can i say", "voice commands"}},
}

var navigationPatterns = []PatternEntry{
	{Tag: string(DestinationChat), Keywords: []string{"go to chat", "open chat", "show chat", "back to chat"}},
	{Tag: string(DestinationAlerts), Keywords: []string{"go to alerts", "open alerts", "show alerts", "show my alerts", "alerts page"}},
	{Tag: string(DestinationEducation), Keywords: []string{"go to education", "open education", "show education", "learning center", "education"}},
	{Tag: string(DestinationWatchlist), Keywords: []string{"go to watchlist", "open watchlist", "show watchlist", "my watchlist", "watch list"}},
}

var analysisTypePatterns = []PatternEntry{
	{Tag: string(AnalysisFundamental), Keywords: []string{"fundamental", "financials", "earnings", "valuation", "balance sheet"}},
	{Tag: string(AnalysisTechnical), Keywords: []string{"technical", "chart", "indicator", "moving average", "support and resistance"}},
	{Tag: string(AnalysisSentiment), Keywords: []string{"sentiment", "social media", "what people think", "market mood"}},
	{Tag: string(AnalysisCombined), Keywords: []string{"combined", "comprehensive", "full analysis", "complete analysis", "everything"}},
}

// Specific query actions are scanned before the generic analyze keywords.
var queryActionPatterns = []PatternEntry{
	{Tag: string(QueryPrice), Keywords: []string{"price", "cost", "trading at", "quote", "worth"}},
	{Tag: string(QueryNews), Keywords: []string{"news", "headlines", "latest on", "happening with"}},
	{Tag: string(QueryCompare), Keywords: []string{"compare", "versus", " vs ", "against"}},
}

var analyzeKeywords = []string{"analyze", "analysis", "tell me about", "what about", "how is"}

var companyGazetteer = []CompanyEntry{
	{Aliases: []string{"apple"}, TickerSymbol: "AAPL"},
	{Aliases: []string{"microsoft"}, TickerSymbol: "MSFT"},
	{Aliases: []string{"google", "alphabet"}, TickerSymbol: "GOOGL"},
	{Aliases: []string{"amazon"}, TickerSymbol: "AMZN"},
	{Aliases: []string{"tesla"}, TickerSymbol: "TSLA"},
	{Aliases: []string{"meta", "facebook"}, TickerSymbol: "META"},
	{Aliases: []string{"nvidia"}, TickerSymbol: "NVDA"},
	{Aliases: []string{"netflix"}, TickerSymbol: "NFLX"},
	{Aliases: []string{"advanced micro devices"}, TickerSymbol: "AMD"},
	{Aliases: []string{"jpmorgan", "jp morgan"}, TickerSymbol: "JPM"},
	{Aliases: []string{"walmart"}, TickerSymbol: "WMT"},
	{Aliases: []string{"disney"}, TickerSymbol: "DIS"},
	{Aliases: []string{"coca cola", "coca-cola"}, TickerSymbol: "KO"},
	{Aliases: []string{"boeing"}, TickerSymbol: "BA"},
	{Aliases: []string{"salesforce"}, TickerSymbol: "CRM"},
	{Aliases: []string{"oracle"}, TickerSymbol: "ORCL"},
	{Aliases: []string{"paypal"}, TickerSymbol: "PYPL"},
	{Aliases: []string{"adobe"}, TickerSymbol: "ADBE"},
	{Aliases: []string{"starbucks"}, TickerSymbol: "SBUX"},
	{Aliases: []string{"nike"}, TickerSymbol: "NKE"},
}

var allowedSymbols = []string{
	"AAPL", "MSFT", "GOOGL", "GOOG", "AMZN", "TSLA", "META", "NVDA", "NFLX", "AMD",
	"INTC", "IBM", "ORCL", "CRM", "ADBE", "PYPL", "JPM", "BAC", "WMT", "DIS",
	"KO", "PEP", "BA", "NKE", "SBUX", "SPY", "QQQ", "UBER", "COIN", "PLTR",
}

// Words that let an arbitrary 1-5 letter token through the symbol gate.
var stockContextWords = []string{"analyze", "stock", "price", "company", "ticker", "symbol", "share", "investment"}

// Generic keywords that allow a stock query without a named symbol or company.
var genericStockKeywords = []string{"stock", "share", "equity", "ticker", "company", "investment"}

// Tables is a read-only snapshot of every registry used by an Interpreter.
type Tables struct {
	SystemActions  []PatternEntry `json:"system_actions"`
	Navigation     []PatternEntry `json:"navigation"`
	AnalysisTypes  []PatternEntry `json:"analysis_types"`
	QueryActions   []PatternEntry `json:"query_actions"`
	AnalyzeWords   []string       `json:"analyze_keywords"`
	Companies      []CompanyEntry `json:"companies"`
	AllowedSymbols []string       `json:"allowed_symbols"`
	ContextWords   []string       `json:"stock_context_words"`
	GenericStock   []string       `json:"generic_stock_keywords"`
}

func builtinTables() Tables {
	return Tables{
		SystemActions:  clonePatterns(systemActionPatterns),
		Navigation:     clonePatterns(navigationPatterns),
		AnalysisTypes:  clonePatterns(analysisTypePatterns),
		QueryActions:   clonePatterns(queryActionPatterns),
		AnalyzeWords:   cloneStrings(analyzeKeywords),
		Companies:      cloneCompanies(companyGazetteer),
		AllowedSymbols: cloneStrings(allowedSymbols),
		ContextWords:   cloneStrings(stockContextWords),
		GenericStock:   cloneStrings(genericStockKeywords),
	}
}

func (t Tables) clone() Tables {
	return Tables{
		SystemActions:  clonePatterns(t.SystemActions),
		Navigation:     clonePatterns(t.Navigation),
		AnalysisTypes:  clonePatterns(t.AnalysisTypes),
		QueryActions:   clonePatterns(t.QueryActions),
		AnalyzeWords:   cloneStrings(t.AnalyzeWords),
		Companies:      cloneCompanies(t.Companies),
		AllowedSymbols: cloneStrings(t.AllowedSymbols),
		ContextWords:   cloneStrings(t.ContextWords),
		GenericStock:   cloneStrings(t.GenericStock),
	}
}

func cloneStrings(in []string) []string {
	out := make([]string, len(in))
	copy(out, in)
	return out
}

func clonePatterns(in []PatternEntry) []PatternEntry {
	out := make([]PatternEntry, len(in))
	for i, p := range in {
		out[i] = PatternEntry{Tag: p.Tag, Keywords: cloneStrings(p.Keywords)}
	}
	return out
}

func cloneCompanies(in []CompanyEntry) []CompanyEntry {
	out := make([]CompanyEntry, len(in))
	for i, c := range in {
		out[i] = CompanyEntry{Aliases: cloneStrings(c.Aliases), TickerSymbol: c.TickerSymbol}
	}
	return out
}

// matchPattern returns the tag of the first entry with a keyword contained in text.
func matchPattern(text string, entries []PatternEntry) (string, bool) {
	for _, e := range entries {
		if containsAny(text, e.Keywords) {
			return e.Tag, true
		}
	}
	return "", false
}
