package command

import "strings"

// Interpreter classifies utterances against one immutable table set.
// It holds no mutable state and is safe for concurrent use.
type Interpreter struct {
	tables  Tables
	allowed map[string]struct{}
}

type Option func(*Tables)

// WithCompanies appends gazetteer entries after the built-in ones and allows
// their tickers as bare symbols. Aliases are normalized; entries without a
// ticker or without aliases are dropped.
func WithCompanies(entries ...CompanyEntry) Option {
	return func(t *Tables) {
		for _, e := range entries {
			ticker := strings.ToUpper(strings.TrimSpace(e.TickerSymbol))
			if ticker == "" {
				continue
			}
			aliases := make([]string, 0, len(e.Aliases))
			for _, a := range e.Aliases {
				if a = Normalize(a); a != "" {
					aliases = append(aliases, a)
				}
			}
			if len(aliases) == 0 {
				continue
			}
			t.Companies = append(t.Companies, CompanyEntry{Aliases: aliases, TickerSymbol: ticker})
			t.AllowedSymbols = append(t.AllowedSymbols, ticker)
		}
	}
}

func New(opts ...Option) *Interpreter {
	tables := builtinTables()
	for _, opt := range opts {
		opt(&tables)
	}
	allowed := make(map[string]struct{}, len(tables.AllowedSymbols))
	for _, s := range tables.AllowedSymbols {
		allowed[s] = struct{}{}
	}
	return &Interpreter{tables: tables, allowed: allowed}
}

var defaultInterpreter = New()

// Default returns the interpreter built from the built-in tables.
func Default() *Interpreter {
	return defaultInterpreter
}

// Tables returns a copy of the interpreter's registries.
func (in *Interpreter) Tables() Tables {
	return in.tables.clone()
}

// Classify maps an utterance to exactly one Command. System actions win over
// navigation, navigation over stock queries; anything else is unknown.
// confidence is echoed as given.
func (in *Interpreter) Classify(text string, confidence float64) Command {
	t := Normalize(text)

	if tag, ok := matchPattern(t, in.tables.SystemActions); ok {
		return ActionCommand{
			Meta:   Meta{Intent: tag, Confidence: confidence, OriginalText: text},
			Action: SystemAction(tag),
		}
	}

	if tag, ok := matchPattern(t, in.tables.Navigation); ok {
		return NavigationCommand{
			Meta:        Meta{Intent: intentNavigate, Confidence: confidence, OriginalText: text},
			Destination: Destination(tag),
		}
	}

	if q, ok := in.detectStockQuery(t); ok {
		return StockQueryCommand{
			Meta:  Meta{Intent: intentStockQuery, Confidence: confidence, OriginalText: text},
			Query: q,
		}
	}

	return UnknownCommand{
		Meta: Meta{Intent: intentUnknown, Confidence: confidence, OriginalText: text},
	}
}

func (in *Interpreter) detectStockQuery(t string) (StockQuery, bool) {
	var q StockQuery
	if symbol, ok := in.ExtractSymbol(t); ok {
		q.Symbol = symbol
	}
	// A company alias always replaces a raw symbol match.
	if company, ok := in.ExtractCompany(t); ok {
		q.Symbol = company.TickerSymbol
		q.Company = company.Alias
	}
	if at, ok := in.ExtractAnalysisType(t); ok {
		q.AnalysisType = at
	}
	if action, ok := in.ExtractAction(t); ok {
		q.Action = action
	}

	if q.Symbol != "" || q.Company != "" {
		return q, true
	}
	if containsAny(t, in.tables.GenericStock) && (q.AnalysisType != "" || q.Action != "") {
		return q, true
	}
	return StockQuery{}, false
}

func Classify(text string, confidence float64) Command {
	return defaultInterpreter.Classify(text, confidence)
}
