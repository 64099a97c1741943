package command

import (
	"regexp"
	"strings"
)

// Symbol patterns run against the uppercased text, in this order.
var symbolPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b([A-Z]{1,5})\b`),
	regexp.MustCompile(`\b(?:STOCK\s+)?SYMBOL\s+([A-Z]{1,5})\b`),
	regexp.MustCompile(`\bTICKER\s+([A-Z]{1,5})\b`),
}

// CompanyMatch is a gazetteer hit: the alias found in the text and its ticker.
type CompanyMatch struct {
	Alias        string
	TickerSymbol string
}

// ExtractSymbol returns the first 1-5 letter token that is either an allowed
// symbol or appears in text that mentions a stock-context word. Short common
// words pass the gate whenever a context word is present.
func (in *Interpreter) ExtractSymbol(text string) (string, bool) {
	upper := strings.ToUpper(text)
	hasContext := containsAny(strings.ToLower(text), in.tables.ContextWords)
	for _, re := range symbolPatterns {
		for _, m := range re.FindAllStringSubmatch(upper, -1) {
			candidate := m[1]
			if _, ok := in.allowed[candidate]; ok || hasContext {
				return candidate, true
			}
		}
	}
	return "", false
}

// ExtractCompany returns the first declared alias contained in text. There is
// no preference for longer or more specific aliases.
func (in *Interpreter) ExtractCompany(text string) (CompanyMatch, bool) {
	for _, entry := range in.tables.Companies {
		for _, alias := range entry.Aliases {
			if strings.Contains(text, alias) {
				return CompanyMatch{Alias: alias, TickerSymbol: entry.TickerSymbol}, true
			}
		}
	}
	return CompanyMatch{}, false
}

func (in *Interpreter) ExtractAnalysisType(text string) (AnalysisType, bool) {
	tag, ok := matchPattern(text, in.tables.AnalysisTypes)
	return AnalysisType(tag), ok
}

// ExtractAction prefers price, news and compare over the generic analyze keywords.
func (in *Interpreter) ExtractAction(text string) (QueryAction, bool) {
	if tag, ok := matchPattern(text, in.tables.QueryActions); ok {
		return QueryAction(tag), true
	}
	if containsAny(text, in.tables.AnalyzeWords) {
		return QueryAnalyze, true
	}
	return "", false
}

func ExtractSymbol(text string) (string, bool) {
	return defaultInterpreter.ExtractSymbol(text)
}

func ExtractCompany(text string) (CompanyMatch, bool) {
	return defaultInterpreter.ExtractCompany(text)
}

func ExtractAnalysisType(text string) (AnalysisType, bool) {
	return defaultInterpreter.ExtractAnalysisType(text)
}

func ExtractAction(text string) (QueryAction, bool) {
	return defaultInterpreter.ExtractAction(text)
}
