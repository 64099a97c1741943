package command

import "fmt"

var actionPhrases = map[SystemAction]string{
	ActionClearChat:    "Clear the chat",
	ActionRepeatLast:   "Repeat the last response",
	ActionStopSpeaking: "Stop speaking",
	ActionHelp:         "Show me what voice commands I can use",
}

const defaultTarget = "the stock"

// ToMessage renders the canonical chat instruction for a command. Unknown
// commands, and actions without a phrase, fall back to the original text.
func ToMessage(c Command) string {
	switch cmd := c.(type) {
	case ActionCommand:
		if phrase, ok := actionPhrases[cmd.Action]; ok {
			return phrase
		}
		return cmd.OriginalText
	case NavigationCommand:
		return fmt.Sprintf("Navigate to %s", cmd.Destination)
	case StockQueryCommand:
		return stockQueryMessage(cmd.Query)
	case UnknownCommand:
		return cmd.OriginalText
	default:
		return ""
	}
}

func stockQueryMessage(q StockQuery) string {
	target := q.Symbol
	if target == "" {
		target = q.Company
	}
	if target == "" {
		target = defaultTarget
	}

	switch q.Action {
	case QueryPrice:
		return fmt.Sprintf("What's the current price of %s?", target)
	case QueryNews:
		return fmt.Sprintf("Show me recent news for %s", target)
	case QueryCompare:
		return fmt.Sprintf("Compare %s with similar stocks", target)
	}
	if q.AnalysisType != "" {
		return fmt.Sprintf("Analyze %s %s", q.AnalysisType, target)
	}
	return fmt.Sprintf("Analyze %s", target)
}
