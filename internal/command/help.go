package command

const helpText = `Voice commands you can use:

Stock queries:
  - "Analyze AAPL" or "Tell me about Microsoft"
  - "What's the price of Tesla?"
  - "Show me news for Amazon"
  - "Compare Nvidia with similar stocks"
  - "Show me technical analysis for Google"
  - "What is the sentiment on Netflix stock?"

Navigation:
  - "Go to alerts"
  - "Open watchlist"
  - "Go to education"
  - "Back to chat"

Actions:
  - "Clear the chat"
  - "Repeat that"
  - "Stop speaking"
  - "Help"`

// HelpText lists example phrasings for every command type.
func HelpText() string {
	return helpText
}
