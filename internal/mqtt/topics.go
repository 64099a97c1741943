package mqtt

import "fmt"

func TopicTerminalTranscripts(prefix string) string {
	return fmt.Sprintf("%s/terminal/+/transcript", prefix)
}

func TopicCommand(prefix, terminalID string) string {
	return fmt.Sprintf("%s/terminal/%s/command", prefix, terminalID)
}

func TopicNavigate(prefix, terminalID string) string {
	return fmt.Sprintf("%s/terminal/%s/navigate", prefix, terminalID)
}
