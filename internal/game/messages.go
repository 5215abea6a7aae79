package game

import "strings"

// MsgPriority controls how an activity line is colored.
type MsgPriority uint8

const (
	MsgInfo    MsgPriority = iota // neutral
	MsgScene                      // scene change, drawn in the scene accent
	MsgSuccess                    // transmission delivered
	MsgWarning                    // validation or transmission failure
)

// Message is a single entry in the activity log.
type Message struct {
	Text     string
	Priority MsgPriority
}

// MessageLog is a bounded FIFO of messages.
type MessageLog struct {
	Messages []Message
	maxSize  int
	width    int
}

// NewMessageLog creates a log that keeps the most recent maxSize lines,
// wrapping long text at width runes (0 disables wrapping).
func NewMessageLog(maxSize, width int) *MessageLog {
	return &MessageLog{
		Messages: make([]Message, 0, maxSize),
		maxSize:  maxSize,
		width:    width,
	}
}

// Add appends a message, evicting the oldest lines when full.
func (l *MessageLog) Add(text string, priority MsgPriority) {
	for _, line := range wrapText(text, l.width) {
		msg := Message{Text: line, Priority: priority}
		if len(l.Messages) >= l.maxSize {
			copy(l.Messages, l.Messages[1:])
			l.Messages[len(l.Messages)-1] = msg
		} else {
			l.Messages = append(l.Messages, msg)
		}
	}
}

// wrapText splits text into lines no longer than maxWidth runes. Words
// longer than maxWidth get a line of their own.
func wrapText(s string, maxWidth int) []string {
	if maxWidth <= 0 || len([]rune(s)) <= maxWidth {
		return []string{s}
	}
	words := strings.Fields(s)
	if len(words) == 0 {
		return []string{""}
	}
	var result []string
	line := words[0]
	for _, w := range words[1:] {
		if len([]rune(line))+1+len([]rune(w)) > maxWidth {
			result = append(result, line)
			line = w
		} else {
			line += " " + w
		}
	}
	return append(result, line)
}

// Recent returns the last n messages (or fewer if the log is shorter).
// A negative n returns none.
func (l *MessageLog) Recent(n int) []Message {
	n = max(n, 0)
	if n > len(l.Messages) {
		n = len(l.Messages)
	}
	return l.Messages[len(l.Messages)-n:]
}

// Last returns the newest message and whether the log is non-empty.
func (l *MessageLog) Last() (Message, bool) {
	if len(l.Messages) == 0 {
		return Message{}, false
	}
	return l.Messages[len(l.Messages)-1], true
}
