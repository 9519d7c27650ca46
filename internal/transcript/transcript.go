// Package transcript holds the session's chat log. The log is append-only
// and in-memory: nothing survives a restart.
package transcript

import "sync"

const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

type Message struct {
	Role string
	Text string
}

// Log is safe for concurrent use, though the UI only touches it from its own
// update goroutine.
type Log struct {
	mu          sync.RWMutex
	messages    []Message
	maxMessages int
}

// New returns a log keeping at most maxMessages entries; 0 keeps everything.
func New(maxMessages int) *Log {
	return &Log{maxMessages: maxMessages}
}

func (l *Log) Append(msg Message) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.messages = append(l.messages, msg)
	if l.maxMessages > 0 && len(l.messages) > l.maxMessages {
		l.messages = l.messages[len(l.messages)-l.maxMessages:]
	}
}

// All returns a copy of the log in append order.
func (l *Log) All() []Message {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]Message, len(l.messages))
	copy(out, l.messages)
	return out
}

func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.messages)
}
