// Package dialog is the contract between file operations and whatever
// presents modal dialogs to the user. The server runs headless, so the
// shipped implementation records dialogs for clients to fetch and answers
// confirmations from configuration.
package dialog

import (
	"sync"
	"time"
)

// Kind distinguishes confirmations from plain alerts
type Kind string

const (
	KindConfirm Kind = "confirm"
	KindAlert   Kind = "alert"
)

// Dialogs presents modal messages
type Dialogs interface {
	// Confirm asks a yes/no question and reports the answer
	Confirm(title, text string) bool

	// Alert shows a message with a single OK button
	Alert(title, text string)
}

// Message is one presented dialog
type Message struct {
	Kind   Kind      `json:"kind"`
	Title  string    `json:"title"`
	Text   string    `json:"text"`
	Answer *bool     `json:"answer,omitempty"`
	Time   time.Time `json:"time"`
}

// DefaultHistory bounds how many messages a Recorder keeps
const DefaultHistory = 50

// Recorder implements Dialogs by remembering what was shown and answering
// every confirmation with a fixed answer
type Recorder struct {
	mu       sync.Mutex
	answer   bool
	messages []Message
	limit    int
}

// NewRecorder creates a Recorder answering confirmations with answer
func NewRecorder(answer bool) *Recorder {
	return &Recorder{answer: answer, limit: DefaultHistory}
}

// SetAnswer changes the answer given to future confirmations
func (r *Recorder) SetAnswer(answer bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.answer = answer
}

// Confirm implements Dialogs
func (r *Recorder) Confirm(title, text string) bool {
	r.mu.Lock()
	defer r.mu.Unlock()

	answer := r.answer
	r.record(Message{Kind: KindConfirm, Title: title, Text: text, Answer: &answer})
	return answer
}

// Alert implements Dialogs
func (r *Recorder) Alert(title, text string) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.record(Message{Kind: KindAlert, Title: title, Text: text})
}

// Messages returns everything recorded, oldest first
func (r *Recorder) Messages() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	return append([]Message(nil), r.messages...)
}

// Last returns the most recent message
func (r *Recorder) Last() (Message, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if len(r.messages) == 0 {
		return Message{}, false
	}
	return r.messages[len(r.messages)-1], true
}

// Drain returns and forgets everything recorded
func (r *Recorder) Drain() []Message {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := r.messages
	r.messages = nil
	return out
}

func (r *Recorder) record(msg Message) {
	msg.Time = time.Now()
	r.messages = append(r.messages, msg)
	if len(r.messages) > r.limit {
		r.messages = append([]Message(nil), r.messages[len(r.messages)-r.limit:]...)
	}
}
