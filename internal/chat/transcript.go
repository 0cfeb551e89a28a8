// Package chat implements the viewer-side transcript for the broadcast chat
// relay. Every chatMessage event reaches every viewer; the transcript is
// where a viewer decides which messages belong to it. There is no
// authoritative server-side copy.
package chat

import (
	"strings"
	"sync"

	"github.com/SodaPop-byte/Casa-Orencia-App/internal/model"
)

// Transcript is one identity's local chat log, keyed by the counterpart's
// email. Append-only, reconstructed from bus events.
type Transcript struct {
	owner string

	mu            sync.Mutex
	conversations map[string][]model.ChatMessage
}

func NewTranscript(ownerEmail string) *Transcript {
	return &Transcript{
		owner:         strings.ToLower(ownerEmail),
		conversations: make(map[string][]model.ChatMessage),
	}
}

// Accept admits msg into the transcript iff the owner is the sender or the
// addressed recipient; everything else on the broadcast channel is discarded.
// Returns whether the message was kept.
func (t *Transcript) Accept(msg model.ChatMessage) bool {
	sender := strings.ToLower(msg.SenderEmail)
	recipient := strings.ToLower(msg.RecipientEmail)

	var counterpart string
	switch t.owner {
	case sender:
		counterpart = recipient
	case recipient:
		counterpart = sender
	default:
		return false
	}

	t.mu.Lock()
	t.conversations[counterpart] = append(t.conversations[counterpart], msg)
	t.mu.Unlock()
	return true
}

// Conversation returns the message log with one counterpart, oldest first.
func (t *Transcript) Conversation(counterpartEmail string) []model.ChatMessage {
	t.mu.Lock()
	defer t.mu.Unlock()
	msgs := t.conversations[strings.ToLower(counterpartEmail)]
	out := make([]model.ChatMessage, len(msgs))
	copy(out, msgs)
	return out
}
