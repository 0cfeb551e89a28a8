package model

import "time"

// ChatMessage is relayed verbatim across the bus and never persisted
// server-side. Each participant's client keeps its own transcript copy.
// SenderEmail and SenderRole are stamped by the relay from the authenticated
// session, never taken from the inbound payload.
type ChatMessage struct {
	SenderEmail    string    `json:"senderEmail"`
	SenderRole     string    `json:"senderRole"`
	RecipientEmail string    `json:"recipientEmail"`
	Text           string    `json:"text"`
	Timestamp      time.Time `json:"timestamp"`
}
