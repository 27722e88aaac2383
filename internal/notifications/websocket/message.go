package websocket

import "time"

// MessageType identifies the payload carried by a Message
type MessageType string

const (
	MessageTypeOnboardingStatus MessageType = "onboarding_status"
	MessageTypeAlert            MessageType = "alert"
	MessageTypePresence         MessageType = "presence"
	MessageTypeStatus           MessageType = "status"
)

// Message is the envelope pushed to editor sessions
type Message struct {
	Type          MessageType `json:"type"`
	Data          interface{} `json:"data"`
	Timestamp     time.Time   `json:"timestamp"`
	Target        string      `json:"target,omitempty"`
	ApplicationID string      `json:"application_id,omitempty"`
}
