// Package model defines the core domain models used throughout the application.
package model

// SenderRole identifies who produced a transcript message.
type SenderRole string

// Sender role constants.
const (
	SenderClient    SenderRole = "client"
	SenderAttendant SenderRole = "attendant"
	SenderBot       SenderRole = "bot"
)

// Message is a single transcript line, oldest first. The transcript
// collaborator strips bot/system noise before messages reach the classifier.
type Message struct {
	Sender SenderRole `json:"sender"`
	Text   string     `json:"text"`
}
