package entities

import "time"

// Speaker identifies who produced a transcript utterance
type Speaker string

const (
	SpeakerAgent Speaker = "agent"
	SpeakerUser  Speaker = "user"
)

// TranscriptEntry is one speaker-tagged utterance in a live call. Entries are
// call-scoped and ephemeral; they have no durable identity once the call ends.
type TranscriptEntry struct {
	Speaker   Speaker   `json:"speaker"`
	Text      string    `json:"text"`
	Timestamp time.Time `json:"timestamp"`
}
