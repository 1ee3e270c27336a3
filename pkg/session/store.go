package session

import (
	"context"
	"time"

	"github.com/google/uuid"
)

// Message is one persisted conversation turn.
type Message struct {
	ID        uuid.UUID `json:"id"`
	Role      string    `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}

func NewMessage(role, content string) Message {
	return Message{
		ID:        uuid.New(),
		Role:      role,
		Content:   content,
		CreatedAt: time.Now().UTC(),
	}
}

// Store persists per-session conversation transcripts. A nil Store means
// persistence is disabled and every request starts with empty history.
type Store interface {
	// Load returns the transcript for a session, oldest first. A session
	// that has never been seen yields an empty transcript, not an error.
	Load(ctx context.Context, sessionID string) ([]Message, error)

	// Append adds turns to the transcript and persists it.
	Append(ctx context.Context, sessionID string, turns ...Message) error
}

// Window bounds a transcript to the most recent size turns, truncating
// the oldest when exceeded.
func Window(messages []Message, size int) []Message {
	if size <= 0 || len(messages) <= size {
		return messages
	}
	return messages[len(messages)-size:]
}
