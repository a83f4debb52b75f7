// Package thread stores the per-script conversation between a writer and
// the coach.
package thread

import "time"

// Role is the author of a message.
type Role string

const (
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// DefaultTranscriptLimit is how many messages a transcript view returns.
const DefaultTranscriptLimit = 50

// Thread is the conversation one user has about one script.
type Thread struct {
	ID        string    `json:"id"`
	ScriptID  string    `json:"script_id"`
	UserID    string    `json:"user_id"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// Message is one stored turn.
type Message struct {
	ID        string    `json:"id"`
	ThreadID  string    `json:"thread_id"`
	Role      Role      `json:"role"`
	Content   string    `json:"content"`
	CreatedAt time.Time `json:"created_at"`
}
