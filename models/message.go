package models

import "time"

// Message roles. Tool-result messages only exist in-flight on the way to
// the model; persisted rows are user or assistant turns.
const (
	RoleUser      = "user"
	RoleAssistant = "assistant"
	RoleTool      = "tool"
)

// Message is a single immutable entry in a conversation transcript.
// There is no update path; the only mutation is the Deleted flag.
type Message struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"id"`
	ConversationID string    `gorm:"index;not null" json:"conversationId"`
	UserID         string    `gorm:"not null" json:"userId"`
	Role           string    `gorm:"not null" json:"role"`
	Content        string    `gorm:"type:text" json:"content"`
	Deleted        bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt      time.Time `json:"createdAt"`
}
