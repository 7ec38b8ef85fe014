package models

import "time"

// Conversation represents a chat conversation owned by a single user.
// ConversationID is caller-supplied and opaque; ID is the storage surrogate.
// The partial unique index keeps at most one non-deleted row per
// (conversation_id, user_id) while letting a soft-deleted id be reused.
type Conversation struct {
	ID             uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	ConversationID string    `gorm:"uniqueIndex:udx_active_conversation,where:deleted = false;not null" json:"conversationId"`
	UserID         string    `gorm:"uniqueIndex:udx_active_conversation,where:deleted = false;not null" json:"userId"`
	Name           string    `gorm:"not null" json:"name"`
	CustomName     *string   `json:"customName"`
	Deleted        bool      `gorm:"not null;default:false" json:"deleted"`
	CreatedAt      time.Time `json:"createdAt"`
	UpdatedAt      time.Time `json:"updatedAt"`
}

// DisplayName resolves to the user override when present.
func (c *Conversation) DisplayName() string {
	if c.CustomName != nil && *c.CustomName != "" {
		return *c.CustomName
	}
	return c.Name
}
