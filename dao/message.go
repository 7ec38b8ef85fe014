package dao

import (
	"gorm.io/gorm"

	"github.com/MyALF-Z/AI-Agent/models"
)

// MessageDAO handles message-related database operations
type MessageDAO struct {
	db *gorm.DB
}

func NewMessageDAO(db *gorm.DB) *MessageDAO {
	return &MessageDAO{db: db}
}

// Create appends a message to a conversation. Messages are immutable once
// written.
func (d *MessageDAO) Create(conversationID, userID, role, content string) (*models.Message, error) {
	msg := &models.Message{
		ConversationID: conversationID,
		UserID:         userID,
		Role:           role,
		Content:        content,
	}
	if err := d.db.Create(msg).Error; err != nil {
		return nil, err
	}
	return msg, nil
}

// ListByConversation retrieves the non-deleted messages of a conversation in
// insertion order. The id tiebreak keeps ordering stable when timestamps
// collide within clock resolution.
func (d *MessageDAO) ListByConversation(conversationID, userID string) ([]models.Message, error) {
	var messages []models.Message
	err := d.db.
		Where("conversation_id = ? AND user_id = ? AND deleted = ?", conversationID, userID, false).
		Order("created_at ASC, id ASC").
		Find(&messages).Error
	if err != nil {
		return nil, err
	}
	return messages, nil
}

// SoftDeleteByConversation flags every message of a conversation deleted in
// one bulk update. Used when the owning conversation is deleted.
func (d *MessageDAO) SoftDeleteByConversation(conversationID, userID string) error {
	return d.db.Model(&models.Message{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Update("deleted", true).Error
}
