package dao

import (
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/MyALF-Z/AI-Agent/models"
)

// ConversationDAO handles conversation-related database operations
type ConversationDAO struct {
	db *gorm.DB
}

func NewConversationDAO(db *gorm.DB) *ConversationDAO {
	return &ConversationDAO{db: db}
}

// Get retrieves the non-deleted conversation with the given id for a user.
func (d *ConversationDAO) Get(conversationID, userID string) (*models.Conversation, error) {
	var convo models.Conversation
	err := d.db.
		Where("conversation_id = ? AND user_id = ? AND deleted = ?", conversationID, userID, false).
		First(&convo).Error
	if err != nil {
		return nil, err
	}
	return &convo, nil
}

// Ensure returns the existing non-deleted conversation or creates one with
// the default name. The insert is atomic: the unique index on active
// conversations turns concurrent creates for the same id into one row, and
// "already exists" is success.
func (d *ConversationDAO) Ensure(conversationID, userID, defaultName string) (*models.Conversation, error) {
	created := &models.Conversation{
		ConversationID: conversationID,
		UserID:         userID,
		Name:           defaultName,
	}
	result := d.db.Clauses(clause.OnConflict{DoNothing: true}).Create(created)
	if result.Error != nil {
		return nil, result.Error
	}
	if result.RowsAffected == 0 {
		// Another writer holds the active row; return it unchanged.
		return d.Get(conversationID, userID)
	}
	return created, nil
}

// Rename sets the user-chosen display name and refreshes updated_at.
func (d *ConversationDAO) Rename(conversationID, userID, customName string) error {
	return d.db.Model(&models.Conversation{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Updates(map[string]interface{}{
			"custom_name": customName,
			"updated_at":  time.Now(),
		}).Error
}

// SoftDelete marks a conversation deleted. Rows are retained.
func (d *ConversationDAO) SoftDelete(conversationID, userID string) error {
	return d.db.Model(&models.Conversation{}).
		Where("conversation_id = ? AND user_id = ?", conversationID, userID).
		Updates(map[string]interface{}{
			"deleted":    true,
			"updated_at": time.Now(),
		}).Error
}

// List retrieves a user's non-deleted conversations, most recently
// updated first.
func (d *ConversationDAO) List(userID string) ([]models.Conversation, error) {
	var conversations []models.Conversation
	err := d.db.
		Where("user_id = ? AND deleted = ?", userID, false).
		Order("updated_at DESC").
		Find(&conversations).Error
	if err != nil {
		return nil, err
	}
	return conversations, nil
}
