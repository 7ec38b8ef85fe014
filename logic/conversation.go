package logic

import (
	"log/slog"

	"github.com/google/uuid"

	"github.com/MyALF-Z/AI-Agent/dao"
	"github.com/MyALF-Z/AI-Agent/models"
)

// ConversationLogic handles conversation registry operations
type ConversationLogic struct {
	convoDAO   *dao.ConversationDAO
	messageDAO *dao.MessageDAO
	logger     *slog.Logger
}

func NewConversationLogic(convoDAO *dao.ConversationDAO, messageDAO *dao.MessageDAO, logger *slog.Logger) *ConversationLogic {
	return &ConversationLogic{
		convoDAO:   convoDAO,
		messageDAO: messageDAO,
		logger:     logger,
	}
}

// Create registers a conversation. The client normally supplies the id; a
// uuid is generated when it is absent. Creating an id that already exists
// returns the existing conversation.
func (l *ConversationLogic) Create(conversationID, name, userID string) (*models.Conversation, error) {
	if userID == "" {
		return nil, models.ErrInvalidRequest
	}
	if conversationID == "" {
		conversationID = uuid.NewString()
	}
	if name == "" {
		name = DefaultConversationName
	}
	return l.convoDAO.Ensure(conversationID, userID, name)
}

// List retrieves a user's conversations, most recently updated first.
func (l *ConversationLogic) List(userID string) ([]models.Conversation, error) {
	if userID == "" {
		return nil, models.ErrInvalidRequest
	}
	return l.convoDAO.List(userID)
}

// Rename sets the user override name and returns the refreshed list.
func (l *ConversationLogic) Rename(conversationID, userID, customName string) ([]models.Conversation, error) {
	if conversationID == "" || userID == "" || customName == "" {
		return nil, models.ErrInvalidRequest
	}
	if err := l.convoDAO.Rename(conversationID, userID, customName); err != nil {
		return nil, err
	}
	l.logger.Info("conversation renamed", "conversation", conversationID)
	return l.convoDAO.List(userID)
}

// Delete soft-deletes a conversation, cascades the flag to its messages and
// returns the refreshed list. Rows are retained.
func (l *ConversationLogic) Delete(conversationID, userID string) ([]models.Conversation, error) {
	if conversationID == "" || userID == "" {
		return nil, models.ErrInvalidRequest
	}
	if err := l.convoDAO.SoftDelete(conversationID, userID); err != nil {
		return nil, err
	}
	if err := l.messageDAO.SoftDeleteByConversation(conversationID, userID); err != nil {
		return nil, err
	}
	l.logger.Info("conversation deleted", "conversation", conversationID)
	return l.convoDAO.List(userID)
}

// Messages retrieves the non-deleted transcript of a conversation in
// insertion order.
func (l *ConversationLogic) Messages(conversationID, userID string) ([]models.Message, error) {
	if conversationID == "" || userID == "" {
		return nil, models.ErrInvalidRequest
	}
	return l.messageDAO.ListByConversation(conversationID, userID)
}
