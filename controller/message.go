package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MyALF-Z/AI-Agent/logic"
)

// MessageController handles transcript read requests
type MessageController struct {
	convoLogic *logic.ConversationLogic
}

func NewMessageController(convoLogic *logic.ConversationLogic) *MessageController {
	return &MessageController{convoLogic: convoLogic}
}

// GetMessages handles GET /api/messages
func (c *MessageController) GetMessages(ctx *gin.Context) {
	conversationID := ctx.Query("conversationId")
	userID := ctx.Query("userId")
	if conversationID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "conversationId is required"})
		return
	}
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	messages, err := c.convoLogic.Messages(conversationID, userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, messages)
}
