package controller

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MyALF-Z/AI-Agent/logic"
)

// ConversationController handles conversation registry requests
type ConversationController struct {
	convoLogic *logic.ConversationLogic
}

func NewConversationController(convoLogic *logic.ConversationLogic) *ConversationController {
	return &ConversationController{convoLogic: convoLogic}
}

// List handles GET /api/conversations
func (c *ConversationController) List(ctx *gin.Context) {
	userID := ctx.Query("userId")
	if userID == "" {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "userId is required"})
		return
	}

	conversations, err := c.convoLogic.List(userID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, conversations)
}

// Create handles POST /api/conversations
func (c *ConversationController) Create(ctx *gin.Context) {
	type Request struct {
		ConversationID string `json:"conversationId"`
		Name           string `json:"name"`
		UserID         string `json:"userId" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	convo, err := c.convoLogic.Create(req.ConversationID, req.Name, req.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, convo)
}

// Rename handles PUT /api/conversations and returns the refreshed list
func (c *ConversationController) Rename(ctx *gin.Context) {
	type Request struct {
		ConversationID string `json:"conversationId" binding:"required"`
		CustomName     string `json:"customName" binding:"required"`
		UserID         string `json:"userId" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversations, err := c.convoLogic.Rename(req.ConversationID, req.UserID, req.CustomName)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, conversations)
}

// Delete handles DELETE /api/conversations, cascading the soft-delete to
// the conversation's messages, and returns the refreshed list
func (c *ConversationController) Delete(ctx *gin.Context) {
	type Request struct {
		ConversationID string `json:"conversationId" binding:"required"`
		UserID         string `json:"userId" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	conversations, err := c.convoLogic.Delete(req.ConversationID, req.UserID)
	if err != nil {
		respondError(ctx, err)
		return
	}

	ctx.JSON(http.StatusOK, conversations)
}
