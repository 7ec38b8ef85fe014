package controller

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/MyALF-Z/AI-Agent/logic"
)

// ChatController handles the streaming chat endpoint
type ChatController struct {
	turnLogic *logic.TurnLogic
	logger    *slog.Logger
}

func NewChatController(turnLogic *logic.TurnLogic, logger *slog.Logger) *ChatController {
	return &ChatController{turnLogic: turnLogic, logger: logger}
}

// Chat handles POST /api/chat. The response body is a live event stream of
// delta frames. Headers are committed lazily on the first fragment so that
// failures before streaming begins still produce a JSON error status.
func (c *ChatController) Chat(ctx *gin.Context) {
	type Request struct {
		ConversationID string `json:"conversationId" binding:"required"`
		Message        string `json:"message" binding:"required"`
		UserID         string `json:"userId" binding:"required"`
	}
	var req Request
	if err := ctx.ShouldBindJSON(&req); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	c.logger.Info("chat turn received", "conversation", req.ConversationID, "user", req.UserID)

	started := false
	startStream := func() {
		ctx.Header("Content-Type", "text/event-stream")
		ctx.Header("Cache-Control", "no-cache")
		ctx.Header("Connection", "keep-alive")
		ctx.Writer.WriteHeader(http.StatusOK)
		started = true
	}
	emit := func(delta string) error {
		// Stop relaying as soon as the caller is gone.
		select {
		case <-ctx.Request.Context().Done():
			return ctx.Request.Context().Err()
		default:
		}

		if !started {
			startStream()
		}

		payload, err := json.Marshal(gin.H{"delta": delta})
		if err != nil {
			return err
		}
		if _, err := fmt.Fprintf(ctx.Writer, "data: %s\n\n", payload); err != nil {
			return err
		}
		ctx.Writer.Flush()
		return nil
	}

	if _, err := c.turnLogic.Run(ctx.Request.Context(), req.ConversationID, req.UserID, req.Message, emit); err != nil {
		if started {
			// The stream has already committed to 200; nothing left to
			// send but the close.
			c.logger.Warn("chat turn failed mid-stream", "error", err, "conversation", req.ConversationID)
			return
		}
		c.logger.Error("chat turn failed", "error", err, "conversation", req.ConversationID)
		respondError(ctx, err)
		return
	}

	// A turn whose generation produced no fragments still answers with the
	// stream shape, just with an empty body.
	if !started {
		startStream()
		ctx.Writer.Flush()
	}
}
