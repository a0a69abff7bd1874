package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profilemax/internal/domain"
	"profilemax/internal/service"
)

type messageAnalyzer interface {
	AnalyzeMessage(ctx context.Context, req service.MessageRequest) (service.Result[domain.ConversationAnalysis], error)
}

// MessageHandler expone el análisis de conversaciones.
type MessageHandler struct {
	logger         *zap.Logger
	messageServ    messageAnalyzer
	exposeDegraded bool
}

func NewMessageHandler(logger *zap.Logger, messageServ messageAnalyzer, exposeDegraded bool) *MessageHandler {
	return &MessageHandler{
		logger:         logger,
		messageServ:    messageServ,
		exposeDegraded: exposeDegraded,
	}
}

// AnalyzeMessage maneja POST /api/analyze-message.
func (h *MessageHandler) AnalyzeMessage(c *gin.Context) {
	var req struct {
		Conversation string `json:"conversation"`
	}
	if !bindJSON(c, h.logger, &req) {
		return
	}

	res, err := h.messageServ.AnalyzeMessage(c.Request.Context(), service.MessageRequest{
		Conversation: req.Conversation,
		ClientKey:    c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrConversationRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Conversation is required"})
			return
		}
		h.logger.Error("analyze message failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze message"})
		return
	}

	writeSource(c, h.exposeDegraded, res.Degraded, res.Reason)
	c.Data(http.StatusOK, "application/json", res.Raw)
}
