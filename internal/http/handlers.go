package http

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profilemax/internal/service"
)

// bindJSON decodifica el body. Un body vacío cuenta como objeto vacío para que
// el handler responda con el mensaje del campo faltante.
func bindJSON(c *gin.Context, logger *zap.Logger, dst any) bool {
	if err := c.ShouldBindJSON(dst); err != nil && !errors.Is(err, io.EOF) {
		logger.Warn("invalid request body", zap.String("path", c.Request.URL.Path), zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return false
	}
	return true
}

// writeSource marca la respuesta como live o mock cuando expose está activo.
func writeSource(c *gin.Context, expose, degraded bool, reason string) {
	if !expose {
		return
	}
	if !degraded {
		c.Header(service.SourceHeader, service.SourceLive)
		return
	}
	c.Header(service.SourceHeader, service.SourceMock)
	if reason != "" {
		c.Header(service.FallbackReasonHeader, reason)
	}
}

// HealthHandler responde el estado del servicio.
type HealthHandler struct {
	mockMode bool
}

func NewHealthHandler(mockMode bool) *HealthHandler {
	return &HealthHandler{mockMode: mockMode}
}

// Health maneja GET /healthz.
func (h *HealthHandler) Health(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok", "mockMode": h.mockMode})
}
