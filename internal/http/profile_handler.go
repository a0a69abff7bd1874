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

type profileAnalyzer interface {
	Analyze(ctx context.Context, in service.ProfileInput) (domain.ProfileAnalysis, error)
}

// ProfileHandler corre el análisis completo de perfil del lado del servidor.
type ProfileHandler struct {
	logger         *zap.Logger
	analyzer       profileAnalyzer
	exposeDegraded bool
}

func NewProfileHandler(logger *zap.Logger, analyzer profileAnalyzer, exposeDegraded bool) *ProfileHandler {
	return &ProfileHandler{
		logger:         logger,
		analyzer:       analyzer,
		exposeDegraded: exposeDegraded,
	}
}

// AnalyzeProfile maneja POST /api/analyze-profile.
func (h *ProfileHandler) AnalyzeProfile(c *gin.Context) {
	var req struct {
		Platform string   `json:"platform"`
		Bio      string   `json:"bio"`
		Prompts  string   `json:"prompts"`
		Photos   []string `json:"photos"`
	}
	if !bindJSON(c, h.logger, &req) {
		return
	}

	analysis, err := h.analyzer.Analyze(c.Request.Context(), service.ProfileInput{
		Platform:  req.Platform,
		Bio:       req.Bio,
		Prompts:   req.Prompts,
		Photos:    req.Photos,
		ClientKey: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrEmptyProfile) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Please add at least a bio or some photos."})
			return
		}
		h.logger.Error("analyze profile failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not analyze profile"})
		return
	}

	writeSource(c, h.exposeDegraded, analysis.Degraded, analysis.Reason)
	c.JSON(http.StatusOK, analysis)
}
