package http

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"profilemax/internal/service"
)

// BioHandler expone la reescritura de bio.
type BioHandler struct {
	logger         *zap.Logger
	bioServ        service.BioOptimizer
	exposeDegraded bool
}

// NewBioHandler crea una instancia de BioHandler con dependencias necesarias.
func NewBioHandler(logger *zap.Logger, bioServ service.BioOptimizer, exposeDegraded bool) *BioHandler {
	return &BioHandler{
		logger:         logger,
		bioServ:        bioServ,
		exposeDegraded: exposeDegraded,
	}
}

// OptimizeBio maneja POST /api/optimize-bio.
func (h *BioHandler) OptimizeBio(c *gin.Context) {
	var req struct {
		Bio      string `json:"bio"`
		Platform string `json:"platform"`
		Prompts  string `json:"prompts"`
	}
	if !bindJSON(c, h.logger, &req) {
		return
	}

	res, err := h.bioServ.OptimizeBio(c.Request.Context(), service.BioRequest{
		Bio:       req.Bio,
		Platform:  req.Platform,
		Prompts:   req.Prompts,
		ClientKey: c.ClientIP(),
	})
	if err != nil {
		if errors.Is(err, service.ErrBioRequired) {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Bio is required"})
			return
		}
		h.logger.Error("optimize bio failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "could not optimize bio"})
		return
	}

	writeSource(c, h.exposeDegraded, res.Degraded, res.Reason)
	c.Data(http.StatusOK, "application/json", res.Raw)
}
