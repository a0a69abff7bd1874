package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"profilemax/internal/domain"
	"profilemax/internal/metrics"
)

// ProfileInput es lo que el usuario envía para analizar su perfil.
type ProfileInput struct {
	Platform  string
	Bio       string
	Prompts   string
	Photos    []string // nombres de archivo, en orden
	ClientKey string
}

// ProfileAnalyzer orquesta el flujo de análisis: bio vía BioOptimizer, fotos simuladas y score compuesto.
type ProfileAnalyzer struct {
	bio     BioOptimizer
	metrics *metrics.Recorder
	logger  *zap.Logger
	now     func() time.Time
}

func NewProfileAnalyzer(bio BioOptimizer, recorder *metrics.Recorder, logger *zap.Logger) *ProfileAnalyzer {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ProfileAnalyzer{
		bio:     bio,
		metrics: recorder,
		logger:  logger,
		now:     time.Now,
	}
}

// Analyze corre una llamada de bio (si hay bio) y luego el cálculo local.
func (a *ProfileAnalyzer) Analyze(ctx context.Context, in ProfileInput) (domain.ProfileAnalysis, error) {
	hasBio := strings.TrimSpace(in.Bio) != ""
	if !hasBio && len(in.Photos) == 0 {
		return domain.ProfileAnalysis{}, ErrEmptyProfile
	}

	platform := strings.TrimSpace(in.Platform)
	if platform == "" {
		platform = domain.DefaultPlatform
	}

	analysis := domain.ProfileAnalysis{
		Platform:  platform,
		BioLength: textLength(in.Bio),
	}

	var bioScore float64
	if hasBio {
		res, err := a.bio.OptimizeBio(ctx, BioRequest{
			Bio:       in.Bio,
			Platform:  platform,
			Prompts:   in.Prompts,
			ClientKey: in.ClientKey,
		})
		if err != nil {
			return domain.ProfileAnalysis{}, fmt.Errorf("optimize bio: %w", err)
		}
		analysis.BioResults = res.Raw
		analysis.Degraded = res.Degraded
		analysis.Reason = res.Reason
		bioScore = res.Value.BioScore
	}

	analysis.PhotoResults = SimulatePhotos(in.Photos)
	analysis.Score = AggregateScore(ScoreInput{
		Photos:     analysis.PhotoResults,
		BioScore:   bioScore,
		PhotoCount: len(analysis.PhotoResults),
		Bio:        in.Bio,
	})
	analysis.Timestamp = a.now().UnixMilli()

	recommendations := make([]string, 0, len(analysis.PhotoResults))
	for _, p := range analysis.PhotoResults {
		recommendations = append(recommendations, p.Recommendation)
	}
	a.metrics.ObserveProfile(analysis.Score.Overall, recommendations)

	a.logger.Info("profile analyzed",
		zap.String("platform", platform),
		zap.Int("photos", len(analysis.PhotoResults)),
		zap.Int("bio_length", analysis.BioLength),
		zap.Int("overall", analysis.Score.Overall),
		zap.String("percentile", analysis.Score.Percentile),
		zap.Bool("degraded", analysis.Degraded),
		zap.String("reason", analysis.Reason),
	)
	return analysis, nil
}
