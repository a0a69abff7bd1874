package service

import (
	"math"
	"unicode/utf16"

	"profilemax/internal/domain"
)

const (
	lcgMultiplier = 9301
	lcgIncrement  = 49297
	lcgModulus    = 233280
	indexStride   = 37
)

// photoCategory define el rango y el offset del pseudo-random de cada sub-score.
type photoCategory struct {
	offset     int64
	min, max   int
	suggestion string
}

var (
	lightingCategory   = photoCategory{offset: 1, min: 5, max: 10, suggestion: "Improve lighting — shoot near a window or outdoors"}
	clarityCategory    = photoCategory{offset: 2, min: 5, max: 10, suggestion: "Use a higher resolution or steady the camera"}
	expressionCategory = photoCategory{offset: 3, min: 4, max: 10, suggestion: "A genuine smile increases match rates by 14%"}
	styleCategory      = photoCategory{offset: 4, min: 4, max: 10, suggestion: "Consider a cleaner background or better outfit"}
)

const (
	tagPrimary      = "Best choice for first photo"
	tagBelowAverage = "Below average quality"

	suggestionThreshold = 7
)

// photoSeed suma las unidades UTF-16 del nombre más 37 por la posición.
func photoSeed(name string, index int) int64 {
	seed := int64(index) * indexStride
	for _, u := range utf16.Encode([]rune(name)) {
		seed += int64(u)
	}
	return seed
}

func (c photoCategory) score(seed int64) int {
	// El módulo se toma sobre un valor no negativo para que la fracción quede en [0,1).
	m := (seed*lcgMultiplier + lcgIncrement + c.offset) % lcgModulus
	if m < 0 {
		m += lcgModulus
	}
	r := float64(m) / lcgModulus
	v := int(math.Round(float64(c.min) + r*float64(c.max-c.min)))
	return clampInt(v, c.min, c.max)
}

// SimulatePhoto genera sub-scores deterministas para una foto a partir de su nombre y posición.
// No inspecciona la imagen.
func SimulatePhoto(name string, index int) domain.PhotoResult {
	seed := photoSeed(name, index)
	scores := domain.PhotoScores{
		Lighting:   lightingCategory.score(seed),
		Clarity:    clarityCategory.score(seed),
		Expression: expressionCategory.score(seed),
		Style:      styleCategory.score(seed),
	}

	avg := float64(scores.Lighting+scores.Clarity+scores.Expression+scores.Style) / 4
	overall := math.Round(avg*10) / 10

	result := domain.PhotoResult{
		Index:       index,
		Name:        name,
		Scores:      scores,
		Overall:     overall,
		Tags:        []string{},
		Suggestions: []string{},
	}

	switch {
	case index == 0 && avg >= 7:
		result.Recommendation = domain.RecommendationPrimary
		result.Tags = append(result.Tags, tagPrimary)
	case avg < 6:
		result.Recommendation = domain.RecommendationRemove
		result.Tags = append(result.Tags, tagBelowAverage)
	default:
		result.Recommendation = domain.RecommendationKeep
	}

	checks := []struct {
		value int
		cat   photoCategory
	}{
		{scores.Lighting, lightingCategory},
		{scores.Clarity, clarityCategory},
		{scores.Expression, expressionCategory},
		{scores.Style, styleCategory},
	}
	for _, ch := range checks {
		if ch.value < suggestionThreshold {
			result.Suggestions = append(result.Suggestions, ch.cat.suggestion)
		}
	}

	return result
}

// SimulatePhotos evalúa las fotos en orden, hasta domain.MaxPhotos.
func SimulatePhotos(names []string) []domain.PhotoResult {
	if len(names) > domain.MaxPhotos {
		names = names[:domain.MaxPhotos]
	}
	results := make([]domain.PhotoResult, 0, len(names))
	for i, name := range names {
		results = append(results, SimulatePhoto(name, i))
	}
	return results
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
