package service

import (
	"math"
	"strings"
	"unicode/utf16"

	"profilemax/internal/domain"
)

const (
	photoWeight        = 0.5
	bioWeight          = 0.3
	completenessWeight = 0.2

	suggestionPhotoQuality = "Add higher quality photos with better lighting"
	suggestionMorePhotos   = "Profiles with 4+ photos get 3x more matches"
	suggestionTryRewrites  = "Your bio could be more engaging — try the AI rewrites"
	suggestionLongerBio    = "A longer bio shows personality and increases responses"
)

// percentileBuckets se evalúan de mayor a menor; gana el primer umbral que se cumple.
var percentileBuckets = []struct {
	min   int
	label string
}{
	{85, "Top 5%"},
	{75, "Top 15%"},
	{65, "Top 30%"},
	{50, "Top 50%"},
}

const bottomBucket = "Bottom 50%"

// ScoreInput reúne lo necesario para el score compuesto.
// BioScore en 0 significa que el endpoint de bio no aportó score y se usa la estimación local.
type ScoreInput struct {
	Photos     []domain.PhotoResult
	BioScore   float64
	PhotoCount int
	Bio        string
}

// AggregateScore combina fotos (50%), bio (30%) y completitud (20%).
func AggregateScore(in ScoreInput) domain.CompositeScore {
	photoStrength := 0.0
	if len(in.Photos) > 0 {
		sum := 0.0
		for _, p := range in.Photos {
			sum += p.Overall
		}
		photoStrength = sum / float64(len(in.Photos)) * 10
	}
	photoStrength = clampFloat(photoStrength, 0, 100)

	// Solo 0 o NaN cuentan como score ausente; un negativo del LLM se respeta y el clamp lo deja en 0.
	bioQuality := in.BioScore
	if bioQuality == 0 || math.IsNaN(bioQuality) {
		bioQuality = float64(EstimateBioScore(in.Bio))
	}
	bioQuality = clampFloat(bioQuality, 0, 100)

	bioLen := textLength(in.Bio)
	completeness := float64(completenessScore(in.PhotoCount, bioLen))

	overall := int(math.Round(photoStrength*photoWeight + bioQuality*bioWeight + completeness*completenessWeight))
	overall = clampInt(overall, 0, 100)

	suggestions := []string{}
	if photoStrength < 70 {
		suggestions = append(suggestions, suggestionPhotoQuality)
	}
	if in.PhotoCount < 3 {
		suggestions = append(suggestions, suggestionMorePhotos)
	}
	if bioQuality < 70 {
		suggestions = append(suggestions, suggestionTryRewrites)
	}
	if bioLen < 30 {
		suggestions = append(suggestions, suggestionLongerBio)
	}

	return domain.CompositeScore{
		Overall:       overall,
		PhotoStrength: int(math.Round(photoStrength)),
		BioQuality:    int(math.Round(bioQuality)),
		Completeness:  int(math.Round(completeness)),
		Percentile:    PercentileBucket(overall),
		Suggestions:   suggestions,
	}
}

func completenessScore(photoCount, bioLen int) int {
	score := 0
	if photoCount > 0 {
		score += 40
	}
	switch {
	case bioLen > 50:
		score += 40
	case bioLen > 0:
		score += 20
	}
	if photoCount >= 3 {
		score += 20
	}
	return clampInt(score, 0, 100)
}

// PercentileBucket traduce el score a la etiqueta de percentil aproximado.
func PercentileBucket(overall int) string {
	for _, b := range percentileBuckets {
		if overall >= b.min {
			return b.label
		}
	}
	return bottomBucket
}

// EstimateBioScore es la heurística local cuando no hay score del LLM.
func EstimateBioScore(bio string) int {
	if bio == "" {
		return 0
	}
	length := textLength(bio)
	score := 40
	if length > 100 {
		score += 20
	}
	if length > 200 {
		score += 10
	}
	lower := strings.ToLower(bio)
	if !strings.Contains(lower, "i like") && !strings.Contains(lower, "i love") {
		score += 10
	}
	if strings.Contains(bio, "?") {
		score += 10
	}
	if spaceFieldCount(bio) > 20 {
		score += 10
	}
	return clampInt(score, 0, 100)
}

// textLength cuenta unidades UTF-16, que es lo que el formulario muestra como caracteres.
func textLength(s string) int {
	return len(utf16.Encode([]rune(s)))
}

// spaceFieldCount cuenta campos separados por un espacio simple, incluyendo los vacíos.
func spaceFieldCount(s string) int {
	return strings.Count(s, " ") + 1
}

func clampFloat(v, lo, hi float64) float64 {
	if math.IsNaN(v) {
		return lo
	}
	return math.Max(lo, math.Min(hi, v))
}
