package domain

import "encoding/json"

// Plataformas soportadas por el formulario de análisis. Cualquier otro valor se acepta tal cual.
const (
	PlatformTinder  = "Tinder"
	PlatformHinge   = "Hinge"
	PlatformBumble  = "Bumble"
	PlatformOkCupid = "OkCupid"
	PlatformOther   = "Other"

	DefaultPlatform = PlatformTinder
)

var Platforms = []string{PlatformTinder, PlatformHinge, PlatformBumble, PlatformOkCupid, PlatformOther}

const (
	RecommendationPrimary = "Primary Photo"
	RecommendationKeep    = "Keep"
	RecommendationRemove  = "Remove"
)

// MaxPhotos es el límite de fotos por análisis.
const MaxPhotos = 6

type PhotoScores struct {
	Lighting   int `json:"lighting"`   // 5-10
	Clarity    int `json:"clarity"`    // 5-10
	Expression int `json:"expression"` // 4-10
	Style      int `json:"style"`      // 4-10
}

// PhotoResult es el resultado simulado para una foto subida. Inmutable una vez creado.
type PhotoResult struct {
	Index          int         `json:"index"`
	Name           string      `json:"name"`
	Scores         PhotoScores `json:"scores"`
	Overall        float64     `json:"overall"`
	Recommendation string      `json:"recommendation"`
	Tags           []string    `json:"tags"`
	Suggestions    []string    `json:"suggestions"`
}

type BioRewrites struct {
	Confident string `json:"confident"`
	Playful   string `json:"playful"`
	Warm      string `json:"warm"`
}

// BioRewrite es la respuesta del endpoint de bio: tres reescrituras, score 0-100 y una crítica.
type BioRewrite struct {
	Rewrites BioRewrites `json:"rewrites"`
	BioScore float64     `json:"bioScore"`
	Analysis string      `json:"analysis"`
}

// CompositeScore combina fotos, bio y completitud en un único score 0-100.
type CompositeScore struct {
	Overall       int      `json:"overall"`
	PhotoStrength int      `json:"photoStrength"`
	BioQuality    int      `json:"bioQuality"`
	Completeness  int      `json:"completeness"`
	Percentile    string   `json:"percentile"`
	Suggestions   []string `json:"suggestions"`
}

type ReplyOption struct {
	Style string `json:"style"`
	Text  string `json:"text"`
}

// ConversationAnalysis es la respuesta del endpoint de análisis de mensajes.
type ConversationAnalysis struct {
	Tone             string        `json:"tone"`
	ConfidenceRating string        `json:"confidenceRating"`
	InvestmentLevel  string        `json:"investmentLevel"`
	Vibe             string        `json:"vibe"`
	Improvements     []string      `json:"improvements"`
	Replies          []ReplyOption `json:"replies"`
}

// ProfileAnalysis es el resultado completo de una corrida de análisis de perfil.
// BioResults lleva el payload del endpoint de bio tal cual llegó (null si no hubo bio).
type ProfileAnalysis struct {
	Platform     string          `json:"platform"`
	PhotoResults []PhotoResult   `json:"photoResults"`
	BioResults   json.RawMessage `json:"bioResults"`
	Score        CompositeScore  `json:"score"`
	Timestamp    int64           `json:"timestamp"` // unix ms
	BioLength    int             `json:"-"`
	Degraded     bool            `json:"-"`
	Reason       string          `json:"-"`
}

// HistoryEntry resume el análisis para el historial local.
func (a ProfileAnalysis) HistoryEntry() HistoryEntry {
	return HistoryEntry{
		Timestamp:  a.Timestamp,
		Score:      a.Score.Overall,
		Platform:   a.Platform,
		BioLength:  a.BioLength,
		PhotoCount: len(a.PhotoResults),
	}
}
