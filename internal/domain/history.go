package domain

import "math"

const (
	// HistoryStorageKey es la clave bajo la que se persiste el historial local.
	HistoryStorageKey = "profilemax_history"
	// HistoryLimit es la cantidad máxima de entradas que se conservan.
	HistoryLimit = 20
)

type HistoryEntry struct {
	Timestamp  int64  `json:"timestamp"` // unix ms
	Score      int    `json:"score"`
	Platform   string `json:"platform"`
	BioLength  int    `json:"bioLength"`
	PhotoCount int    `json:"photoCount"`
}

// HistoryStats son las cifras del dashboard de progreso.
type HistoryStats struct {
	Sessions    int  `json:"sessions"`
	Latest      *int `json:"latest"`
	Best        *int `json:"best"`
	Average     *int `json:"average"`
	Improvement *int `json:"improvement"` // solo con 2+ sesiones
}

// ComputeHistoryStats espera las entradas ordenadas de la más reciente a la más vieja.
func ComputeHistoryStats(entries []HistoryEntry) HistoryStats {
	stats := HistoryStats{Sessions: len(entries)}
	if len(entries) == 0 {
		return stats
	}

	latest := entries[0].Score
	best := entries[0].Score
	sum := 0
	for _, e := range entries {
		if e.Score > best {
			best = e.Score
		}
		sum += e.Score
	}
	avg := int(math.Round(float64(sum) / float64(len(entries))))

	stats.Latest = &latest
	stats.Best = &best
	stats.Average = &avg

	if len(entries) >= 2 {
		delta := entries[0].Score - entries[len(entries)-1].Score
		stats.Improvement = &delta
	}
	return stats
}
