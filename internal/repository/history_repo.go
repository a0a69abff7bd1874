package repository

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"profilemax/internal/domain"
)

// HistoryRepository es el historial local de análisis, de más reciente a más viejo.
type HistoryRepository interface {
	List(ctx context.Context) ([]domain.HistoryEntry, error)
	Append(ctx context.Context, entry domain.HistoryEntry) ([]domain.HistoryEntry, error)
	Clear(ctx context.Context) error
}

// FileHistoryRepository persiste el historial en un documento JSON {"profilemax_history": [...]}.
// Se carga una vez al abrir y se reescribe completo después de cada cambio.
type FileHistoryRepository struct {
	mu      sync.Mutex
	path    string
	limit   int
	entries []domain.HistoryEntry
}

type historyDocument map[string][]domain.HistoryEntry

// OpenFileHistoryRepository carga el historial desde path. Un archivo inexistente o ilegible
// se toma como historial vacío y se sobrescribe en el próximo Append.
func OpenFileHistoryRepository(path string) (*FileHistoryRepository, error) {
	if path == "" {
		return nil, errors.New("history path is required")
	}
	r := &FileHistoryRepository{path: path, limit: domain.HistoryLimit}

	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return r, nil
		}
		return nil, fmt.Errorf("read history: %w", err)
	}

	var doc historyDocument
	if err := json.Unmarshal(data, &doc); err == nil {
		r.entries = truncateHistory(doc[domain.HistoryStorageKey], r.limit)
	}
	return r, nil
}

func (r *FileHistoryRepository) List(ctx context.Context) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]domain.HistoryEntry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}

// Append agrega la entrada al frente, recorta a las 20 más recientes y persiste.
func (r *FileHistoryRepository) Append(ctx context.Context, entry domain.HistoryEntry) ([]domain.HistoryEntry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	next := make([]domain.HistoryEntry, 0, len(r.entries)+1)
	next = append(next, entry)
	next = append(next, r.entries...)
	next = truncateHistory(next, r.limit)

	if err := r.persist(next); err != nil {
		return nil, err
	}
	r.entries = next

	out := make([]domain.HistoryEntry, len(next))
	copy(out, next)
	return out, nil
}

// Clear borra el historial y el archivo.
func (r *FileHistoryRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return fmt.Errorf("remove history: %w", err)
	}
	r.entries = nil
	return nil
}

// Stats calcula las cifras del dashboard sobre el historial actual.
func (r *FileHistoryRepository) Stats(ctx context.Context) (domain.HistoryStats, error) {
	entries, err := r.List(ctx)
	if err != nil {
		return domain.HistoryStats{}, err
	}
	return domain.ComputeHistoryStats(entries), nil
}

func (r *FileHistoryRepository) persist(entries []domain.HistoryEntry) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	data, err := json.Marshal(historyDocument{domain.HistoryStorageKey: entries})
	if err != nil {
		return fmt.Errorf("marshal history: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(r.path), ".profilemax-history-*")
	if err != nil {
		return fmt.Errorf("create temp history: %w", err)
	}
	tmpName := tmp.Name()
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("write history: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close history: %w", err)
	}
	if err := os.Rename(tmpName, r.path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("replace history: %w", err)
	}
	return nil
}

func truncateHistory(entries []domain.HistoryEntry, limit int) []domain.HistoryEntry {
	if limit > 0 && len(entries) > limit {
		return entries[:limit]
	}
	return entries
}
