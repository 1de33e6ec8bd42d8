package history

import (
	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// NopStore discards everything. Used when history is disabled.
type NopStore struct{}

func (NopStore) Save(domain.HistoryRecord) error                     { return nil }
func (NopStore) Records(int, string) ([]domain.HistoryRecord, error) { return nil, nil }
func (NopStore) Clear() error                                        { return nil }
func (NopStore) ExportJSON(dest string) error                        { return writeJSONL(dest, nil) }
func (NopStore) Path() string                                        { return "" }

// Open builds the repository selected by the config history backend.
func Open(cfg domain.Config) ports.HistoryRepository {
	switch cfg.HistoryBackend() {
	case domain.HistoryNone:
		return NopStore{}
	case domain.HistoryFile:
		return NewFileStore(cfg.HistoryJSONLPath())
	default:
		return NewSQLiteStore(cfg.HistoryDBPath(), cfg.HistoryJSONLPath())
	}
}

var _ ports.HistoryRepository = NopStore{}
