package history

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/aiagent-go/internal/domain"
	"github.com/doeshing/aiagent-go/internal/pkg/filesystem"
	"github.com/doeshing/aiagent-go/internal/ports"
)

// SQLiteStore persists history in a SQLite database. When the database
// cannot be opened every call is served by a JSONL FileStore instead.
type SQLiteStore struct {
	db       *sql.DB
	path     string
	fallback *FileStore
	mu       sync.Mutex
}

// NewSQLiteStore opens (or creates) the database at dbPath. fallbackPath is
// the JSONL file used if that fails.
func NewSQLiteStore(dbPath, fallbackPath string) *SQLiteStore {
	dbPath = filesystem.ExpandPath(dbPath)
	store := &SQLiteStore{path: dbPath, fallback: NewFileStore(fallbackPath)}
	if err := os.MkdirAll(filepath.Dir(dbPath), domain.DirectoryPermissions); err != nil {
		return store
	}
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return store
	}
	if err := initSchema(db); err != nil {
		_ = db.Close()
		return store
	}
	store.db = db
	return store
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`CREATE TABLE IF NOT EXISTS history (
		seq INTEGER PRIMARY KEY AUTOINCREMENT,
		id TEXT NOT NULL,
		ts INTEGER NOT NULL,
		kind TEXT,
		input TEXT,
		output TEXT,
		intent TEXT,
		language TEXT,
		success INTEGER,
		from_knowledge INTEGER,
		duration_ms INTEGER
	);`)
	return err
}

// Degraded reports whether the JSONL fallback is in use.
func (s *SQLiteStore) Degraded() bool {
	return s.db == nil
}

// Save inserts a new record.
func (s *SQLiteStore) Save(record domain.HistoryRecord) error {
	if s.db == nil {
		return s.fallback.Save(record)
	}
	record = normalize(record)
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO history
		(id, ts, kind, input, output, intent, language, success, from_knowledge, duration_ms)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		record.ID,
		record.Timestamp.UnixNano(),
		string(record.Kind),
		record.Input,
		record.Output,
		string(record.Intent),
		string(record.Language),
		boolToInt(record.Success),
		boolToInt(record.FromKnowledge),
		record.DurationMS,
	)
	if err != nil {
		return fmt.Errorf("insert history: %w", err)
	}
	return nil
}

// Records returns history entries newest first (limit/search optional).
func (s *SQLiteStore) Records(limit int, search string) ([]domain.HistoryRecord, error) {
	if s.db == nil {
		return s.fallback.Records(limit, search)
	}
	builder := strings.Builder{}
	builder.WriteString("SELECT id, ts, kind, input, output, intent, language, success, from_knowledge, duration_ms FROM history")
	var args []interface{}
	if search != "" {
		builder.WriteString(" WHERE input LIKE ? OR output LIKE ?")
		args = append(args, "%"+search+"%", "%"+search+"%")
	}
	builder.WriteString(" ORDER BY ts DESC, seq DESC")
	if limit > 0 {
		builder.WriteString(" LIMIT ?")
		args = append(args, limit)
	}
	rows, err := s.db.Query(builder.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("query history: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var (
			rec                    domain.HistoryRecord
			ts                     int64
			kind, intent, language string
			success, fromKnowledge int
		)
		if err := rows.Scan(&rec.ID, &ts, &kind, &rec.Input, &rec.Output, &intent, &language, &success, &fromKnowledge, &rec.DurationMS); err != nil {
			return nil, err
		}
		rec.Timestamp = time.Unix(0, ts).UTC()
		rec.Kind = domain.HistoryKind(kind)
		rec.Intent = domain.Intent(intent)
		rec.Language = domain.Language(language)
		rec.Success = success == 1
		rec.FromKnowledge = fromKnowledge == 1
		records = append(records, rec)
	}
	return records, rows.Err()
}

// Clear deletes all history entries.
func (s *SQLiteStore) Clear() error {
	if s.db == nil {
		return s.fallback.Clear()
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec("DELETE FROM history")
	return err
}

// ExportJSON writes every record, newest first, to a jsonl file.
func (s *SQLiteStore) ExportJSON(dest string) error {
	records, err := s.Records(0, "")
	if err != nil {
		return err
	}
	return writeJSONL(dest, records)
}

// Path returns the sqlite database path, or the fallback file when degraded.
func (s *SQLiteStore) Path() string {
	if s.db == nil {
		return s.fallback.Path()
	}
	return s.path
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	if s.db == nil {
		return nil
	}
	return s.db.Close()
}

func writeJSONL(dest string, records []domain.HistoryRecord) error {
	file, err := os.Create(filesystem.ExpandPath(dest))
	if err != nil {
		return err
	}
	defer file.Close()
	enc := json.NewEncoder(file)
	for _, rec := range records {
		if err := enc.Encode(rec); err != nil {
			return err
		}
	}
	return nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
