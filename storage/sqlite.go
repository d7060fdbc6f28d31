package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"fixora/models"
	"fixora/utils"

	_ "github.com/mattn/go-sqlite3"
	"go.uber.org/zap"
)

// Storage keys for the kv table.
const (
	keySessionDraft   = "sessionDraft"
	keyPendingBooking = "pendingBookingData"
	keyAuthSession    = "authSession"
)

// SQLiteStore is the durable store: it survives a full page reload or an
// authentication redirect. One database file per installation.
type SQLiteStore struct {
	db     *sql.DB
	dbPath string
}

// NewSQLiteStore opens (or creates) the store at dbPath.
func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	if dbPath == "" {
		dbPath = "fixora.db"
	}

	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := createTables(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &SQLiteStore{db: db, dbPath: dbPath}, nil
}

func createTables(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS kv (
			key TEXT PRIMARY KEY,
			value TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT CURRENT_TIMESTAMP
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create kv table: %w", err)
	}

	_, err = db.Exec(`
		CREATE TABLE IF NOT EXISTS cached_requests (
			id INTEGER PRIMARY KEY,
			payload TEXT NOT NULL,
			created_at TIMESTAMP NOT NULL
		)
	`)
	if err != nil {
		return fmt.Errorf("failed to create cached_requests table: %w", err)
	}
	return nil
}

// Close releases the underlying database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) getKey(key string, target any) (bool, error) {
	var value string
	err := s.db.QueryRow(`SELECT value FROM kv WHERE key = ?`, key).Scan(&value)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to read key %s: %w", key, err)
	}
	if err := json.Unmarshal([]byte(value), target); err != nil {
		// Corrupt value: treat as absent rather than poisoning callers.
		utils.GetLogger().Warn("Discarding corrupt stored value",
			zap.String("key", key), zap.Error(err))
		return false, nil
	}
	return true, nil
}

func (s *SQLiteStore) setKey(key string, value any) error {
	data, err := json.Marshal(value)
	if err != nil {
		return fmt.Errorf("failed to marshal value for key %s: %w", key, err)
	}
	_, err = s.db.Exec(`
		INSERT INTO kv (key, value, updated_at) VALUES (?, ?, ?)
		ON CONFLICT(key) DO UPDATE SET value = excluded.value, updated_at = excluded.updated_at
	`, key, string(data), time.Now())
	if err != nil {
		return fmt.Errorf("failed to write key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) deleteKey(key string) error {
	if _, err := s.db.Exec(`DELETE FROM kv WHERE key = ?`, key); err != nil {
		return fmt.Errorf("failed to delete key %s: %w", key, err)
	}
	return nil
}

func (s *SQLiteStore) SaveDraft(partial models.SessionDraftRecord) error {
	current, err := s.ReadDraft()
	if err != nil {
		return err
	}
	current.Merge(partial)
	return s.setKey(keySessionDraft, current)
}

func (s *SQLiteStore) ReadDraft() (models.SessionDraftRecord, error) {
	var record models.SessionDraftRecord
	if _, err := s.getKey(keySessionDraft, &record); err != nil {
		return models.SessionDraftRecord{}, err
	}
	return record, nil
}

func (s *SQLiteStore) ClearDraft() error {
	return s.deleteKey(keySessionDraft)
}

func (s *SQLiteStore) SavePending(pending models.PendingBooking) error {
	return s.setKey(keyPendingBooking, pending)
}

func (s *SQLiteStore) ReadPending() (*models.PendingBooking, error) {
	var pending models.PendingBooking
	found, err := s.getKey(keyPendingBooking, &pending)
	if err != nil || !found {
		return nil, err
	}
	return &pending, nil
}

func (s *SQLiteStore) ClearPending() error {
	return s.deleteKey(keyPendingBooking)
}

func (s *SQLiteStore) SaveSession(session models.AuthSession) error {
	return s.setKey(keyAuthSession, session)
}

func (s *SQLiteStore) ReadSession() (*models.AuthSession, error) {
	var session models.AuthSession
	found, err := s.getKey(keyAuthSession, &session)
	if err != nil || !found {
		return nil, err
	}
	return &session, nil
}

func (s *SQLiteStore) ClearSession() error {
	return s.deleteKey(keyAuthSession)
}

// CacheRequests replaces the local request snapshot.
func (s *SQLiteStore) CacheRequests(items []models.RequestItem) error {
	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM cached_requests`); err != nil {
		return fmt.Errorf("failed to clear cached requests: %w", err)
	}
	for _, item := range items {
		payload, err := json.Marshal(item)
		if err != nil {
			return fmt.Errorf("failed to marshal request %d: %w", item.ID, err)
		}
		_, err = tx.Exec(`INSERT INTO cached_requests (id, payload, created_at) VALUES (?, ?, ?)`,
			item.ID, string(payload), item.CreatedAt)
		if err != nil {
			return fmt.Errorf("failed to cache request %d: %w", item.ID, err)
		}
	}
	return tx.Commit()
}

// CachedRequests returns the snapshot ordered by creation time, newest
// first. Unreadable rows are skipped.
func (s *SQLiteStore) CachedRequests() ([]models.RequestItem, error) {
	rows, err := s.db.Query(`SELECT payload FROM cached_requests ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("failed to query cached requests: %w", err)
	}
	defer rows.Close()

	var items []models.RequestItem
	for rows.Next() {
		var payload string
		if err := rows.Scan(&payload); err != nil {
			return nil, fmt.Errorf("failed to scan cached request: %w", err)
		}
		var item models.RequestItem
		if err := json.Unmarshal([]byte(payload), &item); err != nil {
			utils.GetLogger().Warn("Skipping corrupt cached request", zap.Error(err))
			continue
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
