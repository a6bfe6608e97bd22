// Package database persists finished scans for the history endpoint.
package database

import (
	"context"
	"database/sql"
	"encoding/json"
	"time"

	"go.uber.org/zap"
)

type ScanRecord struct {
	ID        uint64          `json:"id"`
	InputType string          `json:"type"`
	InputHash string          `json:"input_hash"`
	Mode      string          `json:"mode"`
	Verdict   json.RawMessage `json:"verdict"`
	CreatedAt time.Time       `json:"created_at"`
}

// ScanStore is nil-safe: a disabled store (no DSN configured) swallows
// writes and returns empty history.
type ScanStore struct {
	db  *sql.DB
	log *zap.SugaredLogger
}

func NewScanStore(db *sql.DB, log *zap.SugaredLogger) *ScanStore {
	if db == nil {
		return nil
	}
	return &ScanStore{db: db, log: log}
}

// SaveScan records one finished verdict. Called off the request path, so
// failures only log.
func (s *ScanStore) SaveScan(ctx context.Context, rec *ScanRecord) {
	if s == nil {
		return
	}
	_, err := s.db.ExecContext(ctx, `
		INSERT INTO scan (input_type, input_hash, mode, verdict, created_at)
		VALUES (?, ?, ?, ?, ?)
	`, rec.InputType, rec.InputHash, rec.Mode, []byte(rec.Verdict), rec.CreatedAt)
	if err != nil {
		s.log.Warnw("Failed to save scan record", "error", err.Error())
	}
}

// RecentScans returns the newest records first, at most limit.
func (s *ScanStore) RecentScans(ctx context.Context, limit int) ([]ScanRecord, error) {
	if s == nil {
		return []ScanRecord{}, nil
	}
	if limit <= 0 || limit > 100 {
		limit = 20
	}

	rows, err := s.db.QueryContext(ctx, `
		SELECT id, input_type, input_hash, mode, verdict, created_at
		FROM scan
		ORDER BY id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer func() {
		_ = rows.Close()
	}()

	records := []ScanRecord{}
	for rows.Next() {
		var rec ScanRecord
		var verdict []byte
		if err := rows.Scan(&rec.ID, &rec.InputType, &rec.InputHash, &rec.Mode, &verdict, &rec.CreatedAt); err != nil {
			return nil, err
		}
		rec.Verdict = json.RawMessage(verdict)
		records = append(records, rec)
	}
	return records, rows.Err()
}
