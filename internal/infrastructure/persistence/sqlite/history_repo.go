package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/domain/repository"
	"github.com/bnema/omnibar/internal/logging"
)

const logURLMaxLen = 60

// aboutBlankURL is never worth remembering.
const aboutBlankURL = "about:blank"

type historyRepo struct {
	db  *sql.DB
	now func() time.Time
}

// NewHistoryRepository creates a new SQLite-backed history repository.
func NewHistoryRepository(db *sql.DB) repository.HistoryRepository {
	return &historyRepo{db: db, now: time.Now}
}

func (r *historyRepo) RecordVisit(ctx context.Context, url string) error {
	if url == "" || url == aboutBlankURL {
		return nil
	}
	log := logging.FromContext(ctx)
	log.Debug().Str("url", logging.TruncateURL(url, logURLMaxLen)).Msg("recording visit")

	ts := r.now().UnixMilli()
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO history (url, visit_count, last_visited, created_at)
		VALUES (?, 1, ?, ?)
		ON CONFLICT(url) DO UPDATE SET
			visit_count = visit_count + 1,
			last_visited = excluded.last_visited`,
		url, ts, ts,
	)
	if err != nil {
		return fmt.Errorf("failed to record visit: %w", err)
	}
	return nil
}

func (r *historyRepo) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT id, url, visit_count, last_visited, created_at
		FROM history WHERE url = ?`, url)

	entry, err := scanHistory(row)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return entry, nil
}

func (r *historyRepo) GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		return []*entity.HistoryEntry{}, nil
	}
	rows, err := r.db.QueryContext(ctx, `
		SELECT id, url, visit_count, last_visited, created_at
		FROM history
		ORDER BY last_visited DESC, id DESC
		LIMIT ?`, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query history: %w", err)
	}
	defer func() { _ = rows.Close() }()

	entries := make([]*entity.HistoryEntry, 0, limit)
	for rows.Next() {
		entry, err := scanHistory(rows)
		if err != nil {
			return nil, err
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate history: %w", err)
	}
	return entries, nil
}

func (r *historyRepo) DeleteAll(ctx context.Context) error {
	if _, err := r.db.ExecContext(ctx, "DELETE FROM history"); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	return nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanHistory(s rowScanner) (*entity.HistoryEntry, error) {
	var (
		entry       entity.HistoryEntry
		lastVisited int64
		createdAt   int64
	)
	if err := s.Scan(&entry.ID, &entry.URL, &entry.VisitCount, &lastVisited, &createdAt); err != nil {
		return nil, err
	}
	entry.LastVisited = time.UnixMilli(lastVisited)
	entry.CreatedAt = time.UnixMilli(createdAt)
	return &entry, nil
}
