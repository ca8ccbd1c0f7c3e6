// Package repository declares persistence interfaces for domain entities.
package repository

import (
	"context"

	"github.com/bnema/omnibar/internal/domain/entity"
)

// HistoryRepository defines operations for browsing history persistence.
type HistoryRepository interface {
	// RecordVisit creates an entry for url or bumps its visit count.
	RecordVisit(ctx context.Context, url string) error

	// FindByURL retrieves a history entry by its URL. Returns nil, nil when absent.
	FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error)

	// GetRecent retrieves the most recently visited entries.
	GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error)

	// DeleteAll removes all history entries.
	DeleteAll(ctx context.Context) error
}
