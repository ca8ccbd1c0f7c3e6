package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/domain/repository"
	"github.com/bnema/omnibar/internal/domain/url"
	"github.com/bnema/omnibar/internal/logging"
)

const defaultHistoryLimit = 20

// ErrNotInHistory is returned by Lookup when the address was never loaded.
var ErrNotInHistory = errors.New("address not in history")

// ManageHistoryUseCase lists and clears the visit log written by page loads.
type ManageHistoryUseCase struct {
	historyRepo repository.HistoryRepository
}

// NewManageHistoryUseCase creates a new history management use case.
func NewManageHistoryUseCase(historyRepo repository.HistoryRepository) *ManageHistoryUseCase {
	return &ManageHistoryUseCase{historyRepo: historyRepo}
}

// Recent returns up to limit entries, most recent first.
func (uc *ManageHistoryUseCase) Recent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	entries, err := uc.historyRepo.GetRecent(ctx, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent history: %w", err)
	}
	return entries, nil
}

// Lookup returns the entry for address. Typed forms such as "example.com"
// are normalized the way the omnibox loads them.
func (uc *ManageHistoryUseCase) Lookup(ctx context.Context, address string) (*entity.HistoryEntry, error) {
	address = strings.TrimSpace(address)
	if url.LooksLikeURL(address) {
		address = url.Normalize(address)
	}
	entry, err := uc.historyRepo.FindByURL(ctx, address)
	if err != nil {
		return nil, fmt.Errorf("failed to look up %s: %w", address, err)
	}
	if entry == nil {
		return nil, fmt.Errorf("%s: %w", address, ErrNotInHistory)
	}
	return entry, nil
}

// Clear removes every history entry.
func (uc *ManageHistoryUseCase) Clear(ctx context.Context) error {
	if err := uc.historyRepo.DeleteAll(ctx); err != nil {
		return fmt.Errorf("failed to clear history: %w", err)
	}
	logging.FromContext(ctx).Info().Msg("history cleared")
	return nil
}
