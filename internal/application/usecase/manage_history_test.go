package usecase

import (
	"context"
	"errors"
	"testing"

	"github.com/bnema/omnibar/internal/domain/entity"
	repomocks "github.com/bnema/omnibar/internal/domain/repository/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestManageHistory_RecentAppliesDefaultLimit(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	want := []*entity.HistoryEntry{{URL: "https://example.com", VisitCount: 2}}
	repo.EXPECT().GetRecent(mock.Anything, defaultHistoryLimit).Return(want, nil).Once()

	got, err := NewManageHistoryUseCase(repo).Recent(context.Background(), 0)

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManageHistory_ClearWrapsErrors(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	boom := errors.New("locked")
	repo.EXPECT().DeleteAll(mock.Anything).Return(boom).Once()

	err := NewManageHistoryUseCase(repo).Clear(context.Background())

	assert.ErrorIs(t, err, boom)
}

func TestManageHistory_LookupNormalizesAddress(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	want := &entity.HistoryEntry{URL: "https://example.com", VisitCount: 3}
	repo.EXPECT().FindByURL(mock.Anything, "https://example.com").Return(want, nil).Once()

	got, err := NewManageHistoryUseCase(repo).Lookup(context.Background(), " example.com ")

	require.NoError(t, err)
	assert.Equal(t, want, got)
}

func TestManageHistory_LookupMissing(t *testing.T) {
	repo := repomocks.NewMockHistoryRepository(t)
	repo.EXPECT().FindByURL(mock.Anything, "https://missing.example/").Return(nil, nil).Once()

	_, err := NewManageHistoryUseCase(repo).Lookup(context.Background(), "https://missing.example/")

	assert.ErrorIs(t, err, ErrNotInHistory)
}
