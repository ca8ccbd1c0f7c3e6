package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"sync"

	"github.com/bnema/omnibar/internal/domain/entity"
	"github.com/bnema/omnibar/internal/domain/repository"
	"github.com/bnema/omnibar/internal/logging"
)

// LazyDB opens the database on first access. Sessions that never load a page
// never pay for the WASM compile and migrations.
type LazyDB struct {
	dbPath string
	db     *sql.DB
	err    error
	once   sync.Once
	mu     sync.RWMutex
}

// NewLazyDB creates a new lazy database provider.
func NewLazyDB(dbPath string) *LazyDB {
	return &LazyDB{dbPath: dbPath}
}

// DB returns the database connection, initializing it on the first call.
func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.once.Do(func() {
		log := logging.FromContext(ctx)
		log.Debug().Str("path", l.dbPath).Msg("lazy database initialization starting")

		db, err := NewConnection(ctx, l.dbPath)
		l.mu.Lock()
		l.db, l.err = db, err
		l.mu.Unlock()
		if err != nil {
			log.Error().Err(err).Msg("lazy database initialization failed")
		}
	})

	l.mu.RLock()
	defer l.mu.RUnlock()
	if l.err != nil {
		return nil, fmt.Errorf("database initialization failed: %w", l.err)
	}
	return l.db, nil
}

// Close closes the database connection if it was initialized.
func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db.Close()
	}
	return nil
}

// IsInitialized returns true if the database has been initialized.
func (l *LazyDB) IsInitialized() bool {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.db != nil
}

// SchemaVersion opens the database if needed and returns its goose version.
func (l *LazyDB) SchemaVersion(ctx context.Context) (int64, error) {
	db, err := l.DB(ctx)
	if err != nil {
		return 0, err
	}
	return SchemaVersion(ctx, db)
}

// Path returns the database path.
func (l *LazyDB) Path() string {
	return l.dbPath
}

// lazyHistoryRepo opens the database on its first call.
type lazyHistoryRepo struct {
	lazy *LazyDB
}

// NewLazyHistoryRepository returns a history repository backed by lazy.
func NewLazyHistoryRepository(lazy *LazyDB) repository.HistoryRepository {
	return &lazyHistoryRepo{lazy: lazy}
}

func (r *lazyHistoryRepo) repo(ctx context.Context) (repository.HistoryRepository, error) {
	db, err := r.lazy.DB(ctx)
	if err != nil {
		return nil, err
	}
	return NewHistoryRepository(db), nil
}

func (r *lazyHistoryRepo) RecordVisit(ctx context.Context, url string) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.RecordVisit(ctx, url)
}

func (r *lazyHistoryRepo) FindByURL(ctx context.Context, url string) (*entity.HistoryEntry, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.FindByURL(ctx, url)
}

func (r *lazyHistoryRepo) GetRecent(ctx context.Context, limit int) ([]*entity.HistoryEntry, error) {
	repo, err := r.repo(ctx)
	if err != nil {
		return nil, err
	}
	return repo.GetRecent(ctx, limit)
}

func (r *lazyHistoryRepo) DeleteAll(ctx context.Context) error {
	repo, err := r.repo(ctx)
	if err != nil {
		return err
	}
	return repo.DeleteAll(ctx)
}
