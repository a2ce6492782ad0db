package remote

import (
	"context"
	"fmt"
	"time"

	"github.com/goliatone/go-errors"
	"github.com/goliatone/go-pagekit/internal/identity"
	"github.com/goliatone/go-pagekit/internal/logging"
	"github.com/goliatone/go-pagekit/internal/util"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
	"github.com/goliatone/go-repository-bun"
	"github.com/google/uuid"
	"github.com/uptrace/bun"
)

// NewDocumentRepository creates a repository for DocumentRecord rows.
func NewDocumentRepository(db *bun.DB) repository.Repository[*DocumentRecord] {
	return repository.MustNewRepository(db, repository.ModelHandlers[*DocumentRecord]{
		NewRecord:          func() *DocumentRecord { return &DocumentRecord{} },
		GetID:              func(r *DocumentRecord) uuid.UUID { return r.ID },
		SetID:              func(r *DocumentRecord, id uuid.UUID) { r.ID = id },
		GetIdentifier:      func() string { return "handle" },
		GetIdentifierValue: func(r *DocumentRecord) string { return r.Handle },
	})
}

// EnsureSchema creates the documents table when missing.
func EnsureSchema(ctx context.Context, db *bun.DB) error {
	_, err := db.NewCreateTable().Model((*DocumentRecord)(nil)).IfNotExists().Exec(ctx)
	return err
}

// BunStore keeps the document in a SQL table, one row per handle.
type BunStore struct {
	repo   repository.Repository[*DocumentRecord]
	handle string
	id     uuid.UUID
	now    func() time.Time
	logger interfaces.Logger
}

var _ interfaces.RemoteStore = (*BunStore)(nil)

// BunStoreOption configures a BunStore.
type BunStoreOption func(*BunStore)

func WithClock(clock func() time.Time) BunStoreOption {
	return func(s *BunStore) {
		if clock != nil {
			s.now = clock
		}
	}
}

func WithLogger(logger interfaces.Logger) BunStoreOption {
	return func(s *BunStore) {
		s.logger = logging.Ensure(logger)
	}
}

func NewBunStore(db *bun.DB, handle string, opts ...BunStoreOption) *BunStore {
	s := &BunStore{
		repo:   NewDocumentRepository(db),
		handle: handle,
		id:     identity.DocumentUUID(handle),
		now:    time.Now,
		logger: logging.NoOp(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

func (s *BunStore) Fetch(ctx context.Context) (map[string]any, error) {
	record, err := s.repo.GetByID(ctx, s.id.String())
	if err != nil {
		if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return nil, interfaces.ErrDocumentNotFound
		}
		return nil, fmt.Errorf("document %s: %w", s.handle, err)
	}
	if record.Payload == nil {
		return nil, interfaces.ErrDocumentNotFound
	}
	return record.Payload, nil
}

// Replace overwrites the stored payload and bumps its revision.
func (s *BunStore) Replace(ctx context.Context, payload map[string]any) error {
	record := &DocumentRecord{
		ID:        s.id,
		Handle:    s.handle,
		Payload:   util.CloneMap(payload),
		Revision:  1,
		UpdatedAt: s.now(),
	}

	existing, err := s.repo.GetByID(ctx, s.id.String())
	switch {
	case err == nil:
		record.Revision = existing.Revision + 1
		_, err = s.repo.Update(ctx, record,
			repository.UpdateByID(s.id.String()),
			repository.UpdateColumns("payload", "revision", "updated_at"),
		)
	case errors.IsCategory(err, repository.CategoryDatabaseNotFound):
		_, err = s.repo.Create(ctx, record)
	}
	if err != nil {
		s.logger.Error("storage.remote.write_failed", "handle", s.handle, "error", err)
		return fmt.Errorf("document %s: %w", s.handle, err)
	}
	s.logger.Debug("storage.remote.written", "handle", s.handle, "revision", record.Revision)
	return nil
}

// Revision reports the stored revision, zero when absent.
func (s *BunStore) Revision(ctx context.Context) (int, error) {
	record, err := s.repo.GetByID(ctx, s.id.String())
	if err != nil {
		if errors.IsCategory(err, repository.CategoryDatabaseNotFound) {
			return 0, nil
		}
		return 0, err
	}
	return record.Revision, nil
}
