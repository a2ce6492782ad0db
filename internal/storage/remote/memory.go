package remote

import (
	"context"
	"sync"

	"github.com/goliatone/go-pagekit/internal/util"
	"github.com/goliatone/go-pagekit/pkg/interfaces"
)

// MemoryStore keeps the document in process. Failures can be injected to
// exercise offline paths.
type MemoryStore struct {
	mu         sync.Mutex
	payload    map[string]any
	fetchErr   error
	replaceErr error
	replaces   int
}

var _ interfaces.RemoteStore = (*MemoryStore)(nil)

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Fetch(ctx context.Context) (map[string]any, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.fetchErr != nil {
		return nil, s.fetchErr
	}
	if s.payload == nil {
		return nil, interfaces.ErrDocumentNotFound
	}
	return util.CloneMap(s.payload), nil
}

func (s *MemoryStore) Replace(ctx context.Context, payload map[string]any) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.replaces++
	if s.replaceErr != nil {
		return s.replaceErr
	}
	s.payload = util.CloneMap(payload)
	return nil
}

// FailFetch makes Fetch return err until cleared with nil.
func (s *MemoryStore) FailFetch(err error) {
	s.mu.Lock()
	s.fetchErr = err
	s.mu.Unlock()
}

// FailReplace makes Replace return err until cleared with nil.
func (s *MemoryStore) FailReplace(err error) {
	s.mu.Lock()
	s.replaceErr = err
	s.mu.Unlock()
}

// Replaces counts Replace calls, including failed ones.
func (s *MemoryStore) Replaces() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.replaces
}

// Payload returns a copy of the stored document.
func (s *MemoryStore) Payload() map[string]any {
	s.mu.Lock()
	defer s.mu.Unlock()
	return util.CloneMap(s.payload)
}
