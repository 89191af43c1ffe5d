package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/ivangsquared/poc-address-finder/internal/domain"
	"github.com/ivangsquared/poc-address-finder/internal/domain/repository"
	apperrors "github.com/ivangsquared/poc-address-finder/internal/pkg/errors"
	"go.uber.org/zap"
)

const janitorInterval = time.Minute

type sessionEntry struct {
	mu      sync.Mutex
	session *domain.Session
}

// SessionStore keeps selection sessions in memory. Each entry carries its own
// mutex so overlapping events on one session are serialized while distinct
// sessions never contend.
type SessionStore struct {
	mu      sync.RWMutex
	entries map[string]*sessionEntry
	idleTTL time.Duration
	logger  *zap.Logger
	done    chan struct{}
	once    sync.Once
}

func NewSessionStore(idleTTL time.Duration, logger *zap.Logger) *SessionStore {
	s := &SessionStore{
		entries: make(map[string]*sessionEntry),
		idleTTL: idleTTL,
		logger:  logger,
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

var _ repository.SessionRepository = (*SessionStore)(nil)

func (s *SessionStore) Create(ctx context.Context) (*domain.Session, error) {
	now := time.Now()
	session := &domain.Session{
		ID: uuid.NewString(),
		Selection: domain.Selection{
			Phase: domain.PhaseIdle,
		},
		CreatedAt: now,
		UpdatedAt: now,
	}

	s.mu.Lock()
	s.entries[session.ID] = &sessionEntry{session: session}
	s.mu.Unlock()

	s.logger.Debug("Session created", zap.String("session_id", session.ID))

	snapshot := *session
	return &snapshot, nil
}

func (s *SessionStore) Get(ctx context.Context, id string) (*domain.Session, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	snapshot := *entry.session
	entry.mu.Unlock()

	return &snapshot, nil
}

func (s *SessionStore) Mutate(ctx context.Context, id string, fn func(*domain.Session) error) (*domain.Session, error) {
	entry, err := s.entry(id)
	if err != nil {
		return nil, err
	}

	entry.mu.Lock()
	defer entry.mu.Unlock()

	if err := fn(entry.session); err != nil {
		return nil, err
	}
	entry.session.UpdatedAt = time.Now()

	snapshot := *entry.session
	return &snapshot, nil
}

func (s *SessionStore) Delete(ctx context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[id]; !ok {
		return apperrors.ErrSessionNotFound
	}
	delete(s.entries, id)
	return nil
}

// Close stops the expiry janitor.
func (s *SessionStore) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *SessionStore) entry(id string) (*sessionEntry, error) {
	s.mu.RLock()
	entry, ok := s.entries[id]
	s.mu.RUnlock()
	if !ok {
		return nil, apperrors.ErrSessionNotFound
	}
	return entry, nil
}

func (s *SessionStore) janitor() {
	ticker := time.NewTicker(janitorInterval)
	defer ticker.Stop()

	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.evictIdle()
		}
	}
}

func (s *SessionStore) evictIdle() {
	cutoff := time.Now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()

	for id, entry := range s.entries {
		entry.mu.Lock()
		idle := entry.session.UpdatedAt.Before(cutoff)
		entry.mu.Unlock()

		if idle {
			delete(s.entries, id)
			s.logger.Debug("Session expired", zap.String("session_id", id))
		}
	}
}
