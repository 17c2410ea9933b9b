package memory

import (
	"context"
	"sync"

	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// SessionRepository keeps the session in process memory. Used by tests and by `serve`.
type SessionRepository struct {
	mu      sync.RWMutex
	session *model.Session
}

var _ interfaces.SessionRepository = &SessionRepository{}

func New() *SessionRepository {
	return &SessionRepository{}
}

func (r *SessionRepository) Load(ctx context.Context) (*model.Session, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if r.session == nil {
		return nil, nil
	}

	// Return a copy to prevent external modification
	return &model.Session{Token: r.session.Token}, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *model.Session) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = &model.Session{Token: session.Token}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.session = nil
	return nil
}
