package interfaces

import (
	"context"

	"github.com/secmon-lab/riskreg/pkg/domain/model"
)

// SessionRepository persists the local user's bearer token
type SessionRepository interface {
	// Load returns the stored session, or nil, nil when nothing is stored
	Load(ctx context.Context) (*model.Session, error)

	// Save replaces the stored session
	Save(ctx context.Context, session *model.Session) error

	// Clear removes the stored session. Clearing an empty store is not an error.
	Clear(ctx context.Context) error
}
