package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

// NotLoggedInMessage is shown when a gateway operation runs without a token
const NotLoggedInMessage = "not logged in: run `riskreg login` with your Notion integration token"

// SessionUseCase stores and restores the bearer token of the local user
type SessionUseCase struct {
	repo interfaces.SessionRepository
}

func NewSessionUseCase(repo interfaces.SessionRepository) *SessionUseCase {
	return &SessionUseCase{repo: repo}
}

// Login stores token. The token is not checked against Notion.
func (uc *SessionUseCase) Login(ctx context.Context, token string) (*model.Session, error) {
	session := model.NewSession(token)
	if !session.IsAuthenticated() {
		return nil, model.NewValidationError("token is required")
	}

	if err := uc.repo.Save(ctx, session); err != nil {
		return nil, goerr.Wrap(err, "failed to save session")
	}

	logging.From(ctx).Info("logged in", "session", session)
	return session, nil
}

// Logout removes the stored token
func (uc *SessionUseCase) Logout(ctx context.Context) error {
	if err := uc.repo.Clear(ctx); err != nil {
		return goerr.Wrap(err, "failed to clear session")
	}
	logging.From(ctx).Info("logged out")
	return nil
}

// Current returns the stored session, or ErrNotLoggedIn if there is none
func (uc *SessionUseCase) Current(ctx context.Context) (*model.Session, error) {
	session, err := uc.repo.Load(ctx)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load session")
	}
	if !session.IsAuthenticated() {
		return nil, notLoggedIn()
	}
	return session, nil
}

func notLoggedIn() error {
	return goerr.Wrap(model.ErrNotLoggedIn, "no token", goerr.V(model.MessageKey, NotLoggedInMessage))
}

func requireSession(session *model.Session) error {
	if !session.IsAuthenticated() {
		return notLoggedIn()
	}
	return nil
}
