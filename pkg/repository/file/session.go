package file

import (
	"context"
	"encoding/json"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
)

// SessionRepository stores the session as a JSON object keyed by model.SessionKey
type SessionRepository struct {
	path string
}

var _ interfaces.SessionRepository = &SessionRepository{}

// New returns a repository backed by the file at path
func New(path string) (*SessionRepository, error) {
	if path == "" {
		return nil, goerr.New("session file path is required")
	}
	return &SessionRepository{path: path}, nil
}

// DefaultPath returns $XDG_CONFIG_HOME/riskreg/session.json (or the OS equivalent)
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", goerr.Wrap(err, "failed to resolve user config directory")
	}
	return filepath.Join(dir, "riskreg", "session.json"), nil
}

// Path returns the backing file
func (r *SessionRepository) Path() string {
	return r.path
}

func (r *SessionRepository) Load(ctx context.Context) (*model.Session, error) {
	// #nosec G304 - path is provided by CLI flag
	data, err := os.ReadFile(r.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, goerr.Wrap(err, "failed to read session file", goerr.V("path", r.path))
	}

	var session model.Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, goerr.Wrap(err, "failed to parse session file", goerr.V("path", r.path))
	}
	if session.Token == "" {
		return nil, nil
	}

	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, session *model.Session) error {
	if err := os.MkdirAll(filepath.Dir(r.path), 0o700); err != nil {
		return goerr.Wrap(err, "failed to create session directory", goerr.V("path", r.path))
	}

	data, err := json.Marshal(session)
	if err != nil {
		return goerr.Wrap(err, "failed to marshal session")
	}

	// Replace atomically via a temp file
	tmp := r.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o600); err != nil {
		return goerr.Wrap(err, "failed to write session file", goerr.V("path", tmp))
	}
	if err := os.Rename(tmp, r.path); err != nil {
		return goerr.Wrap(err, "failed to replace session file", goerr.V("path", r.path))
	}

	logging.From(ctx).Debug("session saved", "path", r.path)
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context) error {
	if err := os.Remove(r.path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(err, "failed to remove session file", goerr.V("path", r.path))
	}

	logging.From(ctx).Debug("session cleared", "path", r.path)
	return nil
}
