package config

import (
	"context"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/interfaces"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/repository/file"
	"github.com/secmon-lab/riskreg/pkg/repository/memory"
	"github.com/urfave/cli/v3"
)

// Session selects where the bearer token is kept
type Session struct {
	path  string
	token string
}

func (x *Session) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "session-file",
			Usage:       "Path of the stored session (default: <user config dir>/riskreg/session.json)",
			Category:    "Session",
			Sources:     cli.EnvVars("RISKREG_SESSION_FILE"),
			Destination: &x.path,
		},
		&cli.StringFlag{
			Name:        "notion-token",
			Usage:       "Notion token for this run only. The session file is neither read nor written.",
			Category:    "Session",
			Sources:     cli.EnvVars("RISKREG_NOTION_TOKEN"),
			Destination: &x.token,
		},
	}
}

func (x Session) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("path", x.path),
		slog.Bool("token_override", x.token != ""),
	)
}

// Configure returns the session repository. A token given by flag is held in
// memory for the lifetime of the process.
func (x *Session) Configure(ctx context.Context) (interfaces.SessionRepository, error) {
	if x.token != "" {
		repo := memory.New()
		if err := repo.Save(ctx, model.NewSession(x.token)); err != nil {
			return nil, goerr.Wrap(err, "failed to hold token in memory")
		}
		return repo, nil
	}

	path := x.path
	if path == "" {
		p, err := file.DefaultPath()
		if err != nil {
			return nil, goerr.Wrap(err, "failed to determine session file path")
		}
		path = p
	}

	repo, err := file.New(path)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to configure session file", goerr.V(ConfigPathKey, path))
	}
	return repo, nil
}
