package config

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/service/notion"
	"github.com/urfave/cli/v3"
)

// Notion holds configuration of the risk database connection
type Notion struct {
	databaseID string
	timeout    time.Duration
}

func (x *Notion) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "notion-database-id",
			Usage:       "Notion database ID or URL of the risk register",
			Category:    "Notion",
			Value:       notion.DefaultDatabaseID,
			Sources:     cli.EnvVars("RISKREG_NOTION_DATABASE_ID"),
			Destination: &x.databaseID,
		},
		&cli.DurationFlag{
			Name:        "notion-timeout",
			Usage:       "Timeout of a single Notion API call",
			Category:    "Notion",
			Value:       30 * time.Second,
			Sources:     cli.EnvVars("RISKREG_NOTION_TIMEOUT"),
			Destination: &x.timeout,
		},
	}
}

func (x Notion) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("database_id", x.databaseID),
		slog.Duration("timeout", x.timeout),
	)
}

// Configure creates the Notion service
func (x *Notion) Configure() (notion.Service, error) {
	if x.timeout < 0 {
		return nil, goerr.Wrap(ErrInvalidConfig, "notion timeout must not be negative", goerr.V("timeout", x.timeout))
	}

	svc, err := notion.New(
		notion.WithDatabaseID(x.databaseID),
		notion.WithHTTPClient(&http.Client{Timeout: x.timeout}),
	)
	if err != nil {
		return nil, goerr.Wrap(err, "failed to initialize notion service")
	}
	return svc, nil
}
