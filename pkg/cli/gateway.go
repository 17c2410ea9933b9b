package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// gateway bundles the configuration every Notion-backed command needs
type gateway struct {
	session  config.Session
	notion   config.Notion
	taxonomy config.Taxonomy
}

func (x *gateway) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.session.Flags()...)
	flags = append(flags, x.notion.Flags()...)
	flags = append(flags, x.taxonomy.Flags()...)
	return flags
}

func (x *gateway) Configure(ctx context.Context) (*usecase.UseCases, error) {
	sessions, err := x.session.Configure(ctx)
	if err != nil {
		return nil, err
	}

	svc, err := x.notion.Configure()
	if err != nil {
		return nil, err
	}

	taxonomy, err := x.taxonomy.Configure()
	if err != nil {
		return nil, goerr.Wrap(err, "failed to load taxonomy")
	}

	logging.From(ctx).Debug("gateway configured",
		"session", x.session,
		"notion", x.notion,
		"taxonomy", x.taxonomy,
	)

	return usecase.New(sessions,
		usecase.WithNotion(svc),
		usecase.WithTaxonomy(taxonomy),
	), nil
}

// Login configures use cases and loads the stored session
func (x *gateway) Login(ctx context.Context) (*usecase.UseCases, *model.Session, error) {
	uc, err := x.Configure(ctx)
	if err != nil {
		return nil, nil, err
	}

	session, err := uc.Session.Current(ctx)
	if err != nil {
		return nil, nil, err
	}
	return uc, session, nil
}
