package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var taxonomyCfg config.Taxonomy

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate a taxonomy file",
		Flags:   taxonomyCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			if taxonomyCfg.Path() == "" {
				return goerr.Wrap(config.ErrInvalidConfig, "taxonomy file is required",
					goerr.V(model.MessageKey, "--taxonomy-file is required"))
			}

			taxonomy, err := taxonomyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "taxonomy validation failed")
			}

			subcategories, riskTypes := 0, 0
			for _, cat := range taxonomy.Tree() {
				subcategories += len(cat.Subcategories)
				for _, sub := range cat.Subcategories {
					riskTypes += len(sub.RiskTypes)
				}
			}

			logging.From(ctx).Info("Taxonomy validation passed",
				"path", taxonomyCfg.Path(),
				"category_count", len(taxonomy.Categories()),
				"subcategory_count", subcategories,
				"risk_type_count", riskTypes,
			)
			fmt.Fprintf(c.Root().Writer, "%s: %d categories, %d sub-categories, %d risk types\n",
				taxonomyCfg.Path(), len(taxonomy.Categories()), subcategories, riskTypes)
			return nil
		},
	}
}
