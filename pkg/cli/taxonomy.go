package cli

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/secmon-lab/riskreg/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdTaxonomy() *cli.Command {
	var taxonomyCfg config.Taxonomy
	var asJSON bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the taxonomy as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, taxonomyCfg.Flags()...)

	return &cli.Command{
		Name:      "taxonomy",
		Usage:     "Show the risk taxonomy, or the choices left after picking a category and sub-category",
		ArgsUsage: "[category [sub-category]]",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			taxonomy, err := taxonomyCfg.Configure()
			if err != nil {
				return err
			}
			w := c.Root().Writer

			if c.Args().Len() == 0 {
				if asJSON {
					return printJSON(w, taxonomy.Tree())
				}
				printTaxonomyTree(w, taxonomy)
				return nil
			}

			var sel model.SelectionState
			sel.SetCategory(c.Args().Get(0))
			if c.Args().Len() > 1 {
				sel.SetSubcategory(c.Args().Get(1))
			}
			opts := sel.Options(taxonomy)

			if asJSON {
				return printJSON(w, opts)
			}

			choices := opts.Subcategories
			if sel.Subcategory() != "" {
				choices = opts.RiskTypes
			}
			if len(choices) == 0 {
				dimColor.Fprintln(w, "No choices.")
				return nil
			}
			for _, choice := range choices {
				fmt.Fprintln(w, choice)
			}
			return nil
		},
	}
}

func cmdPriority() *cli.Command {
	var input model.RiskScoringInput
	var asJSON bool
	var summaryPath string

	return &cli.Command{
		Name:  "priority",
		Usage: "Score a risk: (impacts x likelihood) / effort",
		Flags: []cli.Flag{
			&cli.IntFlag{Name: "acquisition", Usage: "Customer acquisition impact (1-5)", Value: 1, Destination: &input.AcquisitionImpact},
			&cli.IntFlag{Name: "retention", Usage: "Customer retention impact (1-5)", Value: 1, Destination: &input.RetentionImpact},
			&cli.IntFlag{Name: "other-costs", Usage: "Other costs impact (1-5)", Value: 1, Destination: &input.OtherCostsImpact},
			&cli.IntFlag{Name: "likelihood", Usage: "Likelihood percentage (" + joinInts(model.LikelihoodOptions) + ")", Value: 50, Destination: &input.Likelihood},
			&cli.IntFlag{Name: "effort", Usage: "Effort to mitigate (1-5)", Value: 1, Destination: &input.Effort},
			&cli.StringFlag{
				Name:        "summary",
				Usage:       "Summarize a JSON array of assessments read from `FILE` (- for stdin) instead of scoring one risk",
				Destination: &summaryPath,
			},
			&cli.BoolFlag{Name: "json", Usage: "Print the score as JSON", Destination: &asJSON},
		},
		Action: func(ctx context.Context, c *cli.Command) error {
			uc := usecase.NewRiskUseCase(nil, nil)
			w := c.Root().Writer

			if summaryPath != "" {
				inputs, err := readAssessments(ctx, summaryPath, c.Root().Reader)
				if err != nil {
					return err
				}
				summary, err := uc.Summarize(inputs)
				if err != nil {
					return err
				}
				if asJSON {
					return printJSON(w, summary)
				}
				printSummary(w, summary)
				return nil
			}

			assessment, err := uc.Priority(input)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(w, assessment)
			}
			printPriority(w, assessment)
			return nil
		},
	}
}

// readAssessments decodes a JSON array of scoring inputs from path, or from stdin when path is "-"
func readAssessments(ctx context.Context, path string, stdin io.Reader) ([]model.RiskScoringInput, error) {
	r := stdin
	if path != "-" {
		// #nosec G304 - path is expected to be provided by CLI argument
		f, err := os.Open(path)
		if err != nil {
			return nil, goerr.Wrap(err, "failed to open assessments file", goerr.V("path", path))
		}
		defer safe.Close(ctx, f)
		r = f
	}

	var inputs []model.RiskScoringInput
	if err := json.NewDecoder(r).Decode(&inputs); err != nil {
		return nil, model.NewValidationError("assessments must be a JSON array of scoring inputs",
			goerr.V("path", path), goerr.V("error", err.Error()))
	}
	return inputs, nil
}

func joinInts(values []int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = strconv.Itoa(v)
	}
	return strings.Join(parts, ", ")
}
