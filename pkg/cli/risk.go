package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/domain/model"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdList() *cli.Command {
	var gw gateway
	var pageSize int
	var cursor string
	var interactive bool
	var asJSON bool

	flags := []cli.Flag{
		&cli.IntFlag{
			Name:        "page-size",
			Usage:       "Number of risks per page (1-100, 0 uses the Notion default)",
			Value:       10,
			Destination: &pageSize,
		},
		&cli.StringFlag{
			Name:        "cursor",
			Usage:       "Start cursor printed by a previous run",
			Destination: &cursor,
		},
		&cli.BoolFlag{
			Name:        "interactive",
			Aliases:     []string{"i"},
			Usage:       "Page through the registry with n(ext), p(rev) and q(uit)",
			Destination: &interactive,
		},
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the page as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, gw.Flags()...)

	return &cli.Command{
		Name:    "list",
		Aliases: []string{"ls"},
		Usage:   "List registered risks",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := gw.Login(ctx)
			if err != nil {
				return err
			}
			w := c.Root().Writer

			if interactive {
				return browse(ctx, uc.Risk.NewBrowser(session, pageSize), uc.Taxonomy(), c.Root().Reader, w)
			}

			page, err := uc.Risk.FetchPage(ctx, session, model.PageRequest{
				Cursor:   model.PageCursor(cursor),
				PageSize: pageSize,
			})
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(w, page)
			}
			printRiskTable(w, uc.Taxonomy(), page.Items)
			printPageFooter(w, 1, page)
			return nil
		},
	}
}

// browse runs the interactive pager. A failed navigation prints the error
// and keeps the previous page on screen.
func browse(ctx context.Context, b *usecase.Browser, taxonomy *model.Taxonomy, in io.Reader, w io.Writer) error {
	page, err := b.First(ctx)
	if err != nil {
		return err
	}

	scanner := bufio.NewScanner(in)
	for {
		printRiskTable(w, taxonomy, page.Items)
		printPageFooter(w, b.PageNumber(), page)
		fmt.Fprint(w, navigationPrompt(b))

		if !scanner.Scan() {
			return scanner.Err()
		}

		var next *model.RiskPage
		switch strings.ToLower(strings.TrimSpace(scanner.Text())) {
		case "n", "next":
			next, err = b.Next(ctx)
		case "p", "prev":
			next, err = b.Prev(ctx)
		case "q", "quit":
			return nil
		default:
			continue
		}

		if err != nil {
			fmt.Fprintln(w, "Error:", model.ErrorMessage(err))
			page = b.Page()
			continue
		}
		page = next
	}
}

func navigationPrompt(b *usecase.Browser) string {
	var opts []string
	if b.CanPrev() {
		opts = append(opts, "p(rev)")
	}
	if b.CanNext() {
		opts = append(opts, "n(ext)")
	}
	opts = append(opts, "q(uit)")
	return "[" + strings.Join(opts, " ") + "] > "
}

func cmdShow() *cli.Command {
	var gw gateway
	var asJSON bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the risk as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, gw.Flags()...)

	return &cli.Command{
		Name:      "show",
		Usage:     "Show a single risk",
		ArgsUsage: "<risk ID or Notion URL>",
		Flags:     flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if c.Args().Len() != 1 {
				return model.NewValidationError("exactly one risk ID is required")
			}

			uc, session, err := gw.Login(ctx)
			if err != nil {
				return err
			}

			record, err := uc.Risk.GetRisk(ctx, session, c.Args().First())
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(c.Root().Writer, record)
			}
			printRisk(c.Root().Writer, uc.Taxonomy(), record)
			return nil
		},
	}
}

func cmdAnalytics() *cli.Command {
	var gw gateway
	var asJSON bool

	flags := []cli.Flag{
		&cli.BoolFlag{
			Name:        "json",
			Usage:       "Print the distribution as JSON",
			Destination: &asJSON,
		},
	}
	flags = append(flags, gw.Flags()...)

	return &cli.Command{
		Name:  "analytics",
		Usage: "Show how registered risks are distributed over categories",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, session, err := gw.Login(ctx)
			if err != nil {
				return err
			}

			dist, err := uc.Risk.Analytics(ctx, session)
			if err != nil {
				return err
			}

			if asJSON {
				return printJSON(c.Root().Writer, dist)
			}
			printDistribution(c.Root().Writer, dist)
			return nil
		},
	}
}

func cmdSubmit() *cli.Command {
	var gw gateway
	var name, category, subcategory, riskType string
	var dryRun bool

	flags := []cli.Flag{
		&cli.StringFlag{Name: "name", Usage: "Risk name", Destination: &name},
		&cli.StringFlag{Name: "category", Usage: "Risk category", Destination: &category},
		&cli.StringFlag{Name: "subcategory", Usage: "Risk sub-category of the category", Destination: &subcategory},
		&cli.StringFlag{Name: "risk-type", Usage: "Risk type of the sub-category", Destination: &riskType},
		&cli.BoolFlag{
			Name:        "dry-run",
			Usage:       "Print the Notion payload instead of creating the page",
			Destination: &dryRun,
		},
	}
	flags = append(flags, gw.Flags()...)

	return &cli.Command{
		Name:  "submit",
		Usage: "Register a new risk",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := gw.Configure(ctx)
			if err != nil {
				return err
			}

			form := model.NewRiskForm(name, category, subcategory, riskType)
			if err := form.Validate(uc.Taxonomy()); err != nil {
				return err
			}

			var session *model.Session
			if !dryRun {
				if session, err = uc.Session.Current(ctx); err != nil {
					return err
				}
			}

			result, err := uc.Risk.Submit(ctx, session, form, usecase.SubmitOptions{DryRun: dryRun})
			if err != nil {
				return err
			}

			w := c.Root().Writer
			if dryRun {
				if _, err := w.Write(append(result.Payload, '\n')); err != nil {
					return goerr.Wrap(err, "failed to write payload")
				}
				return nil
			}

			fmt.Fprintln(w, "Risk submitted.")
			printRisk(w, uc.Taxonomy(), result.Record)
			return nil
		},
	}
}
