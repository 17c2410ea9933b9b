package cli

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	httpctrl "github.com/secmon-lab/riskreg/pkg/controller/http"
	"github.com/secmon-lab/riskreg/pkg/repository/memory"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/secmon-lab/riskreg/pkg/utils/logging"
	"github.com/urfave/cli/v3"
	"golang.org/x/sync/errgroup"
)

func cmdServe() *cli.Command {
	var addr string
	var allowOrigin string
	var shutdownTimeout time.Duration
	var notionCfg config.Notion
	var taxonomyCfg config.Taxonomy

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "addr",
			Usage:       "HTTP server address",
			Value:       "127.0.0.1:8080",
			Sources:     cli.EnvVars("RISKREG_ADDR"),
			Destination: &addr,
		},
		&cli.StringFlag{
			Name:        "allow-origin",
			Usage:       "Value of Access-Control-Allow-Origin for browser clients (empty disables CORS)",
			Sources:     cli.EnvVars("RISKREG_ALLOW_ORIGIN"),
			Destination: &allowOrigin,
		},
		&cli.DurationFlag{
			Name:        "shutdown-timeout",
			Usage:       "Grace period for in-flight requests on shutdown",
			Value:       10 * time.Second,
			Sources:     cli.EnvVars("RISKREG_SHUTDOWN_TIMEOUT"),
			Destination: &shutdownTimeout,
		},
	}

	// Add shared config flags
	flags = append(flags, notionCfg.Flags()...)
	flags = append(flags, taxonomyCfg.Flags()...)

	return &cli.Command{
		Name:    "serve",
		Aliases: []string{"s"},
		Usage:   "Start the HTTP gateway to the risk database",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			notionSvc, err := notionCfg.Configure()
			if err != nil {
				return err
			}

			taxonomy, err := taxonomyCfg.Configure()
			if err != nil {
				return goerr.Wrap(err, "failed to load taxonomy")
			}

			// Tokens arrive with each request; the gateway keeps no session of its own
			uc := usecase.New(memory.New(),
				usecase.WithNotion(notionSvc),
				usecase.WithTaxonomy(taxonomy),
			)

			server := &http.Server{
				Addr:              addr,
				Handler:           httpctrl.New(uc, httpctrl.WithAllowOrigin(allowOrigin)),
				ReadHeaderTimeout: 30 * time.Second,
			}

			ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
			defer stop()

			eg, ctx := errgroup.WithContext(ctx)
			eg.Go(func() error {
				logging.From(ctx).Info("Starting HTTP server",
					"addr", addr,
					"notion", notionCfg,
					"taxonomy", taxonomyCfg,
				)
				if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					return goerr.Wrap(err, "failed to start server", goerr.V("addr", addr))
				}
				return nil
			})

			eg.Go(func() error {
				<-ctx.Done()
				logging.From(ctx).Info("Shutting down HTTP server")

				shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
				defer cancel()

				if err := server.Shutdown(shutdownCtx); err != nil {
					return goerr.Wrap(err, "failed to shutdown server gracefully")
				}

				logging.From(ctx).Info("Server shutdown completed")
				return nil
			})

			return eg.Wait()
		},
	}
}
