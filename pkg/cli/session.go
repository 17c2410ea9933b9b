package cli

import (
	"bufio"
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/riskreg/pkg/cli/config"
	"github.com/secmon-lab/riskreg/pkg/usecase"
	"github.com/urfave/cli/v3"
)

func cmdLogin() *cli.Command {
	var sessionCfg config.Session
	var token string

	flags := []cli.Flag{
		&cli.StringFlag{
			Name:        "token",
			Usage:       "Notion integration token. Read from stdin when omitted.",
			Destination: &token,
		},
	}
	flags = append(flags, sessionCfg.Flags()...)

	return &cli.Command{
		Name:  "login",
		Usage: "Store the Notion token used for every request",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := sessionCfg.Configure(ctx)
			if err != nil {
				return err
			}

			if token == "" {
				fmt.Fprint(c.Root().Writer, "Notion token: ")
				scanner := bufio.NewScanner(c.Root().Reader)
				if scanner.Scan() {
					token = scanner.Text()
				}
				if err := scanner.Err(); err != nil {
					return goerr.Wrap(err, "failed to read token")
				}
			}

			if _, err := usecase.NewSessionUseCase(repo).Login(ctx, token); err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, "Logged in.")
			return nil
		},
	}
}

func cmdLogout() *cli.Command {
	var sessionCfg config.Session

	return &cli.Command{
		Name:  "logout",
		Usage: "Remove the stored Notion token",
		Flags: sessionCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			repo, err := sessionCfg.Configure(ctx)
			if err != nil {
				return err
			}

			if err := usecase.NewSessionUseCase(repo).Logout(ctx); err != nil {
				return err
			}

			fmt.Fprintln(c.Root().Writer, "Logged out.")
			return nil
		},
	}
}
