package cli

import (
	"bufio"
	"context"
	"os"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/cli/config"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func cmdAdmin() *cli.Command {
	return &cli.Command{
		Name:  "admin",
		Usage: "Manage admin credentials",
		Commands: []*cli.Command{
			cmdAdminAdd(),
		},
	}
}

func cmdAdminAdd() *cli.Command {
	var repoCfg config.Repository
	var username string
	var password string

	flags := repoCfg.Flags()
	flags = append(flags,
		&cli.StringFlag{
			Name:        "username",
			Aliases:     []string{"u"},
			Usage:       "Admin username",
			Required:    true,
			Destination: &username,
		},
		&cli.StringFlag{
			Name:        "password",
			Usage:       "Admin password (prompted when omitted)",
			Sources:     cli.EnvVars("CASEKEEPER_ADMIN_PASSWORD"),
			Destination: &password,
		},
	)

	return &cli.Command{
		Name:  "add",
		Usage: "Add an admin to the credentials file",
		Flags: flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			if password == "" {
				p, err := readAdminPassword(ctx, c)
				if err != nil {
					return err
				}
				password = p
			}

			// Admin credentials live outside the data file, so nothing is loaded.
			uc := usecase.New(repoCfg.Configure(model.DefaultLimits()),
				usecase.WithCredentialStore(repoCfg.CredentialStore()),
			)
			if err := uc.Auth.Bootstrap(ctx, username, password); err != nil {
				return err
			}

			logging.Default().Info("Admin added",
				"username", username,
				"credentials_file", repoCfg.CredentialsFile(),
			)
			safe.Fprintf(ctx, c.Root().Writer, "Admin %s added.\n", username)
			return nil
		},
	}
}

func readAdminPassword(ctx context.Context, c *cli.Command) (string, error) {
	safe.Fprintf(ctx, c.Root().Writer, "Password: ")

	if fd := int(os.Stdin.Fd()); c.Root().Reader == os.Stdin && term.IsTerminal(fd) {
		b, err := term.ReadPassword(fd)
		safe.Fprintln(ctx, c.Root().Writer)
		if err != nil {
			return "", goerr.Wrap(err, "failed to read password from terminal")
		}
		return string(b), nil
	}

	line, err := bufio.NewReader(c.Root().Reader).ReadString('\n')
	if err != nil && line == "" {
		return "", goerr.Wrap(err, "failed to read password")
	}
	return strings.TrimRight(line, "\r\n"), nil
}
