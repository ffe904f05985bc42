package cli

import (
	"context"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/cli/config"
	"github.com/secmon-lab/casekeeper/pkg/cli/shell"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
	"github.com/urfave/cli/v3"
	"golang.org/x/term"
)

func cmdShell() *cli.Command {
	var appCfg appConfig
	var reportCfg config.Report

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, reportCfg.Flags()...)

	return &cli.Command{
		Name:    "shell",
		Aliases: []string{"s"},
		Usage:   "Start the interactive case management console",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			sink, closeSink, err := reportCfg.Configure(ctx)
			if err != nil {
				return err
			}
			defer closeSink()

			uc, err := appCfg.useCases(ctx, usecase.WithReportSink(sink))
			if err != nil {
				return err
			}

			var opts []shell.Option
			if fd := int(os.Stdin.Fd()); term.IsTerminal(fd) {
				opts = append(opts, shell.WithPasswordReader(func() (string, error) {
					b, err := term.ReadPassword(fd)
					if err != nil {
						return "", goerr.Wrap(err, "failed to read password from terminal")
					}
					return string(b), nil
				}))
			}

			return shell.New(uc, c.Root().Reader, c.Root().Writer, opts...).Run(ctx)
		},
	}
}
