package cli

import (
	"context"

	"github.com/secmon-lab/casekeeper/pkg/cli/config"
	"github.com/secmon-lab/casekeeper/pkg/domain/model/auth"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

// cliPrincipal is the identity used by non-interactive admin commands
const cliPrincipal = "cli"

func adminContext(ctx context.Context) context.Context {
	return auth.WithPrincipal(ctx, auth.NewPrincipal(cliPrincipal, types.RoleAdmin))
}

func cmdReport() *cli.Command {
	var appCfg appConfig
	var reportCfg config.Report

	var flags []cli.Flag
	flags = append(flags, appCfg.Flags()...)
	flags = append(flags, reportCfg.Flags()...)

	return &cli.Command{
		Name:    "report",
		Aliases: []string{"r"},
		Usage:   "Generate a report covering every case",
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

			location, err := uc.Report.GenerateReport(adminContext(ctx))
			if err != nil {
				return err
			}

			safe.Fprintf(ctx, c.Root().Writer, "Report generated: %s\n", location)
			return nil
		},
	}
}
