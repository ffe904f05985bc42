package cli

import (
	"context"

	"github.com/secmon-lab/casekeeper/pkg/cli/shell"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdDump() *cli.Command {
	var appCfg appConfig

	return &cli.Command{
		Name:  "dump",
		Usage: "Print all managers and cases in the data file",
		Flags: appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			uc, err := appCfg.useCases(ctx)
			if err != nil {
				return err
			}

			ctx = adminContext(ctx)
			managers, err := uc.Manager.ListManagers(ctx)
			if err != nil {
				return err
			}
			cases, err := uc.Case.ListCases(ctx)
			if err != nil {
				return err
			}

			w := c.Root().Writer
			safe.Fprintf(ctx, w, "Managers (%d):\n", len(managers))
			if len(managers) > 0 {
				safe.Fprintln(ctx, w, shell.ManagerTable(managers))
			}
			safe.Fprintf(ctx, w, "Cases (%d):\n", len(cases))
			if len(cases) > 0 {
				safe.Fprintln(ctx, w, shell.CaseTable(cases))
			}
			return nil
		},
	}
}
