package cli

import (
	"context"
	"fmt"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdValidate() *cli.Command {
	var appCfg appConfig

	return &cli.Command{
		Name:    "validate",
		Aliases: []string{"v"},
		Usage:   "Validate the policy file and check the data file for consistency",
		Flags:   appCfg.Flags(),
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()

			// Step 1: Load and validate the policy file
			limits, err := appCfg.limits()
			if err != nil {
				return goerr.Wrap(err, "configuration validation failed")
			}
			logger.Info("Configuration validation passed", "policy", &appCfg.policy)

			// Step 2: Parse the data file, collecting every malformed line
			store := appCfg.repo.SnapshotStore(limits)
			snap, diags, err := store.Inspect(ctx)
			if err != nil {
				return goerr.Wrap(err, "failed to read data file")
			}
			for _, diag := range diags {
				logger.Warn("Data file issue found", "error", diag)
			}

			// Step 3: Check the records that survived parsing
			repo := appCfg.repo.Configure(limits)
			if err := repo.Restore(ctx, snap); err != nil {
				return goerr.Wrap(err, "failed to restore state")
			}
			result, err := usecase.New(repo).ValidateState(ctx)
			if err != nil {
				return goerr.Wrap(err, "consistency check failed")
			}
			for _, issue := range result.Issues {
				logger.Warn("Consistency issue found",
					"case_id", issue.CaseID,
					"manager", issue.Manager,
					"message", issue.Message,
					"expected", issue.Expected,
					"actual", issue.Actual,
				)
			}

			if total := len(diags) + len(result.Issues); total > 0 {
				return fmt.Errorf("data file validation found %d issue(s)", total)
			}

			logger.Info("Data file validation passed", "path", store.Path())
			safe.Fprintf(ctx, c.Root().Writer, "%s: %d manager(s), %d case(s), no issues\n",
				store.Path(), len(snap.Managers), len(snap.Cases))
			return nil
		},
	}
}
