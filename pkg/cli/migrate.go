package cli

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/repository/textfile"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
	"github.com/urfave/cli/v3"
)

func cmdMigrate() *cli.Command {
	var appCfg appConfig
	var dryRun bool

	flags := appCfg.Flags()
	flags = append(flags, &cli.BoolFlag{
		Name:        "dry-run",
		Usage:       "Preview changes without applying",
		Destination: &dryRun,
	})

	return &cli.Command{
		Name:    "migrate",
		Aliases: []string{"m"},
		Usage:   "Rewrite the data file in the current format",
		Flags:   flags,
		Action: func(ctx context.Context, c *cli.Command) error {
			logger := logging.Default()
			w := c.Root().Writer

			limits, err := appCfg.limits()
			if err != nil {
				return err
			}
			store := appCfg.repo.SnapshotStore(limits)

			logger.Info("Migrate configuration",
				"path", store.Path(),
				"dryRun", dryRun)

			// #nosec G304 - path is provided by CLI flag
			current, err := os.ReadFile(store.Path())
			if errors.Is(err, fs.ErrNotExist) {
				safe.Fprintf(ctx, w, "No data file at %s, nothing to migrate\n", store.Path())
				return nil
			}
			if err != nil {
				return goerr.Wrap(err, "failed to read data file", goerr.V("path", store.Path()))
			}

			snap, diags, err := store.Inspect(ctx)
			if err != nil {
				return err
			}

			var buf bytes.Buffer
			if err := textfile.Encode(&buf, snap); err != nil {
				return goerr.Wrap(err, "failed to encode data")
			}

			if bytes.Equal(current, buf.Bytes()) {
				logger.Info("No changes required")
				safe.Fprintln(ctx, w, "Data file is already in the current format")
				return nil
			}

			for _, diag := range diags {
				logger.Warn("Line will be dropped", "error", diag)
			}

			if dryRun {
				logger.Info("Dry run mode - previewing changes")
				safe.Fprintf(ctx, w, "Data file would be rewritten: %d manager(s), %d case(s), %d issue(s) dropped\n",
					len(snap.Managers), len(snap.Cases), len(diags))
				return nil
			}

			logger.Info("Applying migration")
			if err := store.Save(ctx, snap); err != nil {
				return goerr.Wrap(err, "failed to write migrated data file")
			}
			logger.Info("Migration applied successfully")
			safe.Fprintf(ctx, w, "Data file rewritten: %d manager(s), %d case(s)\n", len(snap.Managers), len(snap.Cases))
			return nil
		},
	}
}
