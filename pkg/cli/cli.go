package cli

import (
	"context"

	"github.com/secmon-lab/casekeeper/pkg/cli/config"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

func Run(ctx context.Context, args []string, version string) error {
	app, closer := newApp(version)
	defer closer()

	if err := app.Run(ctx, args); err != nil {
		logging.Default().Error("failed to run app", "error", err)
		return err
	}

	return nil
}

// newApp builds the root command. The returned func closes the log output.
func newApp(version string) (*cli.Command, func()) {
	var loggerCfg config.Logger
	closer := func() {}

	app := &cli.Command{
		Name:    "casekeeper",
		Usage:   "Console case tracker for investigative teams",
		Version: version,
		Flags:   loggerCfg.Flags(),
		Before: func(ctx context.Context, c *cli.Command) (context.Context, error) {
			f, err := loggerCfg.Configure()
			if err != nil {
				return ctx, err
			}
			closer = f

			logging.Default().Info("Starting casekeeper", "logger", &loggerCfg)
			return ctx, nil
		},
		Commands: []*cli.Command{
			cmdShell(),
			cmdReport(),
			cmdAdmin(),
			cmdValidate(),
			cmdDump(),
			cmdMigrate(),
		},
	}

	return app, func() { closer() }
}
