package config

import (
	"log/slog"

	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/repository/credfile"
	"github.com/secmon-lab/casekeeper/pkg/repository/memory"
	"github.com/secmon-lab/casekeeper/pkg/repository/textfile"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// Repository holds CLI flags for the data and credentials files
type Repository struct {
	dataFile        string
	credentialsFile string
}

// Flags returns CLI flags for repository configuration
func (r *Repository) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "data-file",
			Aliases:     []string{"d"},
			Usage:       "Path to the data file",
			Value:       textfile.DefaultPath,
			Sources:     cli.EnvVars("CASEKEEPER_DATA_FILE"),
			Destination: &r.dataFile,
		},
		&cli.StringFlag{
			Name:        "credentials-file",
			Usage:       "Path to the admin credentials file",
			Value:       credfile.DefaultPath,
			Sources:     cli.EnvVars("CASEKEEPER_CREDENTIALS_FILE"),
			Destination: &r.credentialsFile,
		},
	}
}

// DataFile returns the configured data file path
func (r *Repository) DataFile() string {
	return r.dataFile
}

// CredentialsFile returns the configured credentials file path
func (r *Repository) CredentialsFile() string {
	return r.credentialsFile
}

// LogValue implements slog.LogValuer
func (r *Repository) LogValue() slog.Value {
	return slog.GroupValue(
		slog.String("data_file", r.dataFile),
		slog.String("credentials_file", r.credentialsFile),
	)
}

// Configure returns an empty in-memory store enforcing limits. State is
// brought in through SnapshotStore.
func (r *Repository) Configure(limits model.Limits) interfaces.Repository {
	logging.Default().Debug("Using in-memory repository",
		"data_file", r.dataFile,
		"max_cases", limits.MaxCases,
		"max_managers", limits.MaxManagers,
	)
	return memory.New(memory.WithLimits(limits))
}

// SnapshotStore returns the data file store
func (r *Repository) SnapshotStore(limits model.Limits) *textfile.Store {
	return textfile.New(r.dataFile, limits)
}

// CredentialStore returns the admin credentials store
func (r *Repository) CredentialStore() *credfile.Store {
	return credfile.New(r.credentialsFile)
}
