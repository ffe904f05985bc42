package cli

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/cli/config"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/urfave/cli/v3"
)

// appConfig bundles the flags shared by commands that work on the data file
type appConfig struct {
	policy config.Policy
	repo   config.Repository
}

func (x *appConfig) Flags() []cli.Flag {
	var flags []cli.Flag
	flags = append(flags, x.policy.Flags()...)
	flags = append(flags, x.repo.Flags()...)
	return flags
}

// limits returns the validated capacity policy
func (x *appConfig) limits() (model.Limits, error) {
	limits, err := x.policy.Configure()
	if err != nil {
		return model.Limits{}, goerr.Wrap(err, "failed to load policy")
	}
	return limits, nil
}

// useCases builds the use cases and loads the data file into the store
func (x *appConfig) useCases(ctx context.Context, opts ...usecase.Option) (*usecase.UseCases, error) {
	limits, err := x.limits()
	if err != nil {
		return nil, err
	}

	repo := x.repo.Configure(limits)
	opts = append([]usecase.Option{
		usecase.WithSnapshotStore(x.repo.SnapshotStore(limits)),
		usecase.WithCredentialStore(x.repo.CredentialStore()),
	}, opts...)

	uc := usecase.New(repo, opts...)
	if err := uc.Load(ctx); err != nil {
		return nil, err
	}

	logging.Default().Info("Data loaded",
		"policy", &x.policy,
		"repository", &x.repo,
	)
	return uc, nil
}
