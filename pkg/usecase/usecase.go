package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

type UseCases struct {
	repo        interfaces.Repository
	snapshots   interfaces.SnapshotStore
	credentials interfaces.CredentialStore
	reportSink  interfaces.ReportSink

	Case    *CaseUseCase
	Manager *ManagerUseCase
	Auth    *AuthUseCase
	Report  *ReportUseCase
}

type Option func(*UseCases)

// WithSnapshotStore sets where Load and Save read and write the state
func WithSnapshotStore(store interfaces.SnapshotStore) Option {
	return func(uc *UseCases) {
		uc.snapshots = store
	}
}

func WithCredentialStore(store interfaces.CredentialStore) Option {
	return func(uc *UseCases) {
		uc.credentials = store
	}
}

func WithReportSink(sink interfaces.ReportSink) Option {
	return func(uc *UseCases) {
		uc.reportSink = sink
	}
}

func New(repo interfaces.Repository, opts ...Option) *UseCases {
	uc := &UseCases{
		repo: repo,
	}

	for _, opt := range opts {
		opt(uc)
	}

	uc.Case = NewCaseUseCase(repo)
	uc.Manager = NewManagerUseCase(repo)
	uc.Auth = NewAuthUseCase(repo, uc.credentials)
	uc.Report = NewReportUseCase(repo, uc.reportSink)

	return uc
}

// Load replaces the store contents with the persisted state. Without a
// snapshot store it does nothing.
func (uc *UseCases) Load(ctx context.Context) error {
	if uc.snapshots == nil {
		return nil
	}

	snap, err := uc.snapshots.Load(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to load state")
	}
	if err := uc.repo.Restore(ctx, snap); err != nil {
		return goerr.Wrap(err, "failed to restore state")
	}

	logging.From(ctx).Debug("state loaded", "managers", len(snap.Managers), "cases", len(snap.Cases), "next_case_id", snap.NextCaseID)
	return nil
}

// Save persists the store contents. Without a snapshot store it does nothing.
func (uc *UseCases) Save(ctx context.Context) error {
	if uc.snapshots == nil {
		return nil
	}

	snap, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return goerr.Wrap(err, "failed to snapshot state")
	}
	if err := uc.snapshots.Save(ctx, snap); err != nil {
		return goerr.Wrap(err, "failed to save state")
	}

	logging.From(ctx).Debug("state saved", "managers", len(snap.Managers), "cases", len(snap.Cases))
	return nil
}
