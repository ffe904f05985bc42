package interfaces

import (
	"context"

	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

// Repository defines the interface for the in-memory record store
type Repository interface {
	Case() CaseRepository
	Manager() ManagerRepository

	// Limits returns the capacity policy the store was built with
	Limits() model.Limits

	// Snapshot exports the full state for persistence
	Snapshot(ctx context.Context) (*model.Snapshot, error)

	// Restore replaces the full state with snap
	Restore(ctx context.Context, snap *model.Snapshot) error
}

// SnapshotStore persists snapshots, e.g. to the text data file
type SnapshotStore interface {
	Load(ctx context.Context) (*model.Snapshot, error)
	Save(ctx context.Context, snap *model.Snapshot) error
}
