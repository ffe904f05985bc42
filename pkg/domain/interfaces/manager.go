package interfaces

import (
	"context"

	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

// ManagerRepository defines the interface for Manager data access. Names are
// unique and compared exactly.
type ManagerRepository interface {
	Create(ctx context.Context, m *model.Manager) (*model.Manager, error)
	Get(ctx context.Context, name string) (*model.Manager, error)
	List(ctx context.Context) ([]*model.Manager, error)
	Update(ctx context.Context, m *model.Manager) (*model.Manager, error)
	Delete(ctx context.Context, name string) error
}
