package repository_test

import (
	"context"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/repository/memory"
)

func runManagerRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create and Get", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Manager().Create(ctx, &model.Manager{
			Name:       "Alice",
			Department: "Fraud",
			Password:   "pw",
			Active:     true,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created.Name).Equal("Alice")

		got, err := repo.Manager().Get(ctx, "Alice")
		gt.NoError(t, err).Required()
		gt.Value(t, got.Department).Equal("Fraud")
		gt.Bool(t, got.Active).True()
	})

	t.Run("lookup is case-sensitive", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Manager().Create(ctx, &model.Manager{Name: "Alice"})
		gt.NoError(t, err).Required()

		_, err = repo.Manager().Get(ctx, "alice")
		gt.Error(t, err).Is(model.ErrManagerNotFound)
	})

	t.Run("duplicate name is rejected", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Manager().Create(ctx, &model.Manager{Name: "Alice"})
		gt.NoError(t, err).Required()

		_, err = repo.Manager().Create(ctx, &model.Manager{Name: "Alice"})
		gt.Error(t, err).Is(model.ErrManagerExists)
	})

	t.Run("capacity is enforced", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < repo.Limits().MaxManagers; i++ {
			_, err := repo.Manager().Create(ctx, &model.Manager{Name: string(rune('A' + i))})
			gt.NoError(t, err).Required()
		}

		_, err := repo.Manager().Create(ctx, &model.Manager{Name: "Overflow"})
		gt.Error(t, err).Is(model.ErrCapacityExceeded)
	})

	t.Run("Update and Delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for _, name := range []string{"Alice", "Bob", "Carol"} {
			_, err := repo.Manager().Create(ctx, &model.Manager{Name: name, Active: true})
			gt.NoError(t, err).Required()
		}

		_, err := repo.Manager().Update(ctx, &model.Manager{Name: "Bob", Department: "Audit", Active: false})
		gt.NoError(t, err).Required()

		bob, err := repo.Manager().Get(ctx, "Bob")
		gt.NoError(t, err).Required()
		gt.Value(t, bob.Department).Equal("Audit")
		gt.Bool(t, bob.Active).False()

		gt.NoError(t, repo.Manager().Delete(ctx, "Alice")).Required()
		managers, err := repo.Manager().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, managers).Length(2).Required()
		gt.Value(t, managers[0].Name).Equal("Bob")
		gt.Value(t, managers[1].Name).Equal("Carol")

		err = repo.Manager().Delete(ctx, "Alice")
		gt.Error(t, err).Is(model.ErrManagerNotFound)
	})
}

func TestManagerRepository_Memory(t *testing.T) {
	runManagerRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New(memory.WithLimits(model.Limits{
			MaxCases:            5,
			MaxManagers:         3,
			MaxAssignedManagers: 2,
			MaxActions:          3,
		}))
	})
}
