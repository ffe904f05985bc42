package repository_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
	"github.com/secmon-lab/casekeeper/pkg/repository/memory"
)

func runCaseRepositoryTest(t *testing.T, newRepo func(t *testing.T) interfaces.Repository) {
	t.Helper()

	t.Run("Create assigns monotonic IDs starting at 1000", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created1, err := repo.Case().Create(ctx, &model.Case{
			Title:       "Theft report",
			Description: "Laptop stolen from reception",
			Source:      "Hotline",
			Status:      types.CaseStatusOpen,
		})
		gt.NoError(t, err).Required()
		gt.Value(t, created1.ID).Equal(model.FirstCaseID)
		gt.Value(t, created1.Title).Equal("Theft report")
		gt.Bool(t, created1.CreatedAt.IsZero()).False()

		created2, err := repo.Case().Create(ctx, &model.Case{Title: "Expense fraud"})
		gt.NoError(t, err).Required()
		gt.Value(t, created2.ID).Equal(model.FirstCaseID + 1)
	})

	t.Run("IDs are never reused after delete", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		first, err := repo.Case().Create(ctx, &model.Case{Title: "first"})
		gt.NoError(t, err).Required()
		second, err := repo.Case().Create(ctx, &model.Case{Title: "second"})
		gt.NoError(t, err).Required()

		gt.NoError(t, repo.Case().Delete(ctx, second.ID)).Required()

		third, err := repo.Case().Create(ctx, &model.Case{Title: "third"})
		gt.NoError(t, err).Required()
		gt.Value(t, third.ID).NotEqual(second.ID)
		gt.Value(t, third.ID).Equal(first.ID + 2)
	})

	t.Run("Get returns a copy", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		created, err := repo.Case().Create(ctx, &model.Case{
			Title:            "Phishing",
			AssignedManagers: []string{"Alice"},
		})
		gt.NoError(t, err).Required()

		got, err := repo.Case().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		got.AssignedManagers[0] = "Mallory"

		again, err := repo.Case().Get(ctx, created.ID)
		gt.NoError(t, err).Required()
		gt.Value(t, again.AssignedManagers[0]).Equal("Alice")
	})

	t.Run("Get returns error for non-existent case", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Case().Get(context.Background(), 4242)
		gt.Error(t, err).Is(model.ErrCaseNotFound)
	})

	t.Run("Update preserves CreatedAt", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		createdAt := time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)
		created, err := repo.Case().Create(ctx, &model.Case{Title: "Original", CreatedAt: createdAt})
		gt.NoError(t, err).Required()

		created.Title = "Renamed"
		created.CreatedAt = time.Now()
		updated, err := repo.Case().Update(ctx, created)
		gt.NoError(t, err).Required()
		gt.Value(t, updated.Title).Equal("Renamed")
		gt.Bool(t, updated.CreatedAt.Equal(createdAt)).True()
	})

	t.Run("Update returns error for non-existent case", func(t *testing.T) {
		repo := newRepo(t)

		_, err := repo.Case().Update(context.Background(), &model.Case{ID: 999})
		gt.Error(t, err).Is(model.ErrCaseNotFound)
	})

	t.Run("Delete compacts and preserves order", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		var ids []int64
		for _, title := range []string{"a", "b", "c", "d"} {
			c, err := repo.Case().Create(ctx, &model.Case{Title: title})
			gt.NoError(t, err).Required()
			ids = append(ids, c.ID)
		}

		gt.NoError(t, repo.Case().Delete(ctx, ids[1])).Required()

		cases, err := repo.Case().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(3).Required()
		gt.Value(t, cases[0].Title).Equal("a")
		gt.Value(t, cases[1].Title).Equal("c")
		gt.Value(t, cases[2].Title).Equal("d")
		gt.Value(t, cases[1].ID).Equal(ids[2])
	})

	t.Run("Delete returns error for non-existent case", func(t *testing.T) {
		repo := newRepo(t)

		err := repo.Case().Delete(context.Background(), 1000)
		gt.Error(t, err).Is(model.ErrCaseNotFound)
	})

	t.Run("Create fails when the case table is full", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		for i := 0; i < repo.Limits().MaxCases; i++ {
			_, err := repo.Case().Create(ctx, &model.Case{Title: "filler"})
			gt.NoError(t, err).Required()
		}

		_, err := repo.Case().Create(ctx, &model.Case{Title: "one too many"})
		gt.Error(t, err).Is(model.ErrCapacityExceeded)

		cases, err := repo.Case().List(ctx)
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(repo.Limits().MaxCases)
	})

	t.Run("ListByManager filters on assignment", func(t *testing.T) {
		repo := newRepo(t)
		ctx := context.Background()

		_, err := repo.Case().Create(ctx, &model.Case{Title: "alice only", AssignedManagers: []string{"Alice"}})
		gt.NoError(t, err).Required()
		_, err = repo.Case().Create(ctx, &model.Case{Title: "both", AssignedManagers: []string{"Bob", "Alice"}})
		gt.NoError(t, err).Required()
		_, err = repo.Case().Create(ctx, &model.Case{Title: "bob only", AssignedManagers: []string{"Bob"}})
		gt.NoError(t, err).Required()

		cases, err := repo.Case().ListByManager(ctx, "Alice")
		gt.NoError(t, err).Required()
		gt.Array(t, cases).Length(2).Required()
		gt.Value(t, cases[0].Title).Equal("alice only")
		gt.Value(t, cases[1].Title).Equal("both")
	})
}

func TestCaseRepository_Memory(t *testing.T) {
	runCaseRepositoryTest(t, func(t *testing.T) interfaces.Repository {
		return memory.New(memory.WithLimits(model.Limits{
			MaxCases:            5,
			MaxManagers:         3,
			MaxAssignedManagers: 2,
			MaxActions:          3,
		}))
	})
}
