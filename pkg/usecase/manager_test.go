package usecase_test

import (
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
)

func TestManagerUseCase_AddManager(t *testing.T) {
	t.Run("new managers start active", func(t *testing.T) {
		uc := newUseCases(t)
		m, err := uc.Manager.AddManager(adminCtx(), "Alice", "Fraud", "secret")
		gt.NoError(t, err).Required()
		gt.Bool(t, m.Active).True()
		gt.Value(t, m.Department).Equal("Fraud")
	})

	t.Run("duplicate name", func(t *testing.T) {
		uc := newUseCases(t)
		addManagers(t, uc, "Alice")
		_, err := uc.Manager.AddManager(adminCtx(), "Alice", "Other", "pw")
		gt.Error(t, err).Is(usecase.ErrManagerExists)
	})

	t.Run("names are case sensitive", func(t *testing.T) {
		uc := newUseCases(t)
		addManagers(t, uc, "Alice")
		_, err := uc.Manager.AddManager(adminCtx(), "alice", "Other", "pw")
		gt.NoError(t, err)
	})

	t.Run("table full", func(t *testing.T) {
		limits := model.DefaultLimits()
		limits.MaxManagers = 1
		uc := newUseCasesWithLimits(t, limits)
		addManagers(t, uc, "Alice")
		_, err := uc.Manager.AddManager(adminCtx(), "Bob", "", "pw")
		gt.Error(t, err).Is(usecase.ErrCapacityExceeded)
	})

	t.Run("name and password are required", func(t *testing.T) {
		uc := newUseCases(t)
		_, err := uc.Manager.AddManager(adminCtx(), "", "Fraud", "pw")
		gt.Error(t, err).Is(usecase.ErrInvalidInput)
		_, err = uc.Manager.AddManager(adminCtx(), "Alice", "Fraud", "")
		gt.Error(t, err).Is(usecase.ErrInvalidInput)
	})

	t.Run("managers cannot add managers", func(t *testing.T) {
		uc := newUseCases(t)
		_, err := uc.Manager.AddManager(managerCtx("Alice"), "Bob", "", "pw")
		gt.Error(t, err).Is(usecase.ErrPermissionDenied)
	})
}

func TestManagerUseCase_EditAndToggle(t *testing.T) {
	uc := newUseCases(t)
	addManagers(t, uc, "Alice")

	m, err := uc.Manager.EditManager(adminCtx(), "Alice", "")
	gt.NoError(t, err).Required()
	gt.Value(t, m.Department).Equal("Fraud")

	m, err = uc.Manager.EditManager(adminCtx(), "Alice", "Legal")
	gt.NoError(t, err).Required()
	gt.Value(t, m.Department).Equal("Legal")

	m, err = uc.Manager.ToggleManager(adminCtx(), "Alice")
	gt.NoError(t, err).Required()
	gt.Bool(t, m.Active).False()

	m, err = uc.Manager.ToggleManager(adminCtx(), "Alice")
	gt.NoError(t, err).Required()
	gt.Bool(t, m.Active).True()

	_, err = uc.Manager.ToggleManager(adminCtx(), "Nobody")
	gt.Error(t, err).Is(usecase.ErrManagerNotFound)

	_, err = uc.Manager.ListManagers(managerCtx("Alice"))
	gt.Error(t, err).Is(usecase.ErrPermissionDenied)
}

func TestManagerUseCase_DeleteManager(t *testing.T) {
	t.Run("assigned manager cannot be deleted", func(t *testing.T) {
		uc := newUseCases(t)
		addManagers(t, uc, "Alice")
		c := addCase(t, uc, "case")
		_, err := uc.Case.AssignManager(adminCtx(), c.ID, "Alice")
		gt.NoError(t, err).Required()

		err = uc.Manager.DeleteManager(adminCtx(), "Alice")
		gt.Error(t, err).Is(usecase.ErrManagerInUse)

		managers, err := uc.Manager.ListManagers(adminCtx())
		gt.NoError(t, err).Required()
		gt.Array(t, managers).Length(1)
	})

	t.Run("unreferenced manager is removed in order", func(t *testing.T) {
		uc := newUseCases(t)
		addManagers(t, uc, "Alice", "Bob", "Carol")

		gt.NoError(t, uc.Manager.DeleteManager(adminCtx(), "Bob")).Required()

		managers, err := uc.Manager.ListManagers(adminCtx())
		gt.NoError(t, err).Required()
		gt.Array(t, managers).Length(2).Required()
		gt.Value(t, managers[0].Name).Equal("Alice")
		gt.Value(t, managers[1].Name).Equal("Carol")
	})

	t.Run("unknown manager", func(t *testing.T) {
		uc := newUseCases(t)
		err := uc.Manager.DeleteManager(adminCtx(), "Nobody")
		gt.Error(t, err).Is(usecase.ErrManagerNotFound)
	})
}
