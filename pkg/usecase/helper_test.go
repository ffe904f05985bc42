package usecase_test

import (
	"context"
	"testing"
	"time"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/model/auth"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
	"github.com/secmon-lab/casekeeper/pkg/repository/memory"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
	"github.com/secmon-lab/casekeeper/pkg/utils/clock"
)

var testNow = time.Date(2026, 10, 19, 9, 30, 0, 0, time.UTC)

func baseCtx() context.Context {
	return clock.With(context.Background(), clock.Fixed(testNow))
}

func adminCtx() context.Context {
	return auth.WithPrincipal(baseCtx(), auth.NewPrincipal("root", types.RoleAdmin))
}

func managerCtx(name string) context.Context {
	return auth.WithPrincipal(baseCtx(), auth.NewPrincipal(name, types.RoleManager))
}

func newUseCases(t *testing.T, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	return usecase.New(memory.New(), opts...)
}

func newUseCasesWithLimits(t *testing.T, limits model.Limits, opts ...usecase.Option) *usecase.UseCases {
	t.Helper()
	return usecase.New(memory.New(memory.WithLimits(limits)), opts...)
}

func addManagers(t *testing.T, uc *usecase.UseCases, names ...string) {
	t.Helper()
	for _, name := range names {
		_, err := uc.Manager.AddManager(adminCtx(), name, "Fraud", name+"-pw")
		gt.NoError(t, err).Required()
	}
}

func addCase(t *testing.T, uc *usecase.UseCases, title string) *model.Case {
	t.Helper()
	c, err := uc.Case.CreateCase(adminCtx(), title, "description", "Hotline")
	gt.NoError(t, err).Required()
	return c
}
