package usecase

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/model/auth"
)

// principal returns the caller and checks it may request op
func principal(ctx context.Context, op Operation) (*auth.Principal, error) {
	p, err := auth.PrincipalFromContext(ctx)
	if err != nil {
		return nil, goerr.Wrap(ErrNotAuthenticated, "login required", goerr.V(OperationKey, op.String()))
	}
	if err := authorize(p, op); err != nil {
		return nil, err
	}
	return p, nil
}

// requireAccess fails unless the principal can see c
func requireAccess(p *auth.Principal, c *model.Case) error {
	if !model.IsCaseAccessible(c, p.Name, p.Role) {
		return goerr.Wrap(ErrPermissionDenied, "case is not assigned to the manager",
			goerr.V(CaseIDKey, c.ID),
			goerr.V(ManagerKey, p.Name))
	}
	return nil
}

// visibleCases filters cases down to the ones p can see
func visibleCases(p *auth.Principal, cases []*model.Case) []*model.Case {
	visible := make([]*model.Case, 0, len(cases))
	for _, c := range cases {
		if model.IsCaseAccessible(c, p.Name, p.Role) {
			visible = append(visible, c)
		}
	}
	return visible
}
