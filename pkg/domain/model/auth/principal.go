package auth

import (
	"context"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
)

// ErrNoPrincipal is returned when the context carries no authenticated principal
var ErrNoPrincipal = goerr.New("no principal in context")

// Principal is the authenticated user driving the current session
type Principal struct {
	Name string
	Role types.Role
}

// NewPrincipal creates a principal
func NewPrincipal(name string, role types.Role) *Principal {
	return &Principal{Name: name, Role: role}
}

// IsAdmin reports whether the principal holds the admin role
func (p *Principal) IsAdmin() bool {
	return p.Role == types.RoleAdmin
}

// IsManager reports whether the principal holds the manager role
func (p *Principal) IsManager() bool {
	return p.Role == types.RoleManager
}

type principalContextKey struct{}

// WithPrincipal returns a copy of ctx carrying p
func WithPrincipal(ctx context.Context, p *Principal) context.Context {
	return context.WithValue(ctx, principalContextKey{}, p)
}

// PrincipalFromContext retrieves the principal stored by WithPrincipal
func PrincipalFromContext(ctx context.Context) (*Principal, error) {
	p, ok := ctx.Value(principalContextKey{}).(*Principal)
	if !ok || p == nil {
		return nil, ErrNoPrincipal
	}
	return p, nil
}
