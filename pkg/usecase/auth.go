package usecase

import (
	"context"
	"errors"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/model/auth"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

type AuthUseCase struct {
	repo        interfaces.Repository
	credentials interfaces.CredentialStore
}

func NewAuthUseCase(repo interfaces.Repository, credentials interfaces.CredentialStore) *AuthUseCase {
	return &AuthUseCase{
		repo:        repo,
		credentials: credentials,
	}
}

// LoginAdmin checks the pair against the credentials store
func (uc *AuthUseCase) LoginAdmin(ctx context.Context, username, password string) (*auth.Principal, error) {
	if uc.credentials == nil {
		return nil, goerr.Wrap(ErrCredentialsUnavailable, "no credentials store configured")
	}

	ok, err := uc.credentials.Verify(ctx, username, password)
	if err != nil {
		if errors.Is(err, ErrCredentialsUnavailable) {
			return nil, err
		}
		return nil, goerr.Wrap(err, "failed to verify admin credentials", goerr.V(UsernameKey, username))
	}
	if !ok {
		logging.From(ctx).Warn("admin login failed", "username", username)
		return nil, goerr.Wrap(ErrAuthenticationFailed, "invalid admin credentials", goerr.V(UsernameKey, username))
	}

	logging.From(ctx).Info("admin logged in", "username", username)
	return auth.NewPrincipal(username, types.RoleAdmin), nil
}

// LoginManager authenticates an active manager. Unknown names, wrong
// passwords and inactive managers all fail the same way.
func (uc *AuthUseCase) LoginManager(ctx context.Context, name, password string) (*auth.Principal, error) {
	m, err := uc.repo.Manager().Get(ctx, name)
	if err != nil && !errors.Is(err, model.ErrManagerNotFound) {
		return nil, goerr.Wrap(err, "failed to get manager", goerr.V(ManagerKey, name))
	}
	if m == nil || !m.Active || m.Password != password {
		logging.From(ctx).Warn("manager login failed", "manager", name)
		return nil, goerr.Wrap(ErrAuthenticationFailed, "invalid manager credentials", goerr.V(ManagerKey, name))
	}

	logging.From(ctx).Info("manager logged in", "manager", name)
	return auth.NewPrincipal(m.Name, types.RoleManager), nil
}

// AddAdmin appends a new admin credential. The caller must be an admin.
func (uc *AuthUseCase) AddAdmin(ctx context.Context, username, password string) error {
	p, err := principal(ctx, OpAddAdmin)
	if err != nil {
		return err
	}
	return uc.addAdmin(ctx, username, password, p.Name)
}

// Bootstrap adds an admin without a logged in principal. It is meant for
// creating the first admin from the command line.
func (uc *AuthUseCase) Bootstrap(ctx context.Context, username, password string) error {
	return uc.addAdmin(ctx, username, password, "bootstrap")
}

func (uc *AuthUseCase) addAdmin(ctx context.Context, username, password, by string) error {
	if uc.credentials == nil {
		return goerr.Wrap(ErrCredentialsUnavailable, "no credentials store configured")
	}
	if username == "" || password == "" {
		return goerr.Wrap(ErrInvalidInput, "admin username and password are required")
	}

	exists, err := uc.credentials.Exists(ctx, username)
	if err != nil {
		return goerr.Wrap(err, "failed to look up admin", goerr.V(UsernameKey, username))
	}
	if exists {
		return goerr.Wrap(ErrAdminExists, "admin already exists", goerr.V(UsernameKey, username))
	}

	if err := uc.credentials.Add(ctx, username, password); err != nil {
		return goerr.Wrap(err, "failed to add admin", goerr.V(UsernameKey, username))
	}

	logging.From(ctx).Info("admin added", "username", username, "by", by)
	return nil
}
