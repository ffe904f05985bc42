package interfaces

import "context"

// CredentialStore holds admin username/password pairs
type CredentialStore interface {
	// Verify reports whether the pair matches a stored credential
	Verify(ctx context.Context, username, password string) (bool, error)

	// Exists reports whether the username has a stored credential
	Exists(ctx context.Context, username string) (bool, error)

	// Add appends a credential
	Add(ctx context.Context, username, password string) error
}
