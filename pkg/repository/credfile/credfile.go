// Package credfile stores admin credentials as `username:password` lines.
package credfile

import (
	"bufio"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
)

// DefaultPath is the credentials file used when none is configured
const DefaultPath = "admins.txt"

// ErrUnavailable is returned when the credentials file does not exist
var ErrUnavailable = model.ErrCredentialsUnavailable

// Store is a plaintext, append-only credentials file
type Store struct {
	path string
}

var _ interfaces.CredentialStore = &Store{}

// New creates a credentials store. An empty path selects DefaultPath.
func New(path string) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path}
}

// Path returns the credentials file path
func (s *Store) Path() string {
	return s.path
}

type credential struct {
	username string
	password string
}

// scan calls fn for each well-formed line until fn returns true.
// Lines without a colon are ignored; the password is everything after the first colon.
func (s *Store) scan(ctx context.Context, fn func(credential) bool) error {
	// #nosec G304 - path is provided by CLI flag
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return goerr.Wrap(ErrUnavailable, "cannot read credentials", goerr.V("path", s.path))
	}
	if err != nil {
		return goerr.Wrap(err, "failed to open credentials file", goerr.V("path", s.path))
	}
	defer safe.Close(ctx, f)

	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSuffix(scanner.Text(), "\r")
		username, password, ok := strings.Cut(line, ":")
		if !ok {
			continue
		}
		if fn(credential{username: username, password: password}) {
			return nil
		}
	}
	if err := scanner.Err(); err != nil {
		return goerr.Wrap(err, "failed to read credentials file", goerr.V("path", s.path))
	}
	return nil
}

func (s *Store) Verify(ctx context.Context, username, password string) (bool, error) {
	matched := false
	err := s.scan(ctx, func(c credential) bool {
		matched = c.username == username && c.password == password
		return matched
	})
	return matched, err
}

func (s *Store) Exists(ctx context.Context, username string) (bool, error) {
	found := false
	err := s.scan(ctx, func(c credential) bool {
		found = c.username == username
		return found
	})
	if errors.Is(err, ErrUnavailable) {
		return false, nil
	}
	return found, err
}

func (s *Store) Add(ctx context.Context, username, password string) error {
	if username == "" || strings.ContainsAny(username, ":\r\n") {
		return goerr.Wrap(model.ErrInvalidInput, "invalid admin username", goerr.V("username", username))
	}
	if password == "" || strings.ContainsAny(password, "\r\n") {
		return goerr.Wrap(model.ErrInvalidInput, "invalid admin password", goerr.V("username", username))
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return goerr.Wrap(err, "failed to create credentials directory", goerr.V("dir", dir))
		}
	}

	// #nosec G304 - path is provided by CLI flag
	f, err := os.OpenFile(s.path, os.O_APPEND|os.O_CREATE|os.O_RDWR, 0o600)
	if err != nil {
		return goerr.Wrap(err, "failed to open credentials file", goerr.V("path", s.path))
	}
	defer safe.Close(ctx, f)

	line := username + ":" + password + "\n"
	terminated, err := endsWithNewline(f)
	if err != nil {
		return goerr.Wrap(err, "failed to inspect credentials file", goerr.V("path", s.path))
	}
	if !terminated {
		line = "\n" + line
	}

	if _, err := f.WriteString(line); err != nil {
		return goerr.Wrap(err, "failed to append credential", goerr.V("path", s.path))
	}
	return nil
}

// endsWithNewline reports whether f is empty or its last byte is a newline
func endsWithNewline(f *os.File) (bool, error) {
	info, err := f.Stat()
	if err != nil {
		return false, err
	}
	if info.Size() == 0 {
		return true, nil
	}
	last := make([]byte, 1)
	if _, err := f.ReadAt(last, info.Size()-1); err != nil {
		return false, err
	}
	return last[0] == '\n', nil
}
