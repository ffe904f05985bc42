// Package shell implements the interactive console menus of casekeeper.
package shell

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/fatih/color"
	"github.com/google/uuid"
	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model/auth"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
	"github.com/secmon-lab/casekeeper/pkg/utils/errutil"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

// errQuit is returned by prompts when the input is exhausted
var errQuit = errors.New("input closed")

var (
	headingColor = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	errorColor   = color.New(color.FgRed, color.Bold)
)

// PasswordReader reads a secret without echoing it
type PasswordReader func() (string, error)

// Shell drives the use cases from a line-oriented console
type Shell struct {
	uc       *usecase.UseCases
	in       *bufio.Reader
	out      io.Writer
	password PasswordReader
}

type Option func(*Shell)

// WithPasswordReader replaces the default line reader used for passwords
func WithPasswordReader(r PasswordReader) Option {
	return func(s *Shell) {
		s.password = r
	}
}

func New(uc *usecase.UseCases, in io.Reader, out io.Writer, opts ...Option) *Shell {
	s := &Shell{
		uc:  uc,
		in:  bufio.NewReader(in),
		out: out,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Run shows the login menu until the user exits or input ends. State is
// saved after each logout and on exit.
func (s *Shell) Run(ctx context.Context) error {
	for {
		s.heading("Case Management System")
		s.println("1. Admin login")
		s.println("2. Manager login")
		s.println("3. Exit")

		choice, err := s.prompt("Choice")
		if errors.Is(err, errQuit) {
			return s.save(ctx)
		}
		if err != nil {
			return err
		}

		switch choice {
		case "1":
			err = s.login(ctx, s.uc.Auth.LoginAdmin, "Username")
		case "2":
			err = s.login(ctx, s.uc.Auth.LoginManager, "Manager name")
		case "3":
			s.println("Goodbye.")
			return s.save(ctx)
		default:
			s.failf("Invalid choice: %s", choice)
			continue
		}

		if errors.Is(err, errQuit) {
			return s.save(ctx)
		}
		if err != nil {
			return err
		}
	}
}

type loginFunc func(ctx context.Context, name, password string) (*auth.Principal, error)

func (s *Shell) login(ctx context.Context, login loginFunc, nameLabel string) error {
	name, err := s.prompt(nameLabel)
	if err != nil {
		return err
	}
	password, err := s.readPassword("Password")
	if err != nil {
		return err
	}

	p, err := login(ctx, name, password)
	if err != nil {
		s.fail(ctx, err)
		return nil
	}

	sessionID := uuid.Must(uuid.NewV7()).String()
	logger := logging.From(ctx).With("session_id", sessionID, "principal", p.Name, "role", p.Role.String())
	sessionCtx := auth.WithPrincipal(logging.With(ctx, logger), p)

	logger.Info("session started")
	s.success("Welcome, %s.", p.Name)

	quitErr := s.session(sessionCtx, p)
	if err := s.save(sessionCtx); err != nil {
		return err
	}
	logger.Info("session ended")
	return quitErr
}

// session runs the role menu until logout. It returns errQuit when input ends.
func (s *Shell) session(ctx context.Context, p *auth.Principal) error {
	ops := usecase.AllowedOperations(p.Role)
	title := "Admin Menu"
	if p.IsManager() {
		title = "Manager Menu"
	}

	for {
		s.heading(fmt.Sprintf("%s (%s)", title, p.Name))
		for i, op := range ops {
			s.printf("%d. %s\n", i+1, operationLabel(op))
		}
		s.println("0. Logout")

		choice, err := s.prompt("Choice")
		if err != nil {
			return err
		}
		if choice == "0" {
			s.println("Logged out.")
			return nil
		}

		n, err := strconv.Atoi(choice)
		if err != nil || n < 1 || n > len(ops) {
			s.failf("Invalid choice: %s", choice)
			continue
		}

		if err := s.dispatch(ctx, ops[n-1]); err != nil {
			if errors.Is(err, errQuit) {
				return err
			}
			s.fail(ctx, err)
		}
	}
}

func (s *Shell) save(ctx context.Context) error {
	if err := s.uc.Save(ctx); err != nil {
		return goerr.Wrap(err, "failed to save data")
	}
	return nil
}

// prompt writes label and reads one line with surrounding spaces trimmed
func (s *Shell) prompt(label string) (string, error) {
	s.printf("%s: ", label)
	line, err := s.in.ReadString('\n')
	if err != nil && !(errors.Is(err, io.EOF) && line != "") {
		if errors.Is(err, io.EOF) {
			s.println("")
			return "", errQuit
		}
		return "", goerr.Wrap(err, "failed to read input")
	}
	return strings.TrimSpace(line), nil
}

func (s *Shell) readPassword(label string) (string, error) {
	if s.password == nil {
		return s.prompt(label)
	}
	s.printf("%s: ", label)
	password, err := s.password()
	s.println("")
	if err != nil {
		return "", goerr.Wrap(err, "failed to read password")
	}
	return password, nil
}

// promptCaseID reads a case id. A malformed id is reported as invalid input.
func (s *Shell) promptCaseID() (int64, error) {
	raw, err := s.prompt("Case ID")
	if err != nil {
		return 0, err
	}
	id, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		return 0, goerr.Wrap(usecase.ErrInvalidInput, "case ID must be a number", goerr.V("input", raw))
	}
	return id, nil
}

func (s *Shell) heading(text string) {
	s.println("")
	_, _ = headingColor.Fprintf(s.out, "=== %s ===\n", text)
}

func (s *Shell) success(format string, args ...any) {
	_, _ = successColor.Fprintf(s.out, format+"\n", args...)
}

func (s *Shell) failf(format string, args ...any) {
	_, _ = errorColor.Fprintf(s.out, format+"\n", args...)
}

// fail logs err with its context and shows a short message to the user
func (s *Shell) fail(ctx context.Context, err error) {
	_ = errutil.Handle(ctx, err, "operation failed")
	s.failf("Error: %s", describe(err))
}

func (s *Shell) println(text string) {
	_, _ = fmt.Fprintln(s.out, text)
}

func (s *Shell) printf(format string, args ...any) {
	_, _ = fmt.Fprintf(s.out, format, args...)
}

// describe maps well-known failures to a message for the console
func describe(err error) string {
	known := []struct {
		target error
		msg    string
	}{
		{usecase.ErrNotAuthenticated, "login required"},
		{usecase.ErrAuthenticationFailed, "invalid credentials"},
		{usecase.ErrCredentialsUnavailable, "admin credentials file is not available"},
		{usecase.ErrPermissionDenied, "permission denied"},
		{usecase.ErrCaseNotFound, "case not found"},
		{usecase.ErrManagerNotFound, "manager not found"},
		{usecase.ErrCapacityExceeded, "capacity exceeded"},
		{usecase.ErrAlreadyAssigned, "manager is already assigned to this case"},
		{usecase.ErrCaseAlreadyClosed, "case is already closed"},
		{usecase.ErrManagerExists, "manager already exists"},
		{usecase.ErrAdminExists, "admin already exists"},
		{usecase.ErrManagerInUse, "manager is still assigned to a case"},
		{usecase.ErrManagerInactive, "manager is inactive"},
		{usecase.ErrNoCases, "no cases to report"},
		{usecase.ErrInvalidInput, "invalid input"},
	}
	for _, k := range known {
		if errors.Is(err, k.target) {
			return k.msg
		}
	}
	return err.Error()
}
