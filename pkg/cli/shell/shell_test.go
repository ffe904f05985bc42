package shell_test

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/cli/shell"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/domain/types"
	"github.com/secmon-lab/casekeeper/pkg/repository/credfile"
	"github.com/secmon-lab/casekeeper/pkg/repository/memory"
	"github.com/secmon-lab/casekeeper/pkg/repository/textfile"
	"github.com/secmon-lab/casekeeper/pkg/usecase"
)

type fixture struct {
	store *textfile.Store
	uc    *usecase.UseCases
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	dir := t.TempDir()
	credPath := filepath.Join(dir, "admins.txt")
	gt.NoError(t, os.WriteFile(credPath, []byte("root:toor\n"), 0o600)).Required()

	store := textfile.New(filepath.Join(dir, "casekeeper.txt"), model.DefaultLimits())
	uc := usecase.New(memory.New(),
		usecase.WithSnapshotStore(store),
		usecase.WithCredentialStore(credfile.New(credPath)),
		usecase.WithReportSink(&recordingSink{}),
	)
	gt.NoError(t, uc.Load(context.Background())).Required()
	return &fixture{store: store, uc: uc}
}

type recordingSink struct{}

func (s *recordingSink) Put(ctx context.Context, name string, body []byte) (string, error) {
	return "mem://" + name, nil
}

// menu returns the menu number of op for role
func menu(t *testing.T, role types.Role, op usecase.Operation) string {
	t.Helper()
	for i, allowed := range usecase.AllowedOperations(role) {
		if allowed == op {
			return strconv.Itoa(i + 1)
		}
	}
	t.Fatalf("operation %s not allowed for %s", op, role)
	return ""
}

func script(lines ...string) *strings.Reader {
	return strings.NewReader(strings.Join(lines, "\n") + "\n")
}

func (f *fixture) run(t *testing.T, in *strings.Reader) string {
	t.Helper()
	var out bytes.Buffer
	sh := shell.New(f.uc, in, &out)
	gt.NoError(t, sh.Run(context.Background())).Required()
	return out.String()
}

func TestShell_ExampleFlow(t *testing.T) {
	f := newFixture(t)
	admin := func(op usecase.Operation) string { return menu(t, types.RoleAdmin, op) }
	manager := func(op usecase.Operation) string { return menu(t, types.RoleManager, op) }

	out := f.run(t, script(
		"1", "root", "toor",
		admin(usecase.OpAddManager), "Alice", "Fraud", "alice-pw",
		admin(usecase.OpAddCase), "Theft report", "Laptop stolen", "Hotline",
		admin(usecase.OpAssignManager), "1000", "Alice",
		"0",
		"2", "Alice", "alice-pw",
		manager(usecase.OpAppendAction), "1000", "Interviewed witness",
		manager(usecase.OpViewCase), "1000",
		manager(usecase.OpCloseCase), "1000",
		manager(usecase.OpCloseCase), "1000",
		"0",
		"3",
	))

	gt.S(t, out).Contains("Welcome, root.")
	gt.S(t, out).Contains("Manager Alice added.")
	gt.S(t, out).Contains("Case 1000 created.")
	gt.S(t, out).Contains("Manager Alice assigned to case 1000. Status: Assigned")
	gt.S(t, out).Contains("Action added to case 1000. Status: In Progress")
	gt.S(t, out).Contains("Interviewed witness")
	gt.S(t, out).Contains("Case 1000 closed.")
	gt.S(t, out).Contains("Error: case is already closed")
	gt.S(t, out).Contains("Goodbye.")

	snap, err := f.store.Load(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, snap.Cases).Length(1).Required()
	gt.Value(t, snap.Cases[0].Status).Equal(types.CaseStatusClosed)
	gt.Value(t, snap.Cases[0].AssignedManagers).Equal([]string{"Alice"})
	gt.Array(t, snap.Cases[0].Actions).Length(1).Required()
	gt.Value(t, snap.Cases[0].Actions[0].Manager).Equal("Alice")
	gt.Value(t, snap.NextCaseID).Equal(int64(1001))
}

func TestShell_LoginFailures(t *testing.T) {
	f := newFixture(t)

	out := f.run(t, script(
		"1", "root", "wrong",
		"2", "Nobody", "pw",
		"9",
		"3",
	))

	gt.Value(t, strings.Count(out, "Error: invalid credentials")).Equal(2)
	gt.S(t, out).Contains("Invalid choice: 9")
}

func TestShell_ManagerVisibility(t *testing.T) {
	f := newFixture(t)
	admin := func(op usecase.Operation) string { return menu(t, types.RoleAdmin, op) }

	out := f.run(t, script(
		"1", "root", "toor",
		admin(usecase.OpAddManager), "Alice", "Fraud", "alice-pw",
		admin(usecase.OpAddCase), "Hidden", "", "",
		"0",
		"2", "Alice", "alice-pw",
		menu(t, types.RoleManager, usecase.OpViewCase), "1000",
		menu(t, types.RoleManager, usecase.OpListCases),
		"0",
		"3",
	))

	gt.S(t, out).Contains("=== Manager Menu (Alice) ===")
	gt.S(t, out).Contains("Error: permission denied")
	gt.S(t, out).Contains("No cases found.")
}

func TestShell_ManagerMenuIsRestricted(t *testing.T) {
	f := newFixture(t)
	admin := func(op usecase.Operation) string { return menu(t, types.RoleAdmin, op) }

	out := f.run(t, script(
		"1", "root", "toor",
		admin(usecase.OpAddManager), "Alice", "Fraud", "alice-pw",
		"0",
		"2", "Alice", "alice-pw",
		"0",
		"3",
	))

	managerMenu := out[strings.Index(out, "=== Manager Menu"):]
	gt.Bool(t, strings.Contains(managerMenu, "Add manager")).False()
	gt.Bool(t, strings.Contains(managerMenu, "Delete case")).False()
	gt.S(t, managerMenu).Contains("Add action to case")
}

func TestShell_EndOfInputSaves(t *testing.T) {
	f := newFixture(t)
	admin := func(op usecase.Operation) string { return menu(t, types.RoleAdmin, op) }

	// input ends in the middle of the admin session
	f.run(t, script(
		"1", "root", "toor",
		admin(usecase.OpAddCase), "Theft report", "", "Hotline",
	))

	snap, err := f.store.Load(context.Background())
	gt.NoError(t, err).Required()
	gt.Array(t, snap.Cases).Length(1)
}

func TestShell_ReportAndTables(t *testing.T) {
	f := newFixture(t)
	admin := func(op usecase.Operation) string { return menu(t, types.RoleAdmin, op) }

	out := f.run(t, script(
		"1", "root", "toor",
		admin(usecase.OpGenerateReport),
		admin(usecase.OpAddManager), "Alice", "Fraud", "alice-pw",
		admin(usecase.OpListManagers),
		admin(usecase.OpAddCase), "Theft report", "", "Hotline",
		admin(usecase.OpListCases),
		admin(usecase.OpGenerateReport),
		"0",
		"3",
	))

	gt.S(t, out).Contains("Error: no cases to report")
	gt.S(t, out).Contains("Fraud")
	gt.Bool(t, strings.Contains(out, "alice-pw")).False()
	gt.S(t, out).Contains("Theft report")
	gt.S(t, out).Contains("Report generated: mem://case_report_")
}

func TestShell_PasswordReader(t *testing.T) {
	f := newFixture(t)
	var out bytes.Buffer
	sh := shell.New(f.uc, script("1", "root", "0", "3"), &out,
		shell.WithPasswordReader(func() (string, error) { return "toor", nil }))

	gt.NoError(t, sh.Run(context.Background())).Required()
	gt.S(t, out.String()).Contains("Welcome, root.")
}
