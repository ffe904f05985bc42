package credfile_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/repository/credfile"
)

func TestStore_Verify(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.txt")
	content := "root:toor\nnocolon\nops:pa:ss\n"
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()

	store := credfile.New(path)
	ctx := context.Background()

	tests := []struct {
		name     string
		user     string
		password string
		want     bool
	}{
		{name: "exact match", user: "root", password: "toor", want: true},
		{name: "wrong password", user: "root", password: "root", want: false},
		{name: "password keeps later colons", user: "ops", password: "pa:ss", want: true},
		{name: "line without colon is ignored", user: "nocolon", password: "", want: false},
		{name: "unknown user", user: "alice", password: "toor", want: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ok, err := store.Verify(ctx, tt.user, tt.password)
			gt.NoError(t, err).Required()
			gt.Value(t, ok).Equal(tt.want)
		})
	}
}

func TestStore_MissingFile(t *testing.T) {
	store := credfile.New(filepath.Join(t.TempDir(), "absent.txt"))
	ctx := context.Background()

	ok, err := store.Verify(ctx, "root", "toor")
	gt.Error(t, err).Is(credfile.ErrUnavailable)
	gt.Bool(t, ok).False()

	exists, err := store.Exists(ctx, "root")
	gt.NoError(t, err)
	gt.Bool(t, exists).False()
}

func TestStore_Add(t *testing.T) {
	path := filepath.Join(t.TempDir(), "creds", "admins.txt")
	store := credfile.New(path)
	ctx := context.Background()

	gt.NoError(t, store.Add(ctx, "root", "toor")).Required()
	gt.NoError(t, store.Add(ctx, "second", "pw")).Required()

	ok, err := store.Verify(ctx, "second", "pw")
	gt.NoError(t, err).Required()
	gt.Bool(t, ok).True()

	exists, err := store.Exists(ctx, "root")
	gt.NoError(t, err).Required()
	gt.Bool(t, exists).True()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.Value(t, string(data)).Equal("root:toor\nsecond:pw\n")

	gt.Error(t, store.Add(ctx, "bad:name", "pw"))
	gt.Error(t, store.Add(ctx, "empty", ""))
}

func TestStore_AddAfterUnterminatedLine(t *testing.T) {
	path := filepath.Join(t.TempDir(), "admins.txt")
	gt.NoError(t, os.WriteFile(path, []byte("root:toor"), 0o600)).Required()

	store := credfile.New(path)
	ctx := context.Background()
	gt.NoError(t, store.Add(ctx, "second", "pw")).Required()

	data, err := os.ReadFile(path)
	gt.NoError(t, err).Required()
	gt.Value(t, string(data)).Equal("root:toor\nsecond:pw\n")

	for _, cred := range [][2]string{{"root", "toor"}, {"second", "pw"}} {
		ok, err := store.Verify(ctx, cred[0], cred[1])
		gt.NoError(t, err).Required()
		gt.Bool(t, ok).True()
	}
}
