package textfile

import (
	"bytes"
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/secmon-lab/casekeeper/pkg/utils/errutil"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
	"github.com/secmon-lab/casekeeper/pkg/utils/safe"
)

// DefaultPath is the data file used when none is configured
const DefaultPath = "casekeeper.txt"

// Store loads and saves snapshots from a single data file
type Store struct {
	path   string
	limits model.Limits
}

var _ interfaces.SnapshotStore = &Store{}

// New creates a data file store. An empty path selects DefaultPath.
func New(path string, limits model.Limits) *Store {
	if path == "" {
		path = DefaultPath
	}
	return &Store{path: path, limits: limits}
}

// Path returns the data file path
func (s *Store) Path() string {
	return s.path
}

// Load reads the data file. A missing file yields an empty snapshot.
// Parse diagnostics are logged and do not fail the load.
func (s *Store) Load(ctx context.Context) (*model.Snapshot, error) {
	snap, diags, err := s.Inspect(ctx)
	if err != nil {
		return nil, err
	}
	for _, diag := range diags {
		errutil.Warn(ctx, diag, "skipped malformed data")
	}

	logging.From(ctx).Info("Loaded data file",
		"path", s.path,
		"managers", len(snap.Managers),
		"cases", len(snap.Cases),
		"next_case_id", snap.NextCaseID,
	)
	return snap, nil
}

// Inspect reads the data file and returns the diagnostics instead of logging them
func (s *Store) Inspect(ctx context.Context) (*model.Snapshot, []error, error) {
	// #nosec G304 - path is provided by CLI flag
	f, err := os.Open(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		logging.From(ctx).Info("No existing data file found, starting empty", "path", s.path)
		return model.NewSnapshot(), nil, nil
	}
	if err != nil {
		return nil, nil, goerr.Wrap(err, "failed to open data file", goerr.V("path", s.path))
	}
	defer safe.Close(ctx, f)

	snap, diags, err := Decode(f, s.limits)
	if err != nil {
		return nil, diags, goerr.Wrap(err, "failed to decode data file", goerr.V("path", s.path))
	}
	return snap, diags, nil
}

// Save writes the snapshot atomically: a temporary file in the same
// directory is renamed over the data file.
func (s *Store) Save(ctx context.Context, snap *model.Snapshot) error {
	var buf bytes.Buffer
	if err := Encode(&buf, snap); err != nil {
		return goerr.Wrap(err, "failed to encode data")
	}

	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return goerr.Wrap(err, "failed to create data directory", goerr.V("dir", dir))
	}

	tmp, err := os.CreateTemp(dir, ".casekeeper-*.tmp")
	if err != nil {
		return goerr.Wrap(err, "failed to create temporary file", goerr.V("dir", dir))
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(buf.Bytes()); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to write temporary file", goerr.V("path", tmp.Name()))
	}
	if err := tmp.Sync(); err != nil {
		_ = tmp.Close()
		return goerr.Wrap(err, "failed to sync temporary file", goerr.V("path", tmp.Name()))
	}
	if err := tmp.Close(); err != nil {
		return goerr.Wrap(err, "failed to close temporary file", goerr.V("path", tmp.Name()))
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return goerr.Wrap(err, "failed to replace data file", goerr.V("path", s.path))
	}

	logging.From(ctx).Info("Saved data file",
		"path", s.path,
		"managers", len(snap.Managers),
		"cases", len(snap.Cases),
	)
	return nil
}
