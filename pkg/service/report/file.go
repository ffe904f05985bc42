package report

import (
	"context"
	"os"
	"path/filepath"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/interfaces"
)

// FileSink writes reports into a local directory
type FileSink struct {
	dir string
}

var _ interfaces.ReportSink = &FileSink{}

// NewFileSink creates a sink writing into dir. An empty dir means the
// working directory.
func NewFileSink(dir string) *FileSink {
	if dir == "" {
		dir = "."
	}
	return &FileSink{dir: dir}
}

func (s *FileSink) Put(ctx context.Context, name string, body []byte) (string, error) {
	if name == "" || filepath.Base(name) != name {
		return "", goerr.New("invalid report name", goerr.V("name", name))
	}
	if err := os.MkdirAll(s.dir, 0o750); err != nil {
		return "", goerr.Wrap(err, "failed to create report directory", goerr.V("dir", s.dir))
	}

	path := filepath.Join(s.dir, name)
	if err := os.WriteFile(path, body, 0o600); err != nil {
		return "", goerr.Wrap(err, "failed to write report", goerr.V("path", path))
	}
	return path, nil
}
