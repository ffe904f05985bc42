package config_test

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/m-mizutani/gt"
	"github.com/secmon-lab/casekeeper/pkg/cli/config"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "casekeeper.toml")
	gt.NoError(t, os.WriteFile(path, []byte(content), 0o600)).Required()
	return path
}

func TestPolicy_Configure(t *testing.T) {
	tests := []struct {
		name    string
		content string
		want    model.Limits
		wantErr error
	}{
		{
			name: "full limits",
			content: `
[limits]
max_cases = 10
max_managers = 4
max_assigned_managers = 2
max_actions = 8
`,
			want: model.Limits{MaxCases: 10, MaxManagers: 4, MaxAssignedManagers: 2, MaxActions: 8},
		},
		{
			name: "missing values keep defaults",
			content: `
[limits]
max_actions = 200
`,
			want: model.Limits{
				MaxCases:            model.DefaultMaxCases,
				MaxManagers:         model.DefaultMaxManagers,
				MaxAssignedManagers: model.DefaultMaxAssignedManagers,
				MaxActions:          200,
			},
		},
		{
			name:    "empty file keeps defaults",
			content: ``,
			want:    model.DefaultLimits(),
		},
		{
			name: "zero is rejected",
			content: `
[limits]
max_cases = 0
`,
			wantErr: config.ErrInvalidLimit,
		},
		{
			name: "negative is rejected",
			content: `
[limits]
max_assigned_managers = -1
`,
			wantErr: config.ErrInvalidLimit,
		},
		{
			name:    "malformed toml",
			content: `[limits`,
			wantErr: config.ErrInvalidConfig,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			policy := config.NewPolicyForTest(writeConfig(t, tt.content))
			limits, err := policy.Configure()
			if tt.wantErr != nil {
				gt.Error(t, err).Is(tt.wantErr)
				return
			}
			gt.NoError(t, err).Required()
			gt.Value(t, limits).Equal(tt.want)
		})
	}
}

func TestPolicy_NoPath(t *testing.T) {
	limits, err := config.NewPolicyForTest("").Configure()
	gt.NoError(t, err).Required()
	gt.Value(t, limits).Equal(model.DefaultLimits())
}

func TestPolicy_MissingFile(t *testing.T) {
	policy := config.NewPolicyForTest(filepath.Join(t.TempDir(), "nope.toml"))
	_, err := policy.Configure()
	gt.Error(t, err).Is(config.ErrConfigNotFound)
}
