package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"

	"github.com/m-mizutani/goerr/v2"
	"github.com/pelletier/go-toml/v2"
	"github.com/secmon-lab/casekeeper/pkg/domain/model"
	"github.com/urfave/cli/v3"
)

// PolicyFile represents the optional TOML policy file
type PolicyFile struct {
	Limits LimitsConfig `toml:"limits"`
}

// LimitsConfig overrides capacity limits. Unset values keep the defaults.
type LimitsConfig struct {
	MaxCases            *int `toml:"max_cases"`
	MaxManagers         *int `toml:"max_managers"`
	MaxAssignedManagers *int `toml:"max_assigned_managers"`
	MaxActions          *int `toml:"max_actions"`
}

// Validate checks that every set limit is positive
func (l *LimitsConfig) Validate() error {
	checks := []struct {
		name  string
		value *int
	}{
		{"max_cases", l.MaxCases},
		{"max_managers", l.MaxManagers},
		{"max_assigned_managers", l.MaxAssignedManagers},
		{"max_actions", l.MaxActions},
	}
	for _, c := range checks {
		if c.value != nil && *c.value <= 0 {
			return goerr.Wrap(ErrInvalidLimit, "limit must be positive",
				goerr.V(LimitNameKey, c.name),
				goerr.V("value", *c.value))
		}
	}
	return nil
}

// ToLimits merges the configured values over model.DefaultLimits
func (l *LimitsConfig) ToLimits() model.Limits {
	limits := model.DefaultLimits()
	if l.MaxCases != nil {
		limits.MaxCases = *l.MaxCases
	}
	if l.MaxManagers != nil {
		limits.MaxManagers = *l.MaxManagers
	}
	if l.MaxAssignedManagers != nil {
		limits.MaxAssignedManagers = *l.MaxAssignedManagers
	}
	if l.MaxActions != nil {
		limits.MaxActions = *l.MaxActions
	}
	return limits
}

// LoadPolicyFile loads the policy from a TOML file
func LoadPolicyFile(path string) (*PolicyFile, error) {
	// #nosec G304 - path is expected to be provided by CLI argument
	data, err := os.ReadFile(path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil, goerr.Wrap(ErrConfigNotFound, "policy file not found", goerr.V(ConfigPathKey, path))
	}
	if err != nil {
		return nil, goerr.Wrap(err, "failed to read config file", goerr.V(ConfigPathKey, path))
	}

	var policy PolicyFile
	if err := toml.Unmarshal(data, &policy); err != nil {
		return nil, goerr.Wrap(ErrInvalidConfig, "failed to parse TOML config",
			goerr.V(ConfigPathKey, path),
			goerr.V("error", err.Error()))
	}

	if err := policy.Limits.Validate(); err != nil {
		return nil, goerr.Wrap(err, "config validation failed", goerr.V(ConfigPathKey, path))
	}

	return &policy, nil
}

// Policy holds CLI flags for the policy file
type Policy struct {
	path string
}

// Flags returns CLI flags for policy configuration
func (p *Policy) Flags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{
			Name:        "config",
			Aliases:     []string{"c"},
			Usage:       "Path to the TOML policy file (optional)",
			Sources:     cli.EnvVars("CASEKEEPER_CONFIG"),
			Destination: &p.path,
		},
	}
}

// LogValue implements slog.LogValuer
func (p *Policy) LogValue() slog.Value {
	return slog.GroupValue(slog.String("path", p.path))
}

// Configure returns the capacity limits. Without a policy file the defaults apply.
func (p *Policy) Configure() (model.Limits, error) {
	if p.path == "" {
		return model.DefaultLimits(), nil
	}

	policy, err := LoadPolicyFile(p.path)
	if err != nil {
		return model.Limits{}, err
	}

	limits := policy.Limits.ToLimits()
	if err := limits.Validate(); err != nil {
		return model.Limits{}, goerr.Wrap(err, "invalid limits", goerr.V(ConfigPathKey, p.path))
	}
	return limits, nil
}
