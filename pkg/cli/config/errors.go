package config

import "github.com/m-mizutani/goerr/v2"

// Sentinel errors for configuration validation
var (
	ErrConfigNotFound = goerr.New("configuration file not found")
	ErrInvalidConfig  = goerr.New("invalid configuration")
	ErrInvalidLimit   = goerr.New("limit must be positive")
	ErrUnknownSink    = goerr.New("unknown report sink")
	ErrMissingBucket  = goerr.New("bucket is required for the report sink")
	ErrInvalidLogFlag = goerr.New("invalid logger option")
)

// Context keys for error values
const (
	ConfigPathKey = "config_path"
	LimitNameKey  = "limit"
	SinkKey       = "sink"
	FlagKey       = "flag"
)
