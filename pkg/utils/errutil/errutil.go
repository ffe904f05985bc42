package errutil

import (
	"context"
	"errors"
	"log/slog"

	"github.com/m-mizutani/goerr/v2"
	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

// Handle logs the error at error level with its goerr values and stack, and
// returns it unchanged so callers can keep propagating or rendering it.
func Handle(ctx context.Context, err error, msg string) error {
	if err == nil {
		return nil
	}
	logging.From(ctx).Error(msg, attrs(err, true)...)
	return err
}

// Warn logs a recoverable error at warn level with its goerr values.
func Warn(ctx context.Context, err error, msg string) {
	if err == nil {
		return
	}
	logging.From(ctx).Warn(msg, attrs(err, false)...)
}

func attrs(err error, withStack bool) []any {
	var ge *goerr.Error
	if !errors.As(err, &ge) {
		return []any{slog.String("error", err.Error())}
	}

	args := []any{
		slog.String("error", err.Error()),
		slog.Any("values", ge.Values()),
	}
	if withStack {
		args = append(args, slog.Any("stack", ge.Stacks()))
	}
	return args
}
