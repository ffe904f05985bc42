package safe

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/secmon-lab/casekeeper/pkg/utils/logging"
)

// Close closes an io.Closer and logs any error. A nil closer is ignored.
func Close(ctx context.Context, closer io.Closer) {
	if closer == nil {
		return
	}
	if err := closer.Close(); err != nil {
		logging.From(ctx).Error("Failed to close", slog.Any("error", err))
	}
}

// Fprintf writes console output and logs a failed write instead of returning it
func Fprintf(ctx context.Context, w io.Writer, format string, args ...any) {
	if w == nil {
		return
	}
	if _, err := fmt.Fprintf(w, format, args...); err != nil {
		logging.From(ctx).Error("Failed to write output", slog.Any("error", err))
	}
}

// Fprintln is Fprintf with fmt.Fprintln formatting
func Fprintln(ctx context.Context, w io.Writer, args ...any) {
	if w == nil {
		return
	}
	if _, err := fmt.Fprintln(w, args...); err != nil {
		logging.From(ctx).Error("Failed to write output", slog.Any("error", err))
	}
}
