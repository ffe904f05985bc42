package cli

import (
	"context"
	"io"
)

// RunWithIO runs the app with the given console streams
func RunWithIO(ctx context.Context, args []string, in io.Reader, out io.Writer) error {
	app, closer := newApp("test")
	defer closer()
	app.Reader = in
	app.Writer = out
	return app.Run(ctx, args)
}
