// Package clock carries an injectable time source in context.Context.
package clock

import (
	"context"
	"time"
)

// Func returns the current time
type Func func() time.Time

type ctxKey struct{}

// With returns a copy of ctx whose Now reports f()
func With(ctx context.Context, f Func) context.Context {
	return context.WithValue(ctx, ctxKey{}, f)
}

// Now returns the time from the clock in ctx, or time.Now when none is set
func Now(ctx context.Context) time.Time {
	if f, ok := ctx.Value(ctxKey{}).(Func); ok && f != nil {
		return f()
	}
	return time.Now()
}

// Fixed returns a Func that always reports t
func Fixed(t time.Time) Func {
	return func() time.Time { return t }
}
