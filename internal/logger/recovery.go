package logger

import (
	"context"
)

// Recover traps panics and displays them with Fatal's system information and stack trace.
// Fatal panics again with FatalError, which the caller's own recover turns into an exit code.
// Usage: defer logger.Recover(ctx)
func Recover(ctx context.Context) {
	r := recover()
	if r == nil {
		return
	}
	if fe, ok := r.(FatalError); ok {
		// Intentional; already logged
		panic(fe)
	}
	Fatal(ctx, "panic: %v", r)
}
