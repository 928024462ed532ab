// Package logging defines the structured logger the rest of the project
// depends on, decoupled from the concrete backend.
package logging

import "context"

// Logger logs structured, context-aware messages. The variadic args are
// alternating key/value pairs:
//
//	log.Info(ctx, "starting http server", "address", addr)
type Logger interface {
	Debug(ctx context.Context, msg string, args ...any)
	Info(ctx context.Context, msg string, args ...any)
	Warn(ctx context.Context, msg string, args ...any)
	Error(ctx context.Context, msg string, args ...any)

	// With returns a child logger that always carries the given key/value
	// pairs.
	With(args ...any) Logger
}
