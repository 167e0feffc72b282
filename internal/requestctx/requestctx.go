// Package requestctx carries the values the middleware chain establishes for
// a request so every layer can reach them without plumbing parameters.
package requestctx

import "context"

type key struct{}

// Meta holds the request-scoped values.
type Meta struct {
	RequestID string
}

func With(ctx context.Context, m Meta) context.Context {
	return context.WithValue(ctx, key{}, m)
}

func From(ctx context.Context) Meta {
	m, _ := ctx.Value(key{}).(Meta)
	return m
}

// RequestID is a shorthand for the most common lookup. Returns an empty
// string outside the middleware chain.
func RequestID(ctx context.Context) string {
	return From(ctx).RequestID
}
