package llm

import "context"

// Request describes one outline generation.
type Request struct {
	Topic string
	// Style is appended to the system prompt when not empty.
	Style string
}

// Client produces raw outline text for a request.
type Client interface {
	Outline(ctx context.Context, req Request) (string, error)
}

// ClientFunc adapts a function to the Client interface.
type ClientFunc func(ctx context.Context, req Request) (string, error)

// Outline calls f(ctx, req).
func (f ClientFunc) Outline(ctx context.Context, req Request) (string, error) {
	return f(ctx, req)
}
