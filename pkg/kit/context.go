package kit

import "context"

type contextKey string

// transportKey records which transport carried the request, so endpoint
// logging can tell an HTTP call from an MCP tool call.
const transportKey contextKey = "kit_transport"

// WithTransport tags the context with the carrying transport ("http", "mcp").
func WithTransport(ctx context.Context, t string) context.Context {
	return context.WithValue(ctx, transportKey, t)
}

// GetTransport returns the tagged transport, defaulting to "http".
func GetTransport(ctx context.Context) string {
	if v, ok := ctx.Value(transportKey).(string); ok {
		return v
	}
	return "http"
}
