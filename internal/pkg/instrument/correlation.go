package instrument

import "context"

type correlationIDContextKey struct{}

// SetCorrelationID stores the request correlation ID in the context.
func SetCorrelationID(ctx context.Context, cID string) context.Context {
	return context.WithValue(ctx, correlationIDContextKey{}, cID)
}

// GetCorrelationID returns the correlation ID stored in the context, or an
// empty string when the context carries none.
func GetCorrelationID(ctx context.Context) string {
	cID, _ := ctx.Value(correlationIDContextKey{}).(string)
	return cID
}
