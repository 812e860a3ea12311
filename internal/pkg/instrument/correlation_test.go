package instrument

import (
	"context"
	"testing"
)

func TestCorrelationIDRoundTrip(t *testing.T) {
	ctx := context.Background()

	if got := GetCorrelationID(ctx); got != "" {
		t.Fatalf("expected empty correlation ID, got %q", got)
	}

	ctx = SetCorrelationID(ctx, "cid-123")
	if got := GetCorrelationID(ctx); got != "cid-123" {
		t.Fatalf("GetCorrelationID = %q, want %q", got, "cid-123")
	}

	ctx = SetCorrelationID(ctx, "cid-456")
	if got := GetCorrelationID(ctx); got != "cid-456" {
		t.Fatalf("GetCorrelationID after overwrite = %q, want %q", got, "cid-456")
	}
}
