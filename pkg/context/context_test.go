package context

import (
	"context"
	"testing"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := WithRequestID(context.Background(), "01J0ABC")
	if got := GetRequestID(ctx); got != "01J0ABC" {
		t.Fatalf("GetRequestID() = %q", got)
	}
	if got := GetRequestID(context.Background()); got != "unknown" {
		t.Fatalf("missing id should be unknown, got %q", got)
	}
	if got := GetRequestID(context.WithValue(context.Background(), "request_id", "plain-string-key")); got != "unknown" {
		t.Fatalf("foreign key must not leak into request id, got %q", got)
	}
}
