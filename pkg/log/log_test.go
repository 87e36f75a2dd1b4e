package log

import (
	"testing"

	"github.com/sirupsen/logrus"
)

func TestParseLevel(t *testing.T) {
	tests := map[string]logrus.Level{
		"":        logrus.DebugLevel,
		"info":    logrus.InfoLevel,
		"warning": logrus.WarnLevel,
		"bogus":   logrus.DebugLevel,
	}
	for in, want := range tests {
		if got := parseLevel(in); got != want {
			t.Errorf("parseLevel(%q) = %v, want %v", in, got, want)
		}
	}
}

func TestErrorWithTraceID_PrefersRequestID(t *testing.T) {
	t.Setenv("APP_ENV", "test")

	traceID := ErrorWithTraceID(Fields{RequestIDKey: "01HZX"}, "boom")
	if traceID != "01HZX" {
		t.Fatalf("expected request id to be reused as trace id, got %q", traceID)
	}

	generated := ErrorWithTraceID(Fields{RequestIDKey: "unknown"}, "boom")
	if generated == "" || generated == "unknown" {
		t.Fatalf("expected a generated trace id, got %q", generated)
	}
}

func TestTraceIDGeneratesWithoutRequestID(t *testing.T) {
	fields := Fields{}
	id := TraceID(fields)
	if len(id) != 36 || fields["trace_id"] != id {
		t.Errorf("trace id = %q, fields = %v", id, fields)
	}
}
