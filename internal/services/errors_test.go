package services_test

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"transcriber/internal/services"
)

func TestWrapIncludesContext(t *testing.T) {
	base := errors.New("boom")
	err := services.Wrap(services.ErrExternalTool, "transcribe", "whisperx", "failed", base)
	if !errors.Is(err, services.ErrExternalTool) {
		t.Fatalf("expected marker to be retained, got %v", err)
	}
	if !errors.Is(err, base) {
		t.Fatalf("expected wrapped error to contain base error, got %v", err)
	}
	msg := err.Error()
	for _, fragment := range []string{"transcribe", "whisperx", "failed", "boom"} {
		if !strings.Contains(msg, fragment) {
			t.Fatalf("expected %q in error string %q", fragment, msg)
		}
	}
}

func TestWrapWithoutMarker(t *testing.T) {
	err := services.Wrap(nil, "", "", "", nil)
	if err == nil || err.Error() != "service failure" {
		t.Fatalf("unexpected error %v", err)
	}
	base := errors.New("io")
	err = services.Wrap(nil, "export", "", "", base)
	if !errors.Is(err, base) || services.FailureKind(err) != services.KindFailed {
		t.Fatalf("unexpected error %v", err)
	}
}

func TestFailureKind(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"nil", nil, ""},
		{"validation", services.Wrap(services.ErrValidation, "validate", "", "empty file", nil), services.KindValidation},
		{"configuration", services.Wrap(services.ErrConfiguration, "chunk", "", "", errors.New("bad window")), services.KindConfiguration},
		{"not found", services.Wrap(services.ErrNotFound, "probe", "", "", nil), services.KindNotFound},
		{"external tool", services.Wrap(services.ErrExternalTool, "transcribe", "", "", errors.New("exit 1")), services.KindExternalTool},
		{"context canceled", fmt.Errorf("transcribe: %w", context.Canceled), services.KindCanceled},
		{"deadline", services.Wrap(services.ErrExternalTool, "transcribe", "", "", context.DeadlineExceeded), services.KindCanceled},
		{"plain", errors.New("unknown"), services.KindFailed},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := services.FailureKind(tt.err); got != tt.want {
				t.Fatalf("FailureKind(%v) = %q, want %q", tt.err, got, tt.want)
			}
		})
	}
}
