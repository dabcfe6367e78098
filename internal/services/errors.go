package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

var (
	ErrExternalTool  = errors.New("external tool error")
	ErrValidation    = errors.New("validation error")
	ErrConfiguration = errors.New("configuration error")
	ErrNotFound      = errors.New("not found")
	ErrCanceled      = errors.New("canceled")
)

// Failure kinds persisted with failed runs.
const (
	KindValidation    = "validation"
	KindConfiguration = "configuration"
	KindExternalTool  = "external_tool"
	KindNotFound      = "not_found"
	KindCanceled      = "canceled"
	KindFailed        = "failed"
)

// Wrap builds an error message that includes stage context while tagging it
// with marker for later classification. A nil marker tags nothing.
func Wrap(marker error, stage, operation, message string, err error) error {
	detail := buildDetail(stage, operation, message)
	switch {
	case marker != nil && err != nil:
		return fmt.Errorf("%w: %s: %w", marker, detail, err)
	case marker != nil:
		return fmt.Errorf("%w: %s", marker, detail)
	case err != nil:
		return fmt.Errorf("%s: %w", detail, err)
	default:
		return errors.New(detail)
	}
}

// FailureKind classifies err by the marker it carries. Context cancellation
// is reported as canceled even when untagged.
func FailureKind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrCanceled), errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return KindCanceled
	case errors.Is(err, ErrValidation):
		return KindValidation
	case errors.Is(err, ErrConfiguration):
		return KindConfiguration
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrExternalTool):
		return KindExternalTool
	default:
		return KindFailed
	}
}

func buildDetail(stage, operation, message string) string {
	parts := make([]string, 0, 3)
	if stage = strings.TrimSpace(stage); stage != "" {
		parts = append(parts, stage)
	}
	if operation = strings.TrimSpace(operation); operation != "" {
		parts = append(parts, operation)
	}
	if message = strings.TrimSpace(message); message != "" {
		parts = append(parts, message)
	}
	if len(parts) == 0 {
		return "service failure"
	}
	return strings.Join(parts, ": ")
}
