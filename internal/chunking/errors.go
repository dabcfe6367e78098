package chunking

import (
	"errors"
	"fmt"
)

// ErrConfiguration is matched by every ConfigurationError via errors.Is.
var ErrConfiguration = errors.New("invalid chunker configuration")

// ConfigurationError reports chunker parameters that cannot produce a
// forward-moving window.
type ConfigurationError struct {
	TargetChars  int
	OverlapChars int
	Reason       string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("chunker configuration: %s (target_chars=%d, overlap_chars=%d)", e.Reason, e.TargetChars, e.OverlapChars)
}

// Is reports whether target is ErrConfiguration.
func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// ValidateWindow checks target/overlap sizes without building a Chunker.
func ValidateWindow(targetChars, overlapChars int) error {
	switch {
	case targetChars <= 0:
		return &ConfigurationError{TargetChars: targetChars, OverlapChars: overlapChars, Reason: "target_chars must be positive"}
	case overlapChars < 0:
		return &ConfigurationError{TargetChars: targetChars, OverlapChars: overlapChars, Reason: "overlap_chars must not be negative"}
	case overlapChars >= targetChars:
		return &ConfigurationError{TargetChars: targetChars, OverlapChars: overlapChars, Reason: "overlap_chars must be less than target_chars"}
	}
	return nil
}
