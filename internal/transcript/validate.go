package transcript

import (
	"errors"
	"fmt"
	"math"
)

// ErrInvalidSegment reports a segment that cannot be chunked safely.
var ErrInvalidSegment = errors.New("invalid segment")

// ValidateSegments rejects segments with negative or duplicate ids, non-finite
// timestamps, or an end before their start. Ids need not be sequential.
func ValidateSegments(segments []Segment) error {
	seen := make(map[int]struct{}, len(segments))
	for i, seg := range segments {
		if seg.ID < 0 {
			return fmt.Errorf("%w: segment at position %d has negative id %d", ErrInvalidSegment, i, seg.ID)
		}
		if _, dup := seen[seg.ID]; dup {
			return fmt.Errorf("%w: duplicate segment id %d", ErrInvalidSegment, seg.ID)
		}
		seen[seg.ID] = struct{}{}
		if !finite(seg.Start) || !finite(seg.End) {
			return fmt.Errorf("%w: segment %d has non-finite timestamps", ErrInvalidSegment, seg.ID)
		}
		if seg.End < seg.Start {
			return fmt.Errorf("%w: segment %d ends before it starts (%.3f < %.3f)", ErrInvalidSegment, seg.ID, seg.End, seg.Start)
		}
	}
	return nil
}

func finite(v float64) bool {
	return !math.IsNaN(v) && !math.IsInf(v, 0)
}
