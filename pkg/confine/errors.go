package confine

import (
	"errors"
	"fmt"
)

// ErrInvalidPath is the coarse error for any rejected request path.
// Every segment-level error below wraps it.
var ErrInvalidPath = errors.New("invalid path")

var (
	ErrInvalidEncoding          = fmt.Errorf("%w: invalid segment encoding", ErrInvalidPath)
	ErrIllegalCharacterSequence = fmt.Errorf("%w: illegal character sequence", ErrInvalidPath)
	ErrIllegalLeadingCharacter  = fmt.Errorf("%w: illegal leading character", ErrInvalidPath)
	ErrIllegalTrailingCharacter = fmt.Errorf("%w: illegal trailing character", ErrInvalidPath)
	ErrIllegalCharacter         = fmt.Errorf("%w: illegal character", ErrInvalidPath)
)

// ErrNotUnderRoot is returned when a path cannot be expressed relative to the root
var ErrNotUnderRoot = errors.New("path is not under root")

// SegmentError reports which segment was rejected and why.
// Err is one of the ErrIllegal*/ErrInvalidEncoding sentinels.
type SegmentError struct {
	Segment string
	Char    rune
	Err     error
}

func (e *SegmentError) Error() string {
	if e.Char != 0 {
		return fmt.Sprintf("segment %q: %v %q", e.Segment, e.Err, e.Char)
	}
	return fmt.Sprintf("segment %q: %v", e.Segment, e.Err)
}

func (e *SegmentError) Unwrap() error { return e.Err }

// IsInvalidPath reports whether err was produced by rejecting a request path
func IsInvalidPath(err error) bool {
	return errors.Is(err, ErrInvalidPath)
}
