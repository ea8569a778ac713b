package confine

import (
	"net/url"
	"os"
	"strings"
	"unicode/utf8"
)

// Action tells the resolver what to do with an accepted segment
type Action int

const (
	// ActionPush appends the segment as one path component
	ActionPush Action = iota
	// ActionPop removes the last accumulated component
	ActionPop
	// ActionSkip contributes nothing (empty segment or ".")
	ActionSkip
)

const parentRef = ".."

// DecodeSegment percent-decodes one raw URL segment.
// The result must be valid UTF-8.
func DecodeSegment(raw string) (string, error) {
	decoded, err := url.PathUnescape(raw)
	if err != nil {
		return "", &SegmentError{Segment: raw, Err: ErrInvalidEncoding}
	}
	if !utf8.ValidString(decoded) {
		return "", &SegmentError{Segment: raw, Err: ErrInvalidEncoding}
	}
	return decoded, nil
}

// ValidateSegment checks a decoded segment against the component policy.
// Rules are evaluated in order and the first match wins. The UTF-8 check
// repeats the one in DecodeSegment for callers that validate names directly.
func ValidateSegment(segment string) (Action, error) {
	if !utf8.ValidString(segment) {
		return 0, &SegmentError{Segment: segment, Err: ErrInvalidEncoding}
	}

	switch {
	case segment == parentRef:
		return ActionPop, nil
	case segment == "" || segment == ".":
		return ActionSkip, nil
	case strings.Contains(segment, parentRef):
		return 0, &SegmentError{Segment: segment, Char: '.', Err: ErrIllegalCharacterSequence}
	case strings.HasPrefix(segment, "*"):
		return 0, &SegmentError{Segment: segment, Char: '*', Err: ErrIllegalLeadingCharacter}
	}

	if last, _ := utf8.DecodeLastRuneInString(segment); last == ':' || last == '>' || last == '<' {
		return 0, &SegmentError{Segment: segment, Char: last, Err: ErrIllegalTrailingCharacter}
	}

	if i := strings.IndexAny(segment, "/<>"); i >= 0 {
		return 0, &SegmentError{Segment: segment, Char: rune(segment[i]), Err: ErrIllegalCharacter}
	}
	if os.PathSeparator == '\\' && strings.ContainsRune(segment, '\\') {
		return 0, &SegmentError{Segment: segment, Char: '\\', Err: ErrIllegalCharacter}
	}

	return ActionPush, nil
}
