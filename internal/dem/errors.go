package dem

import "fmt"

// FormatError indicates a malformed elevation grid
type FormatError struct {
	Line   int
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("malformed grid (line %d): %s", e.Line, e.Reason)
	}
	return fmt.Sprintf("malformed grid: %s", e.Reason)
}

func (e *FormatError) Unwrap() error {
	return e.Err
}
