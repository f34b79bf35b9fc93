package cityjson

import "fmt"

// ParseError reports a CityJSON document that could not be loaded:
// unreadable file, malformed JSON, wrong top-level type, or an
// unsupported schema version.
type ParseError struct {
	Path   string
	Reason string
	Err    error
}

func (e *ParseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cityjson: %s: %s: %v", e.Path, e.Reason, e.Err)
	}
	return fmt.Sprintf("cityjson: %s: %s", e.Path, e.Reason)
}

func (e *ParseError) Unwrap() error { return e.Err }
