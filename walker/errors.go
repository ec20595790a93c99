package walker

import (
	"errors"
	"fmt"
)

// ErrorKind tells apart the ways a walk can be cut short.
type ErrorKind int

const (
	// KindTransport is a network failure or a non-success HTTP status.
	KindTransport ErrorKind = iota + 1
	// KindParse is a page whose markup could not be used.
	KindParse
)

func (k ErrorKind) String() string {
	switch k {
	case KindTransport:
		return "transport"
	case KindParse:
		return "parse"
	default:
		return "unknown"
	}
}

// WalkError describes the failure that ended a walk early. Entries collected
// before the failure are still returned alongside it.
type WalkError struct {
	Kind ErrorKind
	URL  string
	// Page is the 1-based number of the page that failed.
	Page int
	Err  error
}

func (e *WalkError) Error() string {
	return fmt.Sprintf("%s error on page %d (%s): %v", e.Kind, e.Page, e.URL, e.Err)
}

func (e *WalkError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is a transport failure from a walk.
func IsTransport(err error) bool {
	var we *WalkError
	return errors.As(err, &we) && we.Kind == KindTransport
}

// IsParse reports whether err is a parse failure from a walk.
func IsParse(err error) bool {
	var we *WalkError
	return errors.As(err, &we) && we.Kind == KindParse
}
