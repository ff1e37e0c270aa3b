package notify

import (
	"errors"
	"fmt"
)

// Kind distinguishes the ways a single Send can fail.
type Kind string

const (
	KindConnect Kind = "connect" // Request could not be built or delivered (refused, DNS, bad URL, cancelled).
	KindTimeout Kind = "timeout" // The configured timeout or the caller's deadline expired.
	KindStatus  Kind = "status"  // The endpoint answered with a non-2xx status.
	KindDecode  Kind = "decode"  // The payload could not be encoded or the response could not be read.
)

// Sentinels matching a TransportError of the corresponding kind via errors.Is.
var (
	ErrConnect = errors.New("notify: connect failed")
	ErrTimeout = errors.New("notify: timed out")
	ErrStatus  = errors.New("notify: unexpected status")
	ErrDecode  = errors.New("notify: decode failed")
)

// TransportError describes a failed Send.
type TransportError struct {
	Kind       Kind
	Endpoint   string
	StatusCode int    // Set for KindStatus.
	Body       string // Leading bytes of the response body, set for KindStatus.
	Err        error
}

func (e *TransportError) Error() string {
	switch {
	case e.Kind == KindStatus:
		return fmt.Sprintf("notify %s: %s: status %d", e.Endpoint, e.Kind, e.StatusCode)
	case e.Err != nil:
		return fmt.Sprintf("notify %s: %s: %v", e.Endpoint, e.Kind, e.Err)
	default:
		return fmt.Sprintf("notify %s: %s", e.Endpoint, e.Kind)
	}
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Is matches the sentinel for e.Kind.
func (e *TransportError) Is(target error) bool {
	switch target {
	case ErrConnect:
		return e.Kind == KindConnect
	case ErrTimeout:
		return e.Kind == KindTimeout
	case ErrStatus:
		return e.Kind == KindStatus
	case ErrDecode:
		return e.Kind == KindDecode
	}
	return false
}

// KindOf returns the Kind of the first TransportError in err's chain.
func KindOf(err error) (Kind, bool) {
	var te *TransportError
	if errors.As(err, &te) {
		return te.Kind, true
	}
	return "", false
}
