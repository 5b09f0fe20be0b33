package models

import (
	"errors"
	"fmt"
)

var (
	ErrLoad           = errors.New("transaction source could not be loaded")
	ErrUnknownMember  = errors.New("member has no transactions")
	ErrTimestampParse = errors.New("transaction timestamp does not match layout")
	ErrRemoteCall     = errors.New("remote call failed")
)

// LoadError reports an unreadable or malformed transaction source.
type LoadError struct {
	Source string
	Err    error
}

func (e *LoadError) Error() string {
	return fmt.Sprintf("load %s: %v", e.Source, e.Err)
}

func (e *LoadError) Unwrap() []error { return []error{ErrLoad, e.Err} }

// TimestampParseError reports a stored timestamp that is not in TimestampLayout.
type TimestampParseError struct {
	MemberID string
	Value    string
	Err      error
}

func (e *TimestampParseError) Error() string {
	return fmt.Sprintf("member %s: timestamp %q: %v", e.MemberID, e.Value, e.Err)
}

func (e *TimestampParseError) Unwrap() []error { return []error{ErrTimestampParse, e.Err} }

// RemoteCallError reports a failed call to a scoring or offer service.
// StatusCode is zero when no response was received.
type RemoteCallError struct {
	Endpoint   string
	StatusCode int
	Body       string
	Err        error
}

func (e *RemoteCallError) Error() string {
	switch {
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Endpoint, e.Err)
	default:
		return fmt.Sprintf("%s: status %d: %s", e.Endpoint, e.StatusCode, e.Body)
	}
}

func (e *RemoteCallError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrRemoteCall}
	}
	return []error{ErrRemoteCall, e.Err}
}
