// internal/domain/homework/errors.go
package homework

import (
	"errors"
	"fmt"
	"net/url"
)

// FetchErrorKind tells apart the ways a status request can fail.
type FetchErrorKind string

const (
	FetchTransport FetchErrorKind = "TRANSPORT" // network-level failure, server not reached or no response
	FetchDecode    FetchErrorKind = "DECODE"    // response body is not the expected JSON
	FetchAPIError  FetchErrorKind = "API_ERROR" // server reachable but rejected the request
)

// FetchError carries the request context that produced the failure.
type FetchError struct {
	Kind   FetchErrorKind
	URL    string
	Params url.Values
	// Detail is the server-provided reason for FetchAPIError.
	Detail string
	Err    error
}

func (e *FetchError) Error() string {
	params := e.Params.Encode()
	switch e.Kind {
	case FetchAPIError:
		return fmt.Sprintf("api rejected request to url %s with params %s: %s", e.URL, params, e.Detail)
	case FetchDecode:
		return fmt.Sprintf("failed to decode response from url %s with params %s: %v", e.URL, params, e.Err)
	default:
		return fmt.Sprintf("error while requesting url %s with params %s: %v", e.URL, params, e.Err)
	}
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

// ErrMissingAttribute is matched by every ParseError.
var ErrMissingAttribute = errors.New("attribute not found")

// ParseError reports a record lacking a required attribute.
type ParseError struct {
	Attr string
}

func (e *ParseError) Error() string {
	return fmt.Sprintf("attribute %s not found", e.Attr)
}

func (e *ParseError) Unwrap() error {
	return ErrMissingAttribute
}
