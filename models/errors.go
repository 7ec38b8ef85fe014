package models

import (
	"errors"
	"fmt"
)

// ErrInvalidRequest marks a request missing a required field. Raised before
// any side effect; controllers map it to HTTP 400.
var ErrInvalidRequest = errors.New("missing required field")

// UpstreamError carries the status and body of a failed call to the chat
// completion endpoint so the controller can propagate both.
type UpstreamError struct {
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("upstream request failed with status %d: %s", e.Status, e.Body)
}

// AsUpstreamError unwraps err to an *UpstreamError if one is in the chain.
func AsUpstreamError(err error) (*UpstreamError, bool) {
	var ue *UpstreamError
	if errors.As(err, &ue) {
		return ue, true
	}
	return nil, false
}
