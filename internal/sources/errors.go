// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package sources

import "fmt"

// ErrorKind classifies a source failure so the aggregation coordinator can
// decide how to report it.
type ErrorKind string

const (
	// KindUnavailable covers network failures, timeouts, and non-2xx
	// responses other than rate limiting.
	KindUnavailable ErrorKind = "unavailable"

	// KindMalformed covers undecodable response bodies. Individual bad
	// items inside an otherwise valid response are skipped instead.
	KindMalformed ErrorKind = "malformed_response"

	// KindRateLimited covers HTTP 429 rejections that persisted through
	// retries.
	KindRateLimited ErrorKind = "rate_limited"
)

// SourceError is the typed failure every adapter returns. Adapters never
// surface opaque transport or decode errors directly.
type SourceError struct {
	Source string
	Kind   ErrorKind
	Err    error
}

func (e *SourceError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Source, e.Kind, e.Err)
}

func (e *SourceError) Unwrap() error { return e.Err }

// unavailable wraps err as a KindUnavailable SourceError.
func unavailable(source string, err error) error {
	return &SourceError{Source: source, Kind: KindUnavailable, Err: err}
}

// malformed wraps err as a KindMalformed SourceError.
func malformed(source string, err error) error {
	return &SourceError{Source: source, Kind: KindMalformed, Err: err}
}

// rateLimited wraps err as a KindRateLimited SourceError.
func rateLimited(source string, err error) error {
	return &SourceError{Source: source, Kind: KindRateLimited, Err: err}
}

// httpStatusError builds the SourceError for a non-200 response status.
func httpStatusError(source string, status int) error {
	err := fmt.Errorf("HTTP %d", status)
	if status == 429 {
		return rateLimited(source, err)
	}
	return unavailable(source, err)
}
