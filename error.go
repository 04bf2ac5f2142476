// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"errors"
	"fmt"
)

// MissingError reports that a requested identity was absent from its
// source's response. It is recorded against the specific handle that
// asked for the identity; sibling requests in the same round are not
// affected unless they depend on the missing value.
type MissingError struct {
	Source string
	ID     any
}

// Error implements the error interface.
func (e *MissingError) Error() string {
	return fmt.Sprintf("fetch: identity %v not found in source %q", e.ID, e.Source)
}

// IsMissing reports whether err is, or wraps, a [MissingError].
func IsMissing(err error) bool {
	var e *MissingError
	return errors.As(err, &e)
}

// SourceError reports that a data source call failed operationally.
// Partial results are indeterminate, so every handle in the failed
// partition is resolved with the same SourceError.
type SourceError struct {
	Source string
	Err    error
}

// Error implements the error interface.
func (e *SourceError) Error() string {
	return fmt.Sprintf("fetch: source %q failed: %v", e.Source, e.Err)
}

// Unwrap returns the underlying source failure.
func (e *SourceError) Unwrap() error {
	return e.Err
}

// IsSourceFailure reports whether err is, or wraps, a [SourceError].
func IsSourceFailure(err error) bool {
	var e *SourceError
	return errors.As(err, &e)
}

// CancelledError reports that a run was abandoned before reaching a
// terminal state. It is distinct from both success and data errors:
// no handle is resolved after cancellation is observed.
type CancelledError struct {
	Cause error
}

// Error implements the error interface.
func (e *CancelledError) Error() string {
	return fmt.Sprintf("fetch: run cancelled: %v", e.Cause)
}

// Unwrap returns the context error that triggered cancellation.
func (e *CancelledError) Unwrap() error {
	return e.Cause
}

// IsCancelled reports whether err is, or wraps, a [CancelledError].
func IsCancelled(err error) bool {
	var e *CancelledError
	return errors.As(err, &e)
}
