// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch_test

import (
	"context"
	"errors"
	"strings"
	"testing"

	"code.hybscloud.com/fetch"
)

func TestMissingErrorMessage(t *testing.T) {
	err := &fetch.MissingError{Source: "users", ID: 42}
	msg := err.Error()
	if !strings.Contains(msg, "42") || !strings.Contains(msg, `"users"`) {
		t.Fatalf("message %q missing identity or source", msg)
	}
	if !fetch.IsMissing(err) {
		t.Fatal("IsMissing false for MissingError")
	}
	if fetch.IsSourceFailure(err) || fetch.IsCancelled(err) {
		t.Fatal("MissingError matched a foreign predicate")
	}
}

func TestSourceErrorUnwrap(t *testing.T) {
	cause := errors.New("connection refused")
	err := &fetch.SourceError{Source: "users", Err: cause}
	if !errors.Is(err, cause) {
		t.Fatal("SourceError does not unwrap to its cause")
	}
	if !fetch.IsSourceFailure(err) {
		t.Fatal("IsSourceFailure false for SourceError")
	}
	if fetch.IsMissing(err) {
		t.Fatal("SourceError matched IsMissing")
	}
}

func TestCancelledErrorUnwrap(t *testing.T) {
	err := &fetch.CancelledError{Cause: context.Canceled}
	if !errors.Is(err, context.Canceled) {
		t.Fatal("CancelledError does not unwrap to context.Canceled")
	}
	if !fetch.IsCancelled(err) {
		t.Fatal("IsCancelled false for CancelledError")
	}
}

func TestPredicatesOnWrappedErrors(t *testing.T) {
	inner := &fetch.MissingError{Source: "users", ID: 1}
	wrapped := errors.Join(errors.New("outer"), inner)
	if !fetch.IsMissing(wrapped) {
		t.Fatal("IsMissing false for wrapped MissingError")
	}
}
