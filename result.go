// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

// Result is the outcome of one evaluation step of a [Fetch] computation.
// It is a closed variant set: [Done], [Blocked], or [Failed].
// Combinators and the runner dispatch on it by exhaustive type switch.
type Result[A any] interface {
	result(A)
}

// Done is the terminal success variant. The computation produced Value.
type Done[A any] struct {
	Value A
}

// Blocked is the non-terminal variant. Pending holds the requests that
// must be resolved before Cont can make progress. Every handle reachable
// from Pending is read by Cont only after the round executor resolved it.
type Blocked[A any] struct {
	Pending []*Request
	Cont    Fetch[A]
}

// Failed is the terminal failure variant. Once a branch evaluates to
// Failed, no further rounds are attempted for it.
type Failed[A any] struct {
	Err error
}

func (Done[A]) result(A)    {}
func (Blocked[A]) result(A) {}
func (Failed[A]) result(A)  {}
