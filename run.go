// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
)

// Run interprets a Fetch computation to completion: evaluate, execute
// one round of batched concurrent source calls if blocked, resume, and
// repeat until a terminal state. Returns the final value, or exactly
// one terminal error ([MissingError], [SourceError], a caller error
// from [Throw], or [CancelledError] on context cancellation).
//
// Rounds are strictly sequential; all partitions within a round run
// concurrently. A computation that never reaches a terminal state
// loops forever; bounding rounds is the caller's responsibility.
func Run[A any](ctx context.Context, f Fetch[A]) (A, error) {
	return run(ctx, f, nil)
}

// RunTrace behaves as [Run] and additionally returns the run's trace:
// one [Round] record per executed round, in execution order. The trace
// is owned by this run alone and is complete up to the point the run
// terminated, including the partial round of a cancelled run.
func RunTrace[A any](ctx context.Context, f Fetch[A]) (A, Trace, error) {
	trace := Trace{Serial: nextSerial()}
	value, err := run(ctx, f, &trace)
	return value, trace, err
}

// run drives the state machine over [Result]. Cancellation is observed
// between evaluations and inside the round executor's poll loop.
func run[A any](ctx context.Context, f Fetch[A], trace *Trace) (A, error) {
	var zero A
	for {
		if err := ctx.Err(); err != nil {
			return zero, &CancelledError{Cause: err}
		}
		switch r := f.Eval().(type) {
		case Done[A]:
			return r.Value, nil
		case Failed[A]:
			return zero, r.Err
		case Blocked[A]:
			record, err := executeRound(ctx, r.Pending)
			if trace != nil {
				trace.Rounds = append(trace.Rounds, record)
			}
			if err != nil {
				return zero, err
			}
			f = r.Cont
		default:
			panic("fetch: unknown result variant")
		}
	}
}
