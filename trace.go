// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

// Call records one dispatched source call within a round: the source
// name, the merged deduplicated identities in dispatch order, and the
// operational error if the call failed. Missing identities are not
// call errors; they surface per handle as [MissingError].
type Call struct {
	Source string
	IDs    []any
	Err    error
}

// Round records one executed round for observability: every call
// dispatched concurrently in that round, in partition order. Round
// records are produced once per run by [RunTrace], never consulted by
// the algebra, and never persisted by the core.
type Round struct {
	Calls []Call
}

// Trace is the ordered round history of a single run, stamped with the
// run's serial. It is created at the start of [RunTrace], updated only
// between rounds, and handed back at the end; it is never shared
// across runs.
type Trace struct {
	Serial Serial
	Rounds []Round
}
