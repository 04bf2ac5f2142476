// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fetch provides automatically batched, deduplicated data-source
// access via an applicative request algebra.
//
// A computation over remote data is described as an immutable [Fetch]
// value. The runner interprets it in rounds: evaluation discovers every
// request that is independent of the others, merges requests aimed at the
// same source, deduplicates identities, and dispatches one concurrent call
// per source. Dependent requests wait for the following round.
//
// # Architecture
//
//   - Algebra: [Fetch] evaluates to a [Result] — [Done], [Blocked] (pending
//     requests plus continuation), or [Failed]. Evaluation is pure;
//     suspension happens only in the round executor.
//   - Independence: [Map2] and [All] union the pending sets of their
//     operands, so unrelated requests share a round and a batched call.
//     [Bind] is a genuine data dependency and forces a round boundary.
//   - Completion: each requested identity resolves a write-once [Handle]
//     guarded by an [code.hybscloud.com/atomix] compare-and-swap.
//   - Rounds: partitions dispatch on their own goroutines and report
//     through bounded SPSC queues via [code.hybscloud.com/lfq]; the
//     executor polls with adaptive backoff ([code.hybscloud.com/iox]).
//   - Recursion: [Loop] iterates dependent computations trampoline-style,
//     driven by [code.hybscloud.com/kont.Either], without growing the
//     call stack.
//
// # API Topologies
//
//   - Constructors: [Pure], [Throw], [Get], [GetAll].
//   - Combinators: [Map], [Map2], [Then], [Bind], [All], [Loop].
//   - Runners: [Run], [RunTrace] (additionally returns the ordered
//     [Trace] of [Round] records for observability).
//   - Errors: [MissingError], [SourceError], [CancelledError], with
//     [IsMissing], [IsSourceFailure], [IsCancelled].
//
// # Example
//
//	user := fetch.Get(users, 1)
//	friend := fetch.Get(users, 2)
//	both := fetch.Map2(user, friend, func(a, b User) [2]User {
//		return [2]User{a, b}
//	})
//	pair, err := fetch.Run(ctx, both) // one round, one batched call
package fetch
