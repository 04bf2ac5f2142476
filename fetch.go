// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

// Fetch is an immutable description of a computation that reads from
// data sources. Building a Fetch performs no I/O; [Run] interprets it
// round by round. Evaluation yields a fresh [Result] every time.
//
// The zero Fetch evaluates to Done of the zero value of A, matching
// the ecosystem's nil-completion convention.
type Fetch[A any] struct {
	eval func() Result[A]
}

// Eval evaluates the computation one step: pure data transformation,
// no suspension, no I/O. External runners may drive a Fetch manually
// via Eval and their own round executor; most callers use [Run].
func (f Fetch[A]) Eval() Result[A] {
	if f.eval == nil {
		return Done[A]{}
	}
	return f.eval()
}

// Pure lifts a value into a computation that finishes immediately,
// in round zero, without dispatching.
func Pure[A any](a A) Fetch[A] {
	return Fetch[A]{eval: func() Result[A] {
		return Done[A]{Value: a}
	}}
}

// Throw lifts an error into a computation that fails immediately.
// Composition operators short-circuit past it without evaluating
// their continuations.
func Throw[A any](err error) Fetch[A] {
	return Fetch[A]{eval: func() Result[A] {
		return Failed[A]{Err: err}
	}}
}

// Map transforms the result of fa with f. The pending set of a Blocked
// result is unchanged; only the continuation is transformed. Failed
// short-circuits without invoking f.
func Map[A, B any](fa Fetch[A], f func(A) B) Fetch[B] {
	return Fetch[B]{eval: func() Result[B] {
		switch r := fa.Eval().(type) {
		case Done[A]:
			return Done[B]{Value: f(r.Value)}
		case Blocked[A]:
			return Blocked[B]{Pending: r.Pending, Cont: Map(r.Cont, f)}
		case Failed[A]:
			return Failed[B]{Err: r.Err}
		}
		panic("fetch: unknown result variant")
	}}
}

// Map2 combines two independent computations with f. Both sides are
// evaluated in the same step without one informing the other, so their
// pending requests are unioned and resolved in the same round. This is
// the only path through which unrelated requests end up batched.
//
// The left side is evaluated first; if either side fails, the
// combination fails with that error and the left failure wins when
// both would fail in the same round.
func Map2[A, B, C any](fa Fetch[A], fb Fetch[B], f func(A, B) C) Fetch[C] {
	return Fetch[C]{eval: func() Result[C] {
		ra := fa.Eval()
		if fail, ok := ra.(Failed[A]); ok {
			return Failed[C]{Err: fail.Err}
		}
		rb := fb.Eval()
		if fail, ok := rb.(Failed[B]); ok {
			return Failed[C]{Err: fail.Err}
		}
		switch a := ra.(type) {
		case Done[A]:
			switch b := rb.(type) {
			case Done[B]:
				return Done[C]{Value: f(a.Value, b.Value)}
			case Blocked[B]:
				return Blocked[C]{Pending: b.Pending, Cont: Map(b.Cont, func(bv B) C {
					return f(a.Value, bv)
				})}
			}
		case Blocked[A]:
			switch b := rb.(type) {
			case Done[B]:
				return Blocked[C]{Pending: a.Pending, Cont: Map(a.Cont, func(av A) C {
					return f(av, b.Value)
				})}
			case Blocked[B]:
				pending := make([]*Request, 0, len(a.Pending)+len(b.Pending))
				pending = append(pending, a.Pending...)
				pending = append(pending, b.Pending...)
				return Blocked[C]{Pending: pending, Cont: Map2(a.Cont, b.Cont, f)}
			}
		}
		panic("fetch: unknown result variant")
	}}
}

// Bind sequences two dependent computations: f is invoked only once fa
// is fully resolved, so fa's requests and f's requests can never share
// a round. While fa is Blocked the bind stays Blocked on fa's pending
// set. Failed short-circuits without invoking f.
func Bind[A, B any](fa Fetch[A], f func(A) Fetch[B]) Fetch[B] {
	return Fetch[B]{eval: func() Result[B] {
		switch r := fa.Eval().(type) {
		case Done[A]:
			return f(r.Value).Eval()
		case Blocked[A]:
			return Blocked[B]{Pending: r.Pending, Cont: Bind(r.Cont, f)}
		case Failed[A]:
			return Failed[B]{Err: r.Err}
		}
		panic("fetch: unknown result variant")
	}}
}

// Then sequences two dependent computations, discarding the first
// result. Equivalent to Bind(fa, func(A) Fetch[B] { return fb }).
func Then[A, B any](fa Fetch[A], fb Fetch[B]) Fetch[B] {
	return Bind(fa, func(A) Fetch[B] { return fb })
}

// All combines a slice of independent computations into one that
// yields every result in order. All pending requests across the slice
// are unioned into a single round. The leftmost failure wins.
//
// All of an empty slice finishes in round zero with an empty slice.
func All[A any](fs []Fetch[A]) Fetch[[]A] {
	return Fetch[[]A]{eval: func() Result[[]A] {
		values := make([]A, len(fs))
		next := make([]Fetch[A], len(fs))
		var pending []*Request
		blocked := false
		for i, fa := range fs {
			switch r := fa.Eval().(type) {
			case Done[A]:
				values[i] = r.Value
				next[i] = Pure(r.Value)
			case Blocked[A]:
				pending = append(pending, r.Pending...)
				next[i] = r.Cont
				blocked = true
			case Failed[A]:
				return Failed[[]A]{Err: r.Err}
			default:
				panic("fetch: unknown result variant")
			}
		}
		if !blocked {
			return Done[[]A]{Value: values}
		}
		return Blocked[[]A]{Pending: pending, Cont: All(next)}
	}}
}
