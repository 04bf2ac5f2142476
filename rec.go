// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"code.hybscloud.com/kont"
)

// Loop runs an iterative dependent computation.
// step returns Left(nextState) to continue or Right(result) to finish.
//
// Stack-safe: iterations that finish without blocking advance inside a
// single for loop, and a blocked iteration resumes at constant stack
// depth in the next round. Unbounded dependent chains do not grow the
// call stack.
func Loop[S, A any](initial S, step func(S) Fetch[kont.Either[S, A]]) Fetch[A] {
	return Fetch[A]{eval: func() Result[A] {
		s := initial
		for {
			switch r := step(s).Eval().(type) {
			case Done[kont.Either[S, A]]:
				if left, ok := r.Value.GetLeft(); ok {
					s = left
					continue
				}
				right, _ := r.Value.GetRight()
				return Done[A]{Value: right}
			case Blocked[kont.Either[S, A]]:
				return Blocked[A]{Pending: r.Pending, Cont: resumeLoop(r.Cont, step)}
			case Failed[kont.Either[S, A]]:
				return Failed[A]{Err: r.Err}
			default:
				panic("fetch: unknown result variant")
			}
		}
	}}
}

// resumeLoop re-enters Loop once the blocked iteration's requests are
// resolved. The fresh Loop evaluates with its own trampoline, keeping
// per-round stack depth constant.
func resumeLoop[S, A any](cont Fetch[kont.Either[S, A]], step func(S) Fetch[kont.Either[S, A]]) Fetch[A] {
	return Bind(cont, func(e kont.Either[S, A]) Fetch[A] {
		if left, ok := e.GetLeft(); ok {
			return Loop(left, step)
		}
		right, _ := e.GetRight()
		return Pure(right)
	})
}
