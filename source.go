// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"
)

// Source is the capability a data source supplies to the core,
// parameterized by identity type K and value type V. The core never
// mutates a source; instances are shared across runs.
//
// Name must be stable: it is the partition key within a round and the
// label on [Round] records. Two Source values reporting the same name
// are merged into one call per round.
type Source[K comparable, V any] interface {
	// Name identifies the source for round-partitioning and tracing.
	Name() string
	// FetchOne looks up a single identity. ok=false means the identity
	// does not exist; err is reserved for operational failures.
	FetchOne(ctx context.Context, id K) (value V, ok bool, err error)
	// FetchBatch looks up many identities at once. The returned mapping
	// omits identities that do not exist and must not contain
	// identities that were not requested.
	FetchBatch(ctx context.Context, ids []K) (map[K]V, error)
}

// dispatchFunc is the type-erased batch call bound to one typed source.
// It receives the round's merged, deduplicated identities and returns
// the resolved mapping; absent identities are simply omitted.
type dispatchFunc func(ctx context.Context, ids []any) (map[any]any, error)

// Request describes one pending source lookup inside a Blocked result.
// IDs is ordered and may contain duplicates contributed by independent
// branches; the round executor deduplicates before dispatch and still
// satisfies every handle. len(IDs) == 1 is the single-identity variant,
// longer is the batch variant.
type Request struct {
	Source string
	IDs    []any

	handles  []*Handle // one per identity, same order as IDs
	dispatch dispatchFunc
}

// dispatcher erases a typed source into a dispatchFunc. A merged set of
// exactly one identity uses FetchOne, larger sets use FetchBatch.
func dispatcher[K comparable, V any](src Source[K, V]) dispatchFunc {
	return func(ctx context.Context, ids []any) (map[any]any, error) {
		if len(ids) == 1 {
			id := ids[0].(K)
			v, ok, err := src.FetchOne(ctx, id)
			if err != nil {
				return nil, err
			}
			if !ok {
				return map[any]any{}, nil
			}
			return map[any]any{ids[0]: v}, nil
		}
		ks := make([]K, len(ids))
		for i, id := range ids {
			ks[i] = id.(K)
		}
		m, err := src.FetchBatch(ctx, ks)
		if err != nil {
			return nil, err
		}
		out := make(map[any]any, len(m))
		for k, v := range m {
			out[k] = v
		}
		return out, nil
	}
}

// Get returns a computation that fetches one identity from src.
// Evaluation yields Blocked with a single pending request; the
// continuation yields the resolved value, or Failed with
// [MissingError] if the identity does not exist.
//
// Each evaluation creates a fresh request and handle: deduplication
// happens only within one round's pending set, never across rounds
// or across runs.
func Get[K comparable, V any](src Source[K, V], id K) Fetch[V] {
	return Fetch[V]{eval: func() Result[V] {
		h := &Handle{}
		req := &Request{
			Source:   src.Name(),
			IDs:      []any{id},
			handles:  []*Handle{h},
			dispatch: dispatcher(src),
		}
		cont := Fetch[V]{eval: func() Result[V] {
			v, err := h.status()
			if err != nil {
				return Failed[V]{Err: err}
			}
			return Done[V]{Value: v.(V)}
		}}
		return Blocked[V]{Pending: []*Request{req}, Cont: cont}
	}}
}

// GetAll returns a computation that fetches every identity in ids from
// src as one batch request, yielding values in the order of ids.
// Duplicate identities are legal; each position receives the resolved
// value. Any missing identity fails the whole computation with
// [MissingError] for the first missing position.
//
// GetAll of no identities is Pure of an empty slice: it finishes in
// round zero without dispatching.
func GetAll[K comparable, V any](src Source[K, V], ids []K) Fetch[[]V] {
	return Fetch[[]V]{eval: func() Result[[]V] {
		if len(ids) == 0 {
			return Done[[]V]{Value: []V{}}
		}
		boxed := make([]any, len(ids))
		handles := make([]*Handle, len(ids))
		for i, id := range ids {
			boxed[i] = id
			handles[i] = &Handle{}
		}
		req := &Request{
			Source:   src.Name(),
			IDs:      boxed,
			handles:  handles,
			dispatch: dispatcher(src),
		}
		cont := Fetch[[]V]{eval: func() Result[[]V] {
			values := make([]V, len(handles))
			for i, h := range handles {
				v, err := h.status()
				if err != nil {
					return Failed[[]V]{Err: err}
				}
				values[i] = v.(V)
			}
			return Done[[]V]{Value: values}
		}}
		return Blocked[[]V]{Pending: []*Request{req}, Cont: cont}
	}}
}
