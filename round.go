// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch

import (
	"context"

	"code.hybscloud.com/iox"
	"code.hybscloud.com/lfq"
)

// outcomeCapacity is the bounded capacity for partition outcome queues.
// Each partition goroutine produces exactly one outcome.
const outcomeCapacity = 1

// partition is all pending requests of one round aimed at one source,
// merged by source name. ids is deduplicated in first-seen order;
// handles remembers every requester per identity, so one resolved
// identity satisfies all branches that collided on it.
type partition struct {
	source   string
	dispatch dispatchFunc
	ids      []any
	handles  map[any][]*Handle
}

// outcome is the terminal report of one partition's dispatch:
// the resolved mapping, or the operational error of the source call.
type outcome struct {
	values map[any]any
	err    error
}

// partitionRound groups the pending requests of one round by source
// name, in first-appearance order for reproducible dispatch and traces.
func partitionRound(pending []*Request) []*partition {
	var parts []*partition
	index := make(map[string]*partition)
	for _, req := range pending {
		part := index[req.Source]
		if part == nil {
			part = &partition{
				source:   req.Source,
				dispatch: req.dispatch,
				handles:  make(map[any][]*Handle),
			}
			index[req.Source] = part
			parts = append(parts, part)
		}
		for i, id := range req.IDs {
			if _, seen := part.handles[id]; !seen {
				part.ids = append(part.ids, id)
			}
			part.handles[id] = append(part.handles[id], req.handles[i])
		}
	}
	return parts
}

// executeRound resolves every handle in one round's pending set.
//
// Each partition dispatches on its own goroutine and reports through a
// capacity-1 SPSC queue (single producer: the partition goroutine;
// single consumer: this loop). The loop polls all queues, resolving a
// partition's handles as soon as its outcome arrives, and backs off
// adaptively while no queue has progress.
//
// Handles are resolved only here, on the consumer side. When ctx is
// cancelled mid-round the loop returns a [CancelledError] immediately:
// partitions still in flight observe the cancelled round context, and
// their handles stay unresolved.
func executeRound(ctx context.Context, pending []*Request) (Round, error) {
	parts := partitionRound(pending)

	record := Round{Calls: make([]Call, len(parts))}
	for i, part := range parts {
		record.Calls[i] = Call{Source: part.source, IDs: part.ids}
	}

	rctx, cancel := context.WithCancel(ctx)
	defer cancel()

	queues := make([]lfq.SPSC[outcome], len(parts))
	for i := range queues {
		queues[i].Init(outcomeCapacity)
	}
	for i, part := range parts {
		go func(q *lfq.SPSC[outcome], part *partition) {
			values, err := part.dispatch(rctx, part.ids)
			out := outcome{values: values, err: err}
			// capacity 1, exactly one producer enqueue: cannot be full
			_ = q.Enqueue(&out)
		}(&queues[i], part)
	}

	var bo iox.Backoff
	remaining := len(parts)
	resolved := make([]bool, len(parts))
	for remaining > 0 {
		if err := ctx.Err(); err != nil {
			return record, &CancelledError{Cause: err}
		}
		progress := false
		for i, part := range parts {
			if resolved[i] {
				continue
			}
			out, err := queues[i].Dequeue()
			if err != nil {
				continue
			}
			resolvePartition(part, out)
			record.Calls[i].Err = out.err
			resolved[i] = true
			remaining--
			progress = true
		}
		if !progress {
			bo.Wait()
		} else {
			bo.Reset()
		}
	}
	return record, nil
}

// resolvePartition completes every handle of one partition from its
// outcome. An operational source failure resolves the whole partition
// with [SourceError]; partitions that did not fail are untouched.
// Requested identities absent from the mapping resolve with
// [MissingError].
func resolvePartition(part *partition, out outcome) {
	if out.err != nil {
		srcErr := &SourceError{Source: part.source, Err: out.err}
		for _, id := range part.ids {
			for _, h := range part.handles[id] {
				h.complete(nil, srcErr)
			}
		}
		return
	}
	for _, id := range part.ids {
		value, ok := out.values[id]
		for _, h := range part.handles[id] {
			if ok {
				h.complete(value, nil)
			} else {
				h.complete(nil, &MissingError{Source: part.source, ID: id})
			}
		}
	}
}
