// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fetch_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"code.hybscloud.com/fetch"
)

// testSource is a Source[int, string] backed by a map, recording every
// call it receives so tests can assert batching and deduplication.
type testSource struct {
	name string
	data map[int]string

	err        error         // if set, every call fails operationally
	blockOnCtx bool          // if set, calls hold until ctx is done
	started    chan struct{} // closed when the first call arrives
	startOnce  sync.Once
	rendezvous *sync.WaitGroup

	mu      sync.Mutex
	ones    []int   // identities requested via FetchOne, in call order
	batches [][]int // identity sets requested via FetchBatch
}

func newTestSource(name string, data map[int]string) *testSource {
	return &testSource{name: name, data: data, started: make(chan struct{})}
}

func (s *testSource) Name() string { return s.name }

func (s *testSource) FetchOne(ctx context.Context, id int) (string, bool, error) {
	s.mu.Lock()
	s.ones = append(s.ones, id)
	s.mu.Unlock()
	if err := s.wait(ctx); err != nil {
		return "", false, err
	}
	if s.err != nil {
		return "", false, s.err
	}
	v, ok := s.data[id]
	return v, ok, nil
}

func (s *testSource) FetchBatch(ctx context.Context, ids []int) (map[int]string, error) {
	s.mu.Lock()
	s.batches = append(s.batches, append([]int(nil), ids...))
	s.mu.Unlock()
	if err := s.wait(ctx); err != nil {
		return nil, err
	}
	if s.err != nil {
		return nil, s.err
	}
	m := make(map[int]string, len(ids))
	for _, id := range ids {
		if v, ok := s.data[id]; ok {
			m[id] = v
		}
	}
	return m, nil
}

// wait applies the source's blocking behavior: signal arrival, meet the
// rendezvous if one is configured, and optionally hold until ctx ends.
func (s *testSource) wait(ctx context.Context) error {
	s.startOnce.Do(func() { close(s.started) })
	if s.rendezvous != nil {
		s.rendezvous.Done()
		s.rendezvous.Wait()
	}
	if s.blockOnCtx {
		<-ctx.Done()
		// Hold past cancellation so the round poll loop observes the
		// cancelled context before this call's outcome exists.
		time.Sleep(20 * time.Millisecond)
		return ctx.Err()
	}
	return nil
}

// calls returns copies of the recorded call history.
func (s *testSource) calls() (ones []int, batches [][]int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]int(nil), s.ones...), append([][]int(nil), s.batches...)
}

// mustRun drives f to completion and fails the test on any error.
func mustRun[A any](t *testing.T, f fetch.Fetch[A]) A {
	t.Helper()
	v, err := fetch.Run(t.Context(), f)
	if err != nil {
		t.Fatalf("Run error: %v", err)
	}
	return v
}
