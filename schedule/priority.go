// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package schedule provides the two Scheduler implementations the
// decision tree is driven by: a single shared priority queue, and a
// work-stealing scheduler with one queue per worker.
package schedule

import (
	"container/heap"
	"context"
	"sync"

	"github.com/sankalpgambhir/nidhugg/decision"
)

// PriorityScheduler hands out the deepest available node first, across a
// single shared queue. Simple, but every worker contends on one mutex.
type PriorityScheduler[C comparable] struct {
	decision.JobCounter

	mu      sync.Mutex
	cond    *sync.Cond
	halting bool
	heap    nodeHeap[C]
}

// NewPriorityScheduler returns a new, empty PriorityScheduler.
func NewPriorityScheduler[C comparable]() *PriorityScheduler[C] {
	s := &PriorityScheduler[C]{}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func (s *PriorityScheduler[C]) Enqueue(_ context.Context, n *decision.Node[C]) {
	s.Inc()
	s.mu.Lock()
	heap.Push(&s.heap, n)
	s.mu.Unlock()
	s.cond.Signal()
}

func (s *PriorityScheduler[C]) Dequeue(_ context.Context) *decision.Node[C] {
	s.mu.Lock()
	defer s.mu.Unlock()
	for !s.halting && s.heap.Len() == 0 {
		s.cond.Wait()
	}
	if s.halting {
		return nil
	}
	return heap.Pop(&s.heap).(*decision.Node[C])
}

func (s *PriorityScheduler[C]) Halt() {
	s.mu.Lock()
	s.halting = true
	s.mu.Unlock()
	s.cond.Broadcast()
}

// RegisterThread is a no-op: a single shared queue has no notion of
// worker identity.
func (s *PriorityScheduler[C]) RegisterThread(ctx context.Context, _ int) context.Context {
	return ctx
}

// nodeHeap is a max-heap over *decision.Node[C], ordered by depth, giving
// the scheduler its depth-first bias.
type nodeHeap[C comparable] []*decision.Node[C]

func (h nodeHeap[C]) Len() int            { return len(h) }
func (h nodeHeap[C]) Less(i, j int) bool  { return h[i].Depth() > h[j].Depth() }
func (h nodeHeap[C]) Swap(i, j int)       { h[i], h[j] = h[j], h[i] }
func (h *nodeHeap[C]) Push(x any)         { *h = append(*h, x.(*decision.Node[C])) }
func (h *nodeHeap[C]) Pop() any {
	old := *h
	n := len(old)
	item := old[n-1]
	*h = old[:n-1]
	return item
}
