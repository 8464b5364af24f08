// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schedule

import (
	"context"
	"math/rand"
	"sync"
	"sync/atomic"

	"github.com/sankalpgambhir/nidhugg/decision"
)

// WorkStealingScheduler gives each worker its own depth-bucketed queue.
// A worker dequeues from its own queue first; if that is empty it tries
// to steal half of some other worker's shallowest bucket before blocking.
//
// Enqueue always signals the single global condition variable rather than
// specifically waking the queue's own worker. This is the same tradeoff
// the scheduler this package is modeled on makes: every push wakes one
// parked worker, whichever it is, which then finds the work by stealing,
// in exchange for not needing one condition variable per worker queue.
type WorkStealingScheduler[C comparable] struct {
	decision.JobCounter

	mu      sync.Mutex
	cond    *sync.Cond
	halting atomic.Bool
	queues  []*threadQueue[C]
}

// NewWorkStealingScheduler returns a scheduler with workers queues, each
// initially empty. Every worker must call RegisterThread with an id in
// [0, workers) before its first Enqueue/Dequeue call.
func NewWorkStealingScheduler[C comparable](workers int) *WorkStealingScheduler[C] {
	s := &WorkStealingScheduler[C]{
		queues: make([]*threadQueue[C], workers),
	}
	for i := range s.queues {
		s.queues[i] = newThreadQueue[C]()
	}
	s.cond = sync.NewCond(&s.mu)
	return s
}

func mustWorkerID(ctx context.Context) int {
	id, ok := decision.WorkerID(ctx)
	if !ok {
		panic("schedule: context has no registered worker id, call RegisterThread first")
	}
	return id
}

func (s *WorkStealingScheduler[C]) RegisterThread(ctx context.Context, id int) context.Context {
	if id < 0 || id >= len(s.queues) {
		panic("schedule: worker id out of range")
	}
	return decision.WithWorkerID(ctx, id)
}

func (s *WorkStealingScheduler[C]) Enqueue(ctx context.Context, n *decision.Node[C]) {
	s.Inc()
	id := mustWorkerID(ctx)
	q := s.queues[id]
	q.mu.Lock()
	q.pushLocked(n)
	q.mu.Unlock()
	s.cond.Signal()
}

func (s *WorkStealingScheduler[C]) Dequeue(ctx context.Context) *decision.Node[C] {
	id := mustWorkerID(ctx)
	q := s.queues[id]

	// Fast path: our own queue, no global lock needed.
	q.mu.Lock()
	if s.halting.Load() {
		q.mu.Unlock()
		return nil
	}
	if !q.empty() {
		n := q.popLocked()
		q.mu.Unlock()
		return n
	}
	q.mu.Unlock()

	s.mu.Lock()
	defer s.mu.Unlock()
	for {
		if s.halting.Load() {
			return nil
		}

		q.mu.Lock()
		if !q.empty() {
			n := q.popLocked()
			q.mu.Unlock()
			return n
		}
		q.mu.Unlock()

		if n, ok := s.trySteal(id); ok {
			return n
		}

		s.cond.Wait()
	}
}

// trySteal tries every other worker's queue, in random order, once each.
func (s *WorkStealingScheduler[C]) trySteal(id int) (*decision.Node[C], bool) {
	q := s.queues[id]
	order := rand.Perm(len(s.queues))
	for _, j := range order {
		if j == id {
			continue
		}
		unlock := s.lockPair(id, j)
		stole := q.stealLocked(s.queues[j])
		var n *decision.Node[C]
		if stole {
			n = q.popLocked()
		}
		unlock()
		if stole {
			return n, true
		}
	}
	return nil, false
}

// lockPair locks queues a and b in a fixed order (by index) regardless of
// which is the thief and which is the victim, so that two workers
// stealing from each other at the same time can never deadlock.
func (s *WorkStealingScheduler[C]) lockPair(a, b int) func() {
	qa, qb := s.queues[a], s.queues[b]
	if a == b {
		qa.mu.Lock()
		return qa.mu.Unlock
	}
	first, second := qa, qb
	if b < a {
		first, second = qb, qa
	}
	first.mu.Lock()
	second.mu.Lock()
	return func() {
		second.mu.Unlock()
		first.mu.Unlock()
	}
}

func (s *WorkStealingScheduler[C]) Halt() {
	s.mu.Lock()
	s.halting.Store(true)
	s.mu.Unlock()
	s.cond.Broadcast()
}
