// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decision

import (
	"context"
	"sync/atomic"
)

// Scheduler hands out DecisionNode work to a fixed pool of workers. A
// Scheduler implementation decides the order work is handed out in; the
// Tree only ever enqueues and dequeues through this interface.
//
// Every worker must call RegisterThread once, before its first Enqueue or
// Dequeue, and must use the context RegisterThread returns (not the
// original ctx) for every subsequent call it makes. This is how worker
// identity reaches a Scheduler in a language without thread-locals.
type Scheduler[C comparable] interface {
	// Enqueue makes n available for some worker to dequeue.
	Enqueue(ctx context.Context, n *Node[C])

	// Dequeue blocks until work is available or the scheduler has been
	// halted, in which case it returns nil.
	Dequeue(ctx context.Context) *Node[C]

	// Halt tells every blocked or future Dequeue call to return nil.
	Halt()

	// RegisterThread binds id as ctx's worker identity and returns the
	// augmented context. id must be in [0, workers).
	RegisterThread(ctx context.Context, id int) context.Context
}

// JobCounter is a shared counter of jobs ever enqueued, embeddable by
// Scheduler implementations that want to expose it (mirroring the atomic
// outstanding-jobs counter the original scheduler base class kept).
type JobCounter struct {
	n atomic.Uint64
}

// Inc records one more enqueued job.
func (c *JobCounter) Inc() { c.n.Add(1) }

// Load returns the total number of jobs ever enqueued.
func (c *JobCounter) Load() uint64 { return c.n.Load() }
