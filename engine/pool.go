// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package engine wires a decision.Tree to a fixed pool of worker
// goroutines. It is a convenience on top of decision and schedule, not a
// module of its own: the trace builder and graph constructor a real
// exploration needs are supplied by the caller through Step.
package engine

import (
	"context"
	"log"

	"golang.org/x/sync/errgroup"

	"github.com/sankalpgambhir/nidhugg/decision"
)

// Step is invoked once per dequeued, non-pruned decision node. It is the
// seam where a caller's trace builder re-executes the run represented by
// node.Leaf() and decides what new decision nodes, if any, to construct
// and enqueue next. Returning an error aborts the pool: Run halts the
// tree's scheduler so every other worker stops, and returns that error.
type Step[C comparable] func(ctx context.Context, tree *decision.Tree[C], node *decision.Node[C]) error

// Pool drives Workers goroutines over Tree until its Scheduler halts (or
// a ctx passed to Run is cancelled, or some Step call fails).
type Pool[C comparable] struct {
	Tree    *decision.Tree[C]
	Workers int
	Step    Step[C]

	// Verbose turns on the one diagnostic log line this package emits.
	Verbose bool
}

// Run starts the pool and blocks until every worker has exited: because
// the scheduler halted, ctx was cancelled, or a Step call returned an
// error (the first such error is returned). When ctx is cancelled or a
// Step fails, Run halts the tree's scheduler, so workers blocked in
// Dequeue return and exit; the scheduler stays halted afterwards.
func (p *Pool[C]) Run(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	stop := context.AfterFunc(gctx, p.Tree.Scheduler().Halt)
	defer stop()
	for id := 0; id < p.Workers; id++ {
		id := id
		g.Go(func() error {
			return p.runWorker(gctx, id)
		})
	}
	return g.Wait()
}

func (p *Pool[C]) runWorker(ctx context.Context, id int) error {
	wctx := p.Tree.Scheduler().RegisterThread(ctx, id)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}

		node := p.Tree.GetNextWorkTask(wctx)
		if node == nil {
			return nil
		}
		if node.IsPruned() {
			if p.Verbose {
				log.Printf("engine: worker %d discarding pruned node at depth %d", id, node.Depth())
			}
			continue
		}
		if err := p.Step(wctx, p.Tree, node); err != nil {
			return err
		}
	}
}
