// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schedule

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/sankalpgambhir/nidhugg/decision"
	"github.com/sankalpgambhir/nidhugg/unfold"
)

func TestImmediateDequeueReturnsRootThenHaltReturnsNil(t *testing.T) {
	sched := NewPriorityScheduler[string]()
	ctx := context.Background()
	tree := decision.NewTree[string](ctx, sched, &fakeGraph{})

	got := tree.GetNextWorkTask(ctx)
	require.Same(t, tree.Root(), got)
	require.Equal(t, -1, got.Depth())

	sched.Halt()
	require.Nil(t, tree.GetNextWorkTask(ctx))
}

func TestDepthFirstOrderingArbitraryDepths(t *testing.T) {
	// A chain deep enough to pick nodes at depths 0, 5 and 2 out of it.
	nodes := chain(t, 6)
	at := func(depth int) *decision.Node[string] { return nodes[depth+1] }

	sched := NewPriorityScheduler[string]()
	ctx := context.Background()
	sched.Enqueue(ctx, at(0))
	sched.Enqueue(ctx, at(5))
	sched.Enqueue(ctx, at(2))

	require.Equal(t, 5, sched.Dequeue(ctx).Depth())
	require.Equal(t, 2, sched.Dequeue(ctx).Depth())
	require.Equal(t, 0, sched.Dequeue(ctx).Depth())
}

func TestStealingHalvesVictimQueueSize(t *testing.T) {
	sched := NewWorkStealingScheduler[string](2)
	ctx0 := sched.RegisterThread(context.Background(), 0)
	ctx1 := sched.RegisterThread(context.Background(), 1)

	ut := nodesAtDepth(t, 3, 10)
	for _, n := range ut {
		sched.Enqueue(ctx0, n)
	}
	require.Equal(t, 10, len(sched.queues[0].lists[3]))

	stolen := sched.Dequeue(ctx1)
	require.NotNil(t, stolen)
	require.Equal(t, 3, stolen.Depth(), "the stolen node must have originated on worker 0")
	require.Equal(t, 5, len(sched.queues[0].lists[3]), "worker 0's queue must drop by half after the steal")
}

// nodesAtDepth returns count distinct decision nodes all at the given
// depth, siblings of each other under a shared ancestor chain.
func nodesAtDepth(t *testing.T, depth, count int) []*decision.Node[string] {
	t.Helper()
	full := chain(t, depth) // full[depth] sits at depth-1, so children of it land at `depth`
	parent := full[depth]

	ut := unfold.NewTree[string]()
	gen := unfold.NewSeqnoRoot().NewGen()

	out := make([]*decision.Node[string], count)
	for i := range out {
		unf := ut.FindOrCreate(string(rune('A'+i)), nil, nil, gen)
		out[i] = decision.NewChild(parent, unf)
	}
	return out
}
