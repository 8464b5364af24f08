// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decision

import (
	"context"

	"github.com/sankalpgambhir/nidhugg/unfold"
)

// Tree is the decision tree: the set of choices explored so far, plus the
// Scheduler that decides which not-yet-visited node a worker gets next.
type Tree[C comparable] struct {
	root      *Node[C]
	scheduler Scheduler[C]
}

// NewTree creates a decision tree rooted at a node with the given initial
// graph, and enqueues the root onto scheduler. ctx must already carry a
// registered worker identity for the calling goroutine (see
// Scheduler.RegisterThread), except when scheduler does not need one.
func NewTree[C comparable](ctx context.Context, scheduler Scheduler[C], rootGraph Graph) *Tree[C] {
	root := NewRoot[C](rootGraph)
	t := &Tree[C]{root: root, scheduler: scheduler}
	scheduler.Enqueue(ctx, root)
	return t
}

// Root returns the tree's root node.
func (t *Tree[C]) Root() *Node[C] { return t.root }

// Scheduler returns the tree's underlying scheduler, e.g. so a driver can
// call RegisterThread or Halt directly.
func (t *Tree[C]) Scheduler() Scheduler[C] { return t.scheduler }

// GetNextWorkTask dequeues the next node a worker should explore, or nil
// once the scheduler has been halted.
func (t *Tree[C]) GetNextWorkTask(ctx context.Context) *Node[C] {
	return t.scheduler.Dequeue(ctx)
}

// NewDecisionNode creates a new child of parent committing to unf,
// registers unf against parent (panicking if some other child of parent
// already claimed it), and returns the new node. It does not enqueue the
// node; callers that want it explored call Scheduler().Enqueue themselves,
// mirroring that node construction and scheduling are independent steps.
func (t *Tree[C]) NewDecisionNode(parent *Node[C], unf *unfold.Node[C]) *Node[C] {
	child := NewChild(parent, unf)
	child.AllocUnf(unf)
	return child
}

// ConstructSibling builds a sibling of decision committing to a different
// unfolding event and branch prefix, and enqueues it for exploration.
func (t *Tree[C]) ConstructSibling(ctx context.Context, decision *Node[C], unf *unfold.Node[C], leaf Leaf) {
	t.scheduler.Enqueue(ctx, decision.MakeSibling(unf, leaf))
}

// FindAncestor returns the strict or non-strict ancestor of node at depth
// wanted. Precondition: node.Depth() >= wanted. When node.Depth() ==
// wanted, node itself is returned without ever dereferencing node's
// parent -- the case that makes FindAncestor(root, -1) well-defined even
// though root has no parent.
func (t *Tree[C]) FindAncestor(node *Node[C], wanted int) *Node[C] {
	if node.depth == wanted {
		return node
	}
	return getAncestor(node, wanted)
}
