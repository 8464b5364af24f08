// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decision

import (
	"sync"
	"sync/atomic"

	"github.com/sankalpgambhir/nidhugg/unfold"
)

// Node is one node of the decision tree: a point where exploration chose
// one unfolding event (UnfoldingNode) to extend the run with, together
// with the branch prefix (Leaf) recorded to reach it.
//
// depth is the root-relative depth; the root itself has depth -1, so a
// root's direct children sit at depth 0. mu, childrenUnf and graphCache
// belong to this node's role as a *parent*: they are accessed through a
// child's Parent field, never through the node itself.
type Node[C comparable] struct {
	depth int

	unfoldNode *unfold.Node[C]
	leaf       Leaf

	parent *Node[C]

	prunedSubtree    atomic.Bool
	cacheInitialised atomic.Bool

	mu          sync.Mutex
	childrenUnf map[*unfold.Node[C]]struct{}
	graphCache  Graph
}

// NewRoot returns the root of a decision tree. Its graph cache is
// pre-initialised to graph (typically an empty Graph), since the root has
// no ancestor to saturate from.
func NewRoot[C comparable](graph Graph) *Node[C] {
	n := &Node[C]{
		depth:       -1,
		childrenUnf: make(map[*unfold.Node[C]]struct{}),
		graphCache:  graph,
	}
	n.cacheInitialised.Store(true)
	return n
}

// NewChild returns a new decision node extending parent by committing to
// unf. The caller is responsible for calling AllocUnf (via the returned
// node, which records the allocation against parent) before the node is
// published to a scheduler.
func NewChild[C comparable](parent *Node[C], unf *unfold.Node[C]) *Node[C] {
	return &Node[C]{
		depth:       parent.depth + 1,
		unfoldNode:  unf,
		parent:      parent,
		childrenUnf: make(map[*unfold.Node[C]]struct{}),
	}
}

// MakeSibling returns a new decision node at the same depth as n, sharing
// n's parent, but committing to a different unfolding event (unf) and
// branch prefix (leaf). Because a sibling shares n's parent rather than
// n itself, its depth is n.parent.depth+1 -- which is n.depth, since n's
// own depth was already computed the same way.
func (n *Node[C]) MakeSibling(unf *unfold.Node[C], leaf Leaf) *Node[C] {
	return &Node[C]{
		depth:       n.depth,
		unfoldNode:  unf,
		leaf:        leaf,
		parent:      n.parent,
		childrenUnf: make(map[*unfold.Node[C]]struct{}),
	}
}

// Depth returns the node's root-relative depth (the root is -1).
func (n *Node[C]) Depth() int { return n.depth }

// UnfoldNode returns the unfolding event this node committed to.
func (n *Node[C]) UnfoldNode() *unfold.Node[C] { return n.unfoldNode }

// Leaf returns the branch prefix recorded to reach this node.
func (n *Node[C]) Leaf() Leaf { return n.leaf }

// Parent returns n's parent, or nil if n is the root.
func (n *Node[C]) Parent() *Node[C] { return n.parent }

// TryAllocUnf attempts to register unf as one of n.parent's children's
// chosen unfolding events. It reports whether unf was not already
// claimed by a sibling of n.
func (n *Node[C]) TryAllocUnf(unf *unfold.Node[C]) bool {
	n.parent.mu.Lock()
	defer n.parent.mu.Unlock()
	if _, exists := n.parent.childrenUnf[unf]; exists {
		return false
	}
	n.parent.childrenUnf[unf] = struct{}{}
	return true
}

// AllocUnf registers unf as one of n.parent's children's chosen unfolding
// events. It panics if unf was already claimed -- callers that need to
// tolerate a race should use TryAllocUnf instead.
func (n *Node[C]) AllocUnf(unf *unfold.Node[C]) {
	n.parent.mu.Lock()
	defer n.parent.mu.Unlock()
	if _, exists := n.parent.childrenUnf[unf]; exists {
		panic("decision: unfolding node already allocated under this parent")
	}
	n.parent.childrenUnf[unf] = struct{}{}
}

// GetSaturatedGraph returns n.parent's saturated graph, computing and
// caching it on first use. construct is called at most once per parent
// node and must extend the graph it is handed (cloned from the nearest
// initialised ancestor of n.parent, or n.parent's own) with the events
// between that ancestor and n.parent.
func (n *Node[C]) GetSaturatedGraph(construct func(Graph)) Graph {
	p := n.parent
	if p.cacheInitialised.Load() {
		return p.graphCache
	}

	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cacheInitialised.Load() {
		return p.graphCache
	}

	anc := p
	for !anc.cacheInitialised.Load() {
		anc = anc.parent
	}
	g := anc.graphCache.Clone()
	construct(g)
	p.graphCache = g
	p.cacheInitialised.Store(true)
	return p.graphCache
}

// PruneDecisions marks n's subtree as pruned: IsPruned will return true
// for n and every descendant of n from now on. Pruning the root has no
// effect, since IsPruned never reads the root's flag.
func (n *Node[C]) PruneDecisions() {
	n.prunedSubtree.Store(true)
}

// IsPruned reports whether n or any strict ancestor of n (but not the
// root itself) has been pruned.
func (n *Node[C]) IsPruned() bool {
	for node := n; node.depth != -1; node = node.parent {
		if node.prunedSubtree.Load() {
			return true
		}
	}
	return false
}

// getAncestor walks parent links until it reaches the ancestor of node
// whose own depth is wanted, and returns it. Precondition: node.depth > wanted. Tree.FindAncestor
// is the public entry point and handles the node.depth == wanted case
// (including the root) before calling this.
func getAncestor[C comparable](node *Node[C], wanted int) *Node[C] {
	for node.parent.depth != wanted {
		node = node.parent
	}
	return node.parent
}
