// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unfold

import "sync"

// Node is a single event in the unfolding: the immediate causal successor
// of Parent created by reading from ReadFrom (ReadFrom is nil for events
// that read the initial value). Nodes are interned: two calls that would
// produce the same (cpid, Parent, ReadFrom) triple get back the same *Node.
//
// Node holds a strong reference to its Parent. The reverse edge, from a
// node to its children, is weak: a subtree that no caller is holding a
// strong reference into any more is free to be collected, the same way an
// abandoned exploration branch is meant to be discardable.
type Node[C comparable] struct {
	CPid     C
	Parent   *Node[C]
	ReadFrom *Node[C]
	Seq      uint64

	mu       sync.Mutex
	children []weakRef[C]
}

// Equal reports whether the two nodes are the same interned event. Nodes
// are compared by identity, matching the "pointer equality of shared
// references" contract read_from comparisons rely on throughout the
// exploration.
func (n *Node[C]) Equal(o *Node[C]) bool {
	return n == o
}
