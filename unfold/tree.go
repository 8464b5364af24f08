// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package unfold

import (
	"sync"
	"weak"
)

type weakRef[C comparable] = weak.Pointer[Node[C]]

// Tree owns the root table of the unfolding: one bucket of first-events
// per cpid. Lookups below the root happen directly on the relevant
// Node's own child list and never touch Tree again.
type Tree[C comparable] struct {
	mu    sync.RWMutex
	roots map[C]*rootBucket[C]
}

type rootBucket[C comparable] struct {
	mu       sync.Mutex
	children []weakRef[C]
}

// NewTree returns an empty unfolding tree.
func NewTree[C comparable]() *Tree[C] {
	return &Tree[C]{roots: make(map[C]*rootBucket[C])}
}

// FindOrCreate returns the interned node for (cpid, parent, readFrom),
// creating it if no live node with that identity exists yet. gen supplies
// the sequence number used only if a new node is created.
//
// parent may be nil, meaning cpid's first event; readFrom may be nil,
// meaning the event reads the initial value.
func (t *Tree[C]) FindOrCreate(cpid C, parent, readFrom *Node[C], gen *SeqGen) *Node[C] {
	if parent != nil {
		parent.mu.Lock()
		defer parent.mu.Unlock()
		return getOrCreate(&parent.children, cpid, parent, readFrom, gen)
	}
	b := t.rootBucket(cpid)
	b.mu.Lock()
	defer b.mu.Unlock()
	return getOrCreate(&b.children, cpid, nil, readFrom, gen)
}

func (t *Tree[C]) rootBucket(cpid C) *rootBucket[C] {
	t.mu.RLock()
	b, ok := t.roots[cpid]
	t.mu.RUnlock()
	if ok {
		return b
	}
	t.mu.Lock()
	defer t.mu.Unlock()
	if b, ok = t.roots[cpid]; ok {
		return b
	}
	b = &rootBucket[C]{}
	t.roots[cpid] = b
	return b
}

// getOrCreate scans list for a live child whose ReadFrom matches, and
// compacts dead (collected) weak references it passes over along the way.
// Caller must hold whatever mutex guards list.
func getOrCreate[C comparable](list *[]weakRef[C], cpid C, parent, readFrom *Node[C], gen *SeqGen) *Node[C] {
	i := 0
	for i < len(*list) {
		c := (*list)[i].Value()
		if c == nil {
			// Collected since the last visit: compact by swapping in the
			// last element and shrinking, without advancing i, so the
			// swapped-in entry is still checked this pass.
			last := len(*list) - 1
			(*list)[i] = (*list)[last]
			*list = (*list)[:last]
			continue
		}
		if c.ReadFrom == readFrom {
			return c
		}
		i++
	}
	c := &Node[C]{CPid: cpid, Parent: parent, ReadFrom: readFrom, Seq: gen.Next()}
	*list = append(*list, weak.Make(c))
	return c
}
