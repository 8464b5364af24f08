// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package schedule

import (
	"sort"
	"sync"

	"github.com/sankalpgambhir/nidhugg/decision"
)

// threadQueue is one worker's own queue in the work-stealing scheduler:
// nodes bucketed by depth, deepest bucket popped from first. depths is
// kept sorted ascending so the deepest (own work) and shallowest (steal
// target) buckets are cheap to find, mirroring what an ordered map keyed
// by depth gives for free.
type threadQueue[C comparable] struct {
	mu     sync.Mutex
	depths []int
	lists  map[int][]*decision.Node[C]
}

func newThreadQueue[C comparable]() *threadQueue[C] {
	return &threadQueue[C]{lists: make(map[int][]*decision.Node[C])}
}

func (q *threadQueue[C]) empty() bool {
	return len(q.depths) == 0
}

// pushLocked adds n to its depth's bucket. Caller holds q.mu.
func (q *threadQueue[C]) pushLocked(n *decision.Node[C]) {
	d := n.Depth()
	if _, ok := q.lists[d]; !ok {
		q.insertDepth(d)
	}
	q.lists[d] = append(q.lists[d], n)
}

func (q *threadQueue[C]) insertDepth(d int) {
	i := sort.SearchInts(q.depths, d)
	q.depths = append(q.depths, 0)
	copy(q.depths[i+1:], q.depths[i:])
	q.depths[i] = d
}

// popLocked removes and returns one node from the deepest non-empty
// bucket. Caller holds q.mu and must ensure the queue is non-empty.
func (q *threadQueue[C]) popLocked() *decision.Node[C] {
	i := len(q.depths) - 1
	d := q.depths[i]
	bucket := q.lists[d]
	n := bucket[0]
	bucket = bucket[1:]
	if len(bucket) == 0 {
		delete(q.lists, d)
		q.depths = q.depths[:i]
	} else {
		q.lists[d] = bucket
	}
	return n
}

// stealLocked moves ceil(|bucket|/2) nodes out of other's shallowest
// bucket into q's bucket at the same depth, taken from the tail of
// other's bucket (the most recently pushed, deepest-feeling entries) so
// that whichever half stays behind keeps the original worker's
// depth-first exploration warm. Reports whether anything was stolen.
// Caller holds both q.mu and other.mu; q must be empty.
func (q *threadQueue[C]) stealLocked(other *threadQueue[C]) bool {
	if other.empty() {
		return false
	}
	d := other.depths[0]
	bucket := other.lists[d]
	count := (len(bucket) + 1) / 2

	stolen := make([]*decision.Node[C], count)
	copy(stolen, bucket[len(bucket)-count:])
	rest := bucket[:len(bucket)-count]

	if len(rest) == 0 {
		delete(other.lists, d)
		other.depths = other.depths[1:]
	} else {
		other.lists[d] = append([]*decision.Node[C]{}, rest...)
	}

	if _, ok := q.lists[d]; !ok {
		q.insertDepth(d)
	}
	q.lists[d] = append(stolen, q.lists[d]...)
	return true
}
