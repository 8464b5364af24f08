// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decision

// Branch records a single point where exploration could have taken a
// different read-from choice: the process pid, the number of alternatives
// that were available, the decision's depth in the tree, whether it is
// pinned, and the symbolic event that was decided. This package only
// stores branches; it does not interpret any of these fields.
type Branch struct {
	Pid           int
	Size          int
	DecisionDepth int
	Pinned        bool
	Sym           any
}

// Leaf is the prefix of branches collected along one root-to-node path.
type Leaf struct {
	Prefix []Branch
}

// IsBottom reports whether this leaf has no recorded branches. The root,
// and every node built by NewChild, carries a bottom leaf.
func (l Leaf) IsBottom() bool {
	return len(l.Prefix) == 0
}
