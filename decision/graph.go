// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decision

// Graph is the saturated event-structure state cached at decision nodes.
// Implementations are supplied by the caller (the trace builder's domain);
// this package only needs to clone and extend them.
type Graph interface {
	// Clone returns an independent copy that can be extended without
	// affecting the receiver.
	Clone() Graph

	// Size reports how many events the graph currently holds. This
	// package does not call it itself.
	Size() int
}
