// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package nidhugg provides the concurrent exploration substrate of a
// stateless model checker: a decision tree over read-from choices, an
// unfolding tree interning the events those choices commit to, and two
// interchangeable work schedulers driving a fixed pool of workers over
// the decision tree.
//
// See package unfold for the unfolding tree, package decision for the
// decision tree and its Scheduler interface, package schedule for the
// two Scheduler implementations, and package engine for a worker-pool
// runner tying them together.
package nidhugg
