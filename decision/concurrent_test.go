// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decision

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/sync/errgroup"

	"github.com/sankalpgambhir/nidhugg/unfold"
)

func TestConcurrentTryAllocUnfExactlyOneWins(t *testing.T) {
	ut, gen := newTestTree(t)
	root := NewRoot[string](&fakeGraph{})
	unf := ut.FindOrCreate("p0", nil, nil, gen)

	a := NewChild(root, unf)
	b := NewChild(root, unf)

	var g errgroup.Group
	results := make([]bool, 2)
	var wg sync.WaitGroup
	wg.Add(2)

	g.Go(func() error {
		wg.Done()
		wg.Wait()
		results[0] = a.TryAllocUnf(unf)
		return nil
	})
	g.Go(func() error {
		wg.Done()
		wg.Wait()
		results[1] = b.TryAllocUnf(unf)
		return nil
	})
	require.NoError(t, g.Wait())

	require.NotEqual(t, results[0], results[1], "exactly one of the two concurrent claims must win")
	require.Equal(t, 1, len(root.childrenUnf))
}

func TestNodeUnfoldAccessor(t *testing.T) {
	ut := unfold.NewTree[string]()
	gen := unfold.NewSeqnoRoot().NewGen()
	root := NewRoot[string](&fakeGraph{})
	unf := ut.FindOrCreate("p0", nil, nil, gen)
	child := NewChild(root, unf)

	require.Same(t, unf, child.UnfoldNode())
}
