// Copyright 2019 the Go-FUSE Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package decision

import "context"

type workerIDKey struct{}

// WithWorkerID returns a context carrying id as the registered worker
// identity. Scheduler implementations that care about worker identity
// (schedule.WorkStealingScheduler) read it back with WorkerID.
func WithWorkerID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, workerIDKey{}, id)
}

// WorkerID returns the worker identity carried by ctx, if any.
func WorkerID(ctx context.Context) (int, bool) {
	id, ok := ctx.Value(workerIDKey{}).(int)
	return id, ok
}
