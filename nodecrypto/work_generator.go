// Copyright (c) 2024 The Repchain developers
// Use of this source code is governed by an ISC
// license that can be found in the LICENSE file.

package nodecrypto

import (
	"context"
	"runtime"
	"sync/atomic"

	"github.com/repchain/repchaind/numeric"
)

// GenerateWork searches for a nonce meeting threshold for root, splitting
// the nonce space across GOMAXPROCS worker goroutines. It returns as soon
// as any worker finds a solution, or ctx.Err() if cancelled first. This is
// the node's fallback CPU solver for local block building when no external
// (e.g. OpenCL) work peer is configured; OpenCL acceleration itself is out
// of scope.
func GenerateWork(ctx context.Context, root numeric.Hash, threshold uint64) (numeric.Work, error) {
	workers := runtime.GOMAXPROCS(0)
	if workers < 1 {
		workers = 1
	}

	found := make(chan numeric.Work, 1)
	var done int32

	workerCtx, cancel := context.WithCancel(ctx)
	defer cancel()

	for i := 0; i < workers; i++ {
		go func(start uint64) {
			n := start
			for {
				if atomic.LoadInt32(&done) != 0 {
					return
				}
				select {
				case <-workerCtx.Done():
					return
				default:
				}
				w := numeric.Work(n)
				if ValidateWork(w, root, threshold) {
					if atomic.CompareAndSwapInt32(&done, 0, 1) {
						found <- w
					}
					return
				}
				n += uint64(workers)
			}
		}(uint64(i))
	}

	select {
	case w := <-found:
		return w, nil
	case <-ctx.Done():
		atomic.StoreInt32(&done, 1)
		return 0, ctx.Err()
	}
}
