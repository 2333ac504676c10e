package worker

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/shabareesh1383/sociora/foundation/blockchain/mining"
)

// miningOperations handles mining.
func (w *Worker) miningOperations() {
	w.evHandler("worker: miningOperations: G started")
	defer w.evHandler("worker: miningOperations: G completed")

	for {
		select {
		case tgt := <-w.startMining:
			if !w.isShutdown() {
				w.runMiningOperation(tgt)
			}
		case <-w.shut:
			w.evHandler("worker: miningOperations: received shut signal")
			return
		}
	}
}

// runMiningOperation runs the mining pipeline for one target video and
// writes the resulting block to the database.
func (w *Worker) runMiningOperation(tgt target) {
	w.evHandler("worker: runMiningOperation: MINING: started: video[%s]", tgt.videoCID)
	defer w.evHandler("worker: runMiningOperation: MINING: completed")

	// Drain the cancel mining channel before starting.
	select {
	case <-w.cancelMining:
		w.evHandler("worker: runMiningOperation: MINING: drained cancel channel")
	default:
	}

	// Create a context so mining can be cancelled.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	// Can't return from this function until these G's are complete.
	var wg sync.WaitGroup
	wg.Add(2)

	// This G exists to cancel the mining operation.
	go func() {
		defer func() {
			cancel()
			wg.Done()
		}()

		select {
		case <-w.cancelMining:
			w.evHandler("worker: runMiningOperation: MINING: CANCEL: requested")
		case <-ctx.Done():
		}
	}()

	// This G is performing the mining.
	go func() {
		defer func() {
			cancel()
			wg.Done()
		}()

		t := time.Now()
		block, _, _, err := w.state.MineVideoBlock(ctx, tgt.videoCID, tgt.creatorID)
		duration := time.Since(t)

		w.evHandler("worker: runMiningOperation: MINING: mining duration[%v]", duration)

		if err != nil {
			var vErr *mining.ValidationError
			switch {
			case errors.As(err, &vErr):
				w.evHandler("worker: runMiningOperation: MINING: WARNING: %s", vErr.Result.ErrorMessage)
			case ctx.Err() != nil:
				w.evHandler("worker: runMiningOperation: MINING: CANCEL: complete")
			default:
				w.evHandler("worker: runMiningOperation: MINING: ERROR: %s", err)
			}
			return
		}

		w.evHandler("worker: runMiningOperation: MINING: mined blk[%d] hash[%s]", block.BlockNumber, block.Hash())
	}()

	// Wait for both G's to terminate.
	wg.Wait()
}
