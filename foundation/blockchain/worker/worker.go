// Package worker implements background mining for the blockchain node.
package worker

import (
	"sync"

	"github.com/shabareesh1383/sociora/foundation/blockchain/state"
)

// target identifies the video a mining attempt runs against.
type target struct {
	videoCID  string
	creatorID string
}

// Worker manages the Proof of Transcoding/Storage workflow for the node.
type Worker struct {
	state        *state.State
	wg           sync.WaitGroup
	shut         chan struct{}
	startMining  chan target
	cancelMining chan struct{}
	evHandler    state.EventHandler
}

// Run creates a worker, registers the worker with the state package, and
// starts up the background processes.
func Run(st *state.State, evHandler state.EventHandler) {
	w := Worker{
		state:        st,
		shut:         make(chan struct{}),
		startMining:  make(chan target, 1),
		cancelMining: make(chan struct{}, 1),
		evHandler:    evHandler,
	}

	// Register this worker with the state package.
	st.Worker = &w

	// We don't want to return until we know the G is up and running.
	hasStarted := make(chan bool)

	w.wg.Add(1)
	go func() {
		defer w.wg.Done()
		hasStarted <- true
		w.miningOperations()
	}()

	<-hasStarted
}

// =============================================================================
// These methods implement the state.Worker interface.

// Shutdown terminates the goroutine performing work.
func (w *Worker) Shutdown() {
	w.evHandler("worker: shutdown: started")
	defer w.evHandler("worker: shutdown: completed")

	w.evHandler("worker: shutdown: signal cancel mining")
	w.SignalCancelMining()

	w.evHandler("worker: shutdown: terminate goroutine")
	close(w.shut)
	w.wg.Wait()
}

// SignalStartMining requests a mining attempt against the specified
// video. If a signal is already pending the request is dropped, since an
// attempt will start regardless.
func (w *Worker) SignalStartMining(videoCID string, creatorID string) {
	select {
	case w.startMining <- target{videoCID: videoCID, creatorID: creatorID}:
		w.evHandler("worker: SignalStartMining: video[%s]: mining signaled", videoCID)
	default:
		w.evHandler("worker: SignalStartMining: video[%s]: signal pending, dropped", videoCID)
	}
}

// SignalCancelMining signals the G executing the runMiningOperation
// function to stop immediately.
func (w *Worker) SignalCancelMining() {
	select {
	case w.cancelMining <- struct{}{}:
	default:
	}
	w.evHandler("worker: SignalCancelMining: MINING: CANCEL: signaled")
}

// =============================================================================

// isShutdown is used to test if a shutdown has been signaled.
func (w *Worker) isShutdown() bool {
	select {
	case <-w.shut:
		return true
	default:
		return false
	}
}
