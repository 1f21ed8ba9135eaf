package engine

import (
	"github.com/gopherforge/primish/internal/search"
)

type workerCmd int

const (
	cmdStart workerCmd = iota
	cmdEnd
)

// worker runs one BestHillClimb to completion per cmdStart it receives,
// reporting the result on resultCh, until told to stop via cmdEnd.
type worker struct {
	ctx     *search.Context
	n, m, age int
	cmdCh   chan workerCmd
	resultCh chan search.State
}

func newWorker(ctx *search.Context, n, m, age int) *worker {
	return &worker{
		ctx:   ctx,
		n:     n,
		m:     m,
		age:   age,
		cmdCh: make(chan workerCmd, 1),
		// Buffered by one: the coordinator is guaranteed to drain exactly
		// one result before issuing the next cmdStart, so this never
		// backs up, but buffering avoids a rendezvous stall if the
		// coordinator is a step late reading.
		resultCh: make(chan search.State, 1),
	}
}

func (w *worker) run() {
	for cmd := range w.cmdCh {
		switch cmd {
		case cmdStart:
			w.resultCh <- search.BestHillClimb(w.ctx, w.n, w.m, w.age)
		case cmdEnd:
			return
		}
	}
}
