package utils

import (
	"errors"
	"runtime"
	"sync/atomic"

	"golang.org/x/sync/errgroup"
)

// ErrStopWork can be returned by a SplitWork callback to end its routine without failing the whole run.
var ErrStopWork = errors.New("stop work")

// SplitWork runs do for every workIndex in [0, workSize) over routines goroutines.
// Indexes are handed out in increasing order, so once a routine receives index n
// every index below n has been handed out as well.
// init is called once per routine before any work starts, to set up per-routine scratch state.
func SplitWork(routines int, workSize uint64, do func(workIndex uint64, routineIndex int) error, init func(routines, routineIndex int) error) error {
	if routines <= 0 {
		routines = max(runtime.NumCPU()-routines, 4)
	}

	if workSize < uint64(routines) {
		routines = int(workSize)
	}

	var counter atomic.Uint64

	for routineIndex := 0; routineIndex < routines; routineIndex++ {
		if init == nil {
			break
		}
		if err := init(routines, routineIndex); err != nil {
			return err
		}
	}

	var eg errgroup.Group

	for routineIndex := 0; routineIndex < routines; routineIndex++ {
		routineIndex := routineIndex
		eg.Go(func() error {
			for {
				workIndex := counter.Add(1)
				if workIndex > workSize {
					return nil
				}

				if err := do(workIndex-1, routineIndex); errors.Is(err, ErrStopWork) {
					return nil
				} else if err != nil {
					return err
				}
			}
		})
	}
	return eg.Wait()
}
