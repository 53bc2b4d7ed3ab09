package preimage

import (
	"context"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"git.gammaspectra.live/P2Pool/md5sum/md5"
	"git.gammaspectra.live/P2Pool/md5sum/types"
	"git.gammaspectra.live/P2Pool/md5sum/utils"
	"github.com/dolthub/swiss"
)

// how many candidates a worker hashes between context checks
const checkInterval = 1 << 12

type Options struct {
	// Workers number of goroutines, see utils.SplitWork for values <= 0
	Workers int
	// ProgressInterval logs progress periodically, zero disables it
	ProgressInterval time.Duration
}

type Result struct {
	Target   types.Digest `json:"target"`
	Found    bool         `json:"found"`
	Index    uint64       `json:"index"`
	Preimage types.Bytes  `json:"preimage,omitempty"`
}

type search struct {
	lookup  *swiss.Map[types.Digest, int]
	results []Result
	lock    sync.Mutex
	pending int

	// candidates from this index on cannot improve any result
	limit atomic.Uint64

	hashed  atomic.Uint64
	scratch [][]byte
}

// Search looks for preimages of all targets among candidates 0 up to bound-1, in parallel.
// Each found Result holds the lowest matching index for its target, which is the
// same candidate FindPreimage returns. Results are in the same order as targets;
// duplicate targets share the same outcome.
// If ctx is cancelled the results found so far are returned together with ctx.Err().
func Search(ctx context.Context, targets []types.Digest, bound uint64, opts Options) ([]Result, error) {
	s := &search{
		lookup:  swiss.NewMap[types.Digest, int](uint32(max(len(targets), 1))),
		results: make([]Result, 0, len(targets)),
	}
	for _, target := range targets {
		if _, ok := s.lookup.Get(target); ok {
			continue
		}
		s.lookup.Put(target, len(s.results))
		s.results = append(s.results, Result{Target: target})
	}
	s.pending = len(s.results)
	s.limit.Store(bound)

	if s.pending > 0 && bound > 0 {
		stopProgress := s.reportProgress(bound, opts.ProgressInterval)
		err := utils.SplitWork(opts.Workers, bound, func(workIndex uint64, routineIndex int) error {
			return s.try(ctx, workIndex, routineIndex)
		}, func(routines, routineIndex int) error {
			if routineIndex == 0 {
				s.scratch = make([][]byte, routines)
			}
			s.scratch[routineIndex] = make([]byte, 0, 8)
			return nil
		})
		stopProgress()
		if err != nil {
			return s.collect(targets), err
		}
	}

	return s.collect(targets), nil
}

func (s *search) try(ctx context.Context, i uint64, routineIndex int) error {
	if i >= s.limit.Load() {
		return utils.ErrStopWork
	}
	if i%checkInterval == 0 {
		if err := ctx.Err(); err != nil {
			s.lowerLimit(0)
			return err
		}
	}

	buf := AppendCandidate(s.scratch[routineIndex][:0], i)
	s.scratch[routineIndex] = buf
	s.hashed.Add(1)

	if j, ok := s.lookup.Get(md5.Sum(buf)); ok {
		s.found(j, i, buf)
	}
	return nil
}

func (s *search) found(j int, i uint64, buf []byte) {
	s.lock.Lock()
	defer s.lock.Unlock()

	r := &s.results[j]
	if r.Found && r.Index <= i {
		return
	}
	if !r.Found {
		s.pending--
	}
	r.Found = true
	r.Index = i
	r.Preimage = slices.Clone(buf)

	utils.Noticef("Search", "found preimage %x for %s at index %d", buf, r.Target, i)

	if s.pending == 0 {
		// workers only ever move to higher indexes, and every lower index is already taken
		var highest uint64
		for _, result := range s.results {
			highest = max(highest, result.Index)
		}
		s.lowerLimit(highest)
	}
}

func (s *search) lowerLimit(v uint64) {
	for {
		current := s.limit.Load()
		if v >= current || s.limit.CompareAndSwap(current, v) {
			return
		}
	}
}

func (s *search) collect(targets []types.Digest) []Result {
	s.lock.Lock()
	defer s.lock.Unlock()

	out := make([]Result, len(targets))
	for i, target := range targets {
		j, _ := s.lookup.Get(target)
		out[i] = s.results[j]
		out[i].Preimage = slices.Clone(s.results[j].Preimage)
	}
	return out
}

func (s *search) reportProgress(bound uint64, interval time.Duration) (stop func()) {
	if interval <= 0 {
		return func() {}
	}

	done := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		start := time.Now()
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-done:
				return
			case <-ticker.C:
				hashed := s.hashed.Load()
				rate := float64(hashed) / time.Since(start).Seconds()
				utils.Logf("Search", "%d/%d candidates (%.2f%%), %sH/s", hashed, bound, float64(hashed)*100/float64(bound), utils.SiUnits(rate, 2))
			}
		}
	}()

	return func() {
		close(done)
		wg.Wait()
	}
}

// Find is Search for a single target
func Find(ctx context.Context, target types.Digest, bound uint64, opts Options) (Result, error) {
	results, err := Search(ctx, []types.Digest{target}, bound, opts)
	return results[0], err
}

// IsNotFound reports whether every result in results is missing a preimage
func IsNotFound(results []Result) bool {
	return !slices.ContainsFunc(results, func(r Result) bool {
		return r.Found
	})
}
