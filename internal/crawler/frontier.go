package crawler

import (
	"sort"
	"sync"

	"github.com/pyqlsa/wdict/internal/location"
)

// frontier holds per-depth queues of discovered-but-not-yet-fetched
// locations. push does not deduplicate: the same location can be queued
// more than once, at the same depth or at a deeper one, and it is the
// visited check at fetch start that keeps it from being fetched twice.
type frontier struct {
	mu     sync.Mutex
	queues [][]location.Location
}

func newFrontier() *frontier {
	return &frontier{}
}

// push appends loc to depth's queue, growing the queue slice as needed.
func (f *frontier) push(depth int, loc location.Location) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for len(f.queues) <= depth {
		f.queues = append(f.queues, nil)
	}
	f.queues[depth] = append(f.queues[depth], loc)
}

// drain returns depth's queue and empties it. Safe to call while other
// goroutines push to a different depth.
func (f *frontier) drain(depth int) []location.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	if depth >= len(f.queues) {
		return nil
	}
	q := f.queues[depth]
	f.queues[depth] = nil
	return q
}

// peek returns a copy of depth's queue without emptying it, for
// snapshotting.
func (f *frontier) peek(depth int) []location.Location {
	f.mu.Lock()
	defer f.mu.Unlock()
	if depth >= len(f.queues) {
		return nil
	}
	out := make([]location.Location, len(f.queues[depth]))
	copy(out, f.queues[depth])
	return out
}

// depthCount returns one past the highest depth with a non-nil queue
// slot allocated.
func (f *frontier) depthCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.queues)
}

// visitedSet is the set of normalized location strings that have
// started fetching. A location is marked visited at fetch start, not
// on success, so a failed fetch is never retried within the same run.
type visitedSet struct {
	mu sync.Mutex
	m  map[string]struct{}
}

func newVisitedSet() *visitedSet {
	return &visitedSet{m: make(map[string]struct{})}
}

// tryMark atomically checks and marks key as visited, returning true
// only if it was not already present.
func (v *visitedSet) tryMark(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	if _, ok := v.m[key]; ok {
		return false
	}
	v.m[key] = struct{}{}
	return true
}

// contains reports whether key is already visited, without marking it.
// Used as a best-effort check before enqueueing a freshly discovered
// out-link to keep the frontier from accumulating obvious duplicates;
// the authoritative check happens in tryMark at fetch start.
func (v *visitedSet) contains(key string) bool {
	v.mu.Lock()
	defer v.mu.Unlock()
	_, ok := v.m[key]
	return ok
}

// keys returns a sorted snapshot of the visited set.
func (v *visitedSet) keys() []string {
	v.mu.Lock()
	defer v.mu.Unlock()
	out := make([]string, 0, len(v.m))
	for k := range v.m {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}
