package transfer

import (
	"cmp"
	"fmt"
	"slices"
	"sync"

	"github.com/kovidgoyal/go-parallel"
)

// Sorter fills perm with the indices 0..len(keys)-1 ordered by non-decreasing
// key. Equal keys are ordered by index. len(perm) must equal len(keys).
//
// Pairing the permutations of two equally sized key sets rank by rank is the
// optimal transport plan between them on the real line.
type Sorter interface {
	SortIndices(keys []float32, perm []int) error
}

// by_key orders indices by key then by index. cmp.Compare places NaN before
// every other value, so this is a total order even for degenerate directions.
func by_key(keys []float32) func(a, b int) int {
	return func(a, b int) int {
		if c := cmp.Compare(keys[a], keys[b]); c != 0 {
			return c
		}
		return cmp.Compare(a, b)
	}
}

func identity(perm []int) {
	for i := range perm {
		perm[i] = i
	}
}

func check_lengths(keys []float32, perm []int) error {
	if len(keys) != len(perm) {
		return fmt.Errorf("permutation has %d entries but there are %d keys", len(perm), len(keys))
	}
	return nil
}

// StableSorter sorts on the calling goroutine.
type StableSorter struct{}

func (StableSorter) SortIndices(keys []float32, perm []int) error {
	if err := check_lengths(keys, perm); err != nil {
		return err
	}
	identity(perm)
	slices.SortFunc(perm, by_key(keys))
	return nil
}

// DefaultParallelThreshold is the number of keys below which ParallelSorter
// sorts serially.
const DefaultParallelThreshold = 1 << 14

// ParallelSorter sorts contiguous runs of the index range concurrently and
// then merges adjacent runs pairwise, with the merges of each level also done
// concurrently. The result is identical to that of StableSorter.
//
// A ParallelSorter keeps a scratch buffer between calls and must not be used
// from more than one goroutine at a time.
type ParallelSorter struct {
	// Procs is the number of workers, zero means GOMAXPROCS.
	Procs int
	// Threshold overrides DefaultParallelThreshold when positive.
	Threshold int

	scratch []int
}

type run struct{ start, limit int }

func (s *ParallelSorter) threshold() int {
	if s.Threshold > 0 {
		return s.Threshold
	}
	return DefaultParallelThreshold
}

func merge_runs(a, b, dst []int, compare func(a, b int) int) {
	i, j, k := 0, 0, 0
	for i < len(a) && j < len(b) {
		if compare(a[i], b[j]) <= 0 {
			dst[k] = a[i]
			i++
		} else {
			dst[k] = b[j]
			j++
		}
		k++
	}
	k += copy(dst[k:], a[i:])
	copy(dst[k:], b[j:])
}

func (s *ParallelSorter) SortIndices(keys []float32, perm []int) (err error) {
	if err = check_lengths(keys, perm); err != nil {
		return err
	}
	n := len(keys)
	identity(perm)
	compare := by_key(keys)
	if n < s.threshold() {
		slices.SortFunc(perm, compare)
		return nil
	}
	var mu sync.Mutex
	runs := make([]run, 0, 64)
	if err = parallel.Run_in_parallel_over_range(s.Procs, func(start, limit int) {
		if limit <= start {
			return
		}
		slices.SortFunc(perm[start:limit], compare)
		mu.Lock()
		runs = append(runs, run{start, limit})
		mu.Unlock()
	}, 0, n); err != nil {
		return err
	}
	slices.SortFunc(runs, func(a, b run) int { return cmp.Compare(a.start, b.start) })

	if cap(s.scratch) < n {
		s.scratch = make([]int, n)
	}
	src, dst := perm, s.scratch[:n]
	for len(runs) > 1 {
		pairs := len(runs) / 2
		if err = parallel.Run_in_parallel_over_range(s.Procs, func(start, limit int) {
			for p := start; p < limit; p++ {
				a, b := runs[2*p], runs[2*p+1]
				merge_runs(src[a.start:a.limit], src[b.start:b.limit], dst[a.start:b.limit], compare)
			}
		}, 0, pairs); err != nil {
			return err
		}
		next := make([]run, 0, pairs+1)
		for p := range pairs {
			next = append(next, run{runs[2*p].start, runs[2*p+1].limit})
		}
		if len(runs)%2 == 1 {
			last := runs[len(runs)-1]
			copy(dst[last.start:last.limit], src[last.start:last.limit])
			next = append(next, last)
		}
		runs = next
		src, dst = dst, src
	}
	if &src[0] != &perm[0] {
		copy(perm, src)
	}
	return nil
}

// CheckSorted returns an error if perm is not a permutation of the indices of
// keys in non-decreasing key order.
func CheckSorted(keys []float32, perm []int) error {
	if err := check_lengths(keys, perm); err != nil {
		return err
	}
	seen := make([]bool, len(perm))
	for k, idx := range perm {
		if idx < 0 || idx >= len(perm) || seen[idx] {
			return fmt.Errorf("entry %d of the permutation (%d) is out of range or repeated", k, idx)
		}
		seen[idx] = true
		if k > 0 && cmp.Less(keys[idx], keys[perm[k-1]]) {
			return fmt.Errorf("keys out of order at rank %d: %v < %v", k, keys[idx], keys[perm[k-1]])
		}
	}
	return nil
}
