package transfer

import (
	"fmt"
	"math"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func random_keys(n int, seed uint64, distinct int) []float32 {
	rng := NewRand(seed)
	keys := make([]float32, n)
	for i := range keys {
		// few distinct values so that ties are common
		keys[i] = float32(rng.IntN(distinct)) * 0.25
	}
	return keys
}

func sorters() map[string]Sorter {
	return map[string]Sorter{
		"stable":            StableSorter{},
		"parallel-default":  &ParallelSorter{},
		"parallel-1-proc":   &ParallelSorter{Procs: 1, Threshold: 1},
		"parallel-3-procs":  &ParallelSorter{Procs: 3, Threshold: 2},
		"parallel-7-procs":  &ParallelSorter{Procs: 7, Threshold: 2},
		"parallel-16-procs": &ParallelSorter{Procs: 16, Threshold: 2},
	}
}

func TestSortersAgree(t *testing.T) {
	for _, n := range []int{0, 1, 2, 3, 17, 1000, 40000} {
		keys := random_keys(n, uint64(n), 50)
		want := make([]int, n)
		require.NoError(t, StableSorter{}.SortIndices(keys, want))
		require.NoError(t, CheckSorted(keys, want))
		for name, s := range sorters() {
			t.Run(fmt.Sprintf("%s/%d", name, n), func(t *testing.T) {
				perm := make([]int, n)
				// twice, to exercise scratch buffer reuse
				for range 2 {
					require.NoError(t, s.SortIndices(keys, perm))
					require.NoError(t, CheckSorted(keys, perm))
					require.Equal(t, want, perm)
				}
			})
		}
	}
}

func TestSortTiesByIndex(t *testing.T) {
	keys := []float32{2, 1, 2, 1, 0, 2}
	for name, s := range sorters() {
		perm := make([]int, len(keys))
		require.NoError(t, s.SortIndices(keys, perm), name)
		require.Equal(t, []int{4, 1, 3, 0, 2, 5}, perm, name)
	}
}

func TestSortNaN(t *testing.T) {
	nan := float32(math.NaN())
	keys := []float32{1, nan, -1, nan}
	for name, s := range sorters() {
		perm := make([]int, len(keys))
		require.NoError(t, s.SortIndices(keys, perm), name)
		require.Equal(t, []int{1, 3, 2, 0}, perm, name)
	}
}

func TestSortLengthMismatch(t *testing.T) {
	for name, s := range sorters() {
		require.Error(t, s.SortIndices(make([]float32, 3), make([]int, 2)), name)
	}
}

func TestCheckSorted(t *testing.T) {
	keys := []float32{3, 1, 2}
	require.NoError(t, CheckSorted(keys, []int{1, 2, 0}))
	require.Error(t, CheckSorted(keys, []int{0, 1, 2}))
	require.Error(t, CheckSorted(keys, []int{1, 1, 0}))
	require.Error(t, CheckSorted(keys, []int{1, 2, 3}))
	require.Error(t, CheckSorted(keys, []int{1, 2}))
}

func nan() float64 { return math.NaN() }
