package transfer

import (
	"fmt"
	"math"

	"github.com/kovidgoyal/go-parallel"
)

var _ = fmt.Print

// AdvectionMap holds the displacement accumulated for every source pixel
// during one outer iteration, in row-major pixel order.
type AdvectionMap [][3]float32

func NewAdvectionMap(num_pixels int) AdvectionMap {
	return make(AdvectionMap, num_pixels)
}

// Reset zeroes every entry.
func (m AdvectionMap) Reset() {
	clear(m)
}

// IsZero reports whether every entry is exactly zero.
func (m AdvectionMap) IsZero() bool {
	for _, v := range m {
		if v != [3]float32{} {
			return false
		}
	}
	return true
}

// Accumulate adds the displacement along d implied by pairing src_perm[k]
// with tgt_perm[k] for every rank k:
//
//	m[src_perm[k]] += step * (tgt_proj[tgt_perm[k]] - src_proj[src_perm[k]]) * d
//
// src_perm is a permutation so no entry is touched twice in one call, which
// lets ranks be split between workers without locking.
func (m AdvectionMap) Accumulate(src_perm, tgt_perm []int, src_proj, tgt_proj []float32, d Direction, step float32) error {
	n := len(m)
	if len(src_perm) != n || len(tgt_perm) != n || len(src_proj) != n || len(tgt_proj) != n {
		return fmt.Errorf("advection map has %d entries but got permutations of %d and %d and projections of %d and %d",
			n, len(src_perm), len(tgt_perm), len(src_proj), len(tgt_proj))
	}
	if n == 0 {
		return nil
	}
	return parallel.Run_in_parallel_over_range(0, func(start, limit int) {
		for k := start; k < limit; k++ {
			si := src_perm[k]
			delta := step * (tgt_proj[tgt_perm[k]] - src_proj[si])
			v := &m[si]
			v[0] += delta * d[0]
			v[1] += delta * d[1]
			v[2] += delta * d[2]
		}
	}, 0, n)
}

// Average divides every component by the number of directions that were
// accumulated.
func (m AdvectionMap) Average(batch_size int) {
	if batch_size <= 1 {
		return
	}
	b := float32(batch_size)
	for i := range m {
		m[i][0] /= b
		m[i][1] /= b
		m[i][2] /= b
	}
}

// Mean is the average displacement vector over all pixels.
func (m AdvectionMap) Mean() (ans [3]float32) {
	if len(m) == 0 {
		return
	}
	var sum [3]float64
	for _, v := range m {
		sum[0] += float64(v[0])
		sum[1] += float64(v[1])
		sum[2] += float64(v[2])
	}
	n := float64(len(m))
	return [3]float32{float32(sum[0] / n), float32(sum[1] / n), float32(sum[2] / n)}
}

func norm3(v [3]float32) float32 {
	return float32(math.Sqrt(float64(v[0]*v[0] + v[1]*v[1] + v[2]*v[2])))
}
