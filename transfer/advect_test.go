package transfer

import (
	"fmt"
	"image"
	"testing"

	"github.com/kovidgoyal/colormatch"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestAccumulate(t *testing.T) {
	m := NewAdvectionMap(3)
	require.True(t, m.IsZero())
	d := Direction{1, 0, 0}
	src_proj := []float32{10, 30, 20}
	tgt_proj := []float32{5, 100, 50}
	src_perm := []int{0, 2, 1}
	tgt_perm := []int{0, 2, 1}
	require.NoError(t, m.Accumulate(src_perm, tgt_perm, src_proj, tgt_proj, d, 0.5))
	// pixel 0 pairs with 5, pixel 2 with 50, pixel 1 with 100
	require.Equal(t, AdvectionMap{{-2.5, 0, 0}, {35, 0, 0}, {15, 0, 0}}, m)

	require.NoError(t, m.Accumulate(src_perm, tgt_perm, src_proj, tgt_proj, Direction{0, 0, 1}, 1))
	require.Equal(t, AdvectionMap{{-2.5, 0, -5}, {35, 0, 70}, {15, 0, 30}}, m)

	m.Average(2)
	require.Equal(t, AdvectionMap{{-1.25, 0, -2.5}, {17.5, 0, 35}, {7.5, 0, 15}}, m)
	mean := m.Mean()
	require.InDelta(t, 23.75/3, mean[0], 1e-5)
	require.Equal(t, float32(0), mean[1])
	require.InDelta(t, 47.5/3, mean[2], 1e-5)

	m.Reset()
	require.True(t, m.IsZero())
	require.Len(t, m, 3)
}

func TestAccumulateLengthMismatch(t *testing.T) {
	m := NewAdvectionMap(2)
	require.Error(t, m.Accumulate([]int{0}, []int{0, 1}, []float32{0, 0}, []float32{0, 0}, Direction{1, 0, 0}, 1))
	require.Equal(t, [3]float32{}, NewAdvectionMap(0).Mean())
}

func TestDisplace(t *testing.T) {
	for _, tc := range []struct {
		c    uint8
		v    float32
		want uint8
	}{
		{100, 0.9, 100},
		{100, -0.9, 100},
		{100, 1.9, 101},
		{100, -1.9, 99},
		{250, 10, 255},
		{5, -10, 0},
		{0, 1e9, 255},
		{255, -1e9, 0},
		{77, float32(nan()), 77},
	} {
		require.Equal(t, tc.want, displace(tc.c, tc.v), "%d + %v", tc.c, tc.v)
	}
}

func TestApplyAdvection(t *testing.T) {
	img := colormatch.NewNRGB(image.Rect(0, 0, 2, 1))
	copy(img.Pix, []uint8{10, 20, 30, 250, 5, 128})
	m := AdvectionMap{{-20, 1.5, 0}, {10, -10, -0.5}}
	require.NoError(t, ApplyAdvection(img, m))
	require.Equal(t, []uint8{0, 21, 30, 255, 0, 128}, img.Pix)
	require.Error(t, ApplyAdvection(img, NewAdvectionMap(3)))
}
