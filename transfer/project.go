package transfer

import (
	"github.com/kovidgoyal/colormatch"
)

// Project computes the dot product of every pixel's color with d, in
// row-major pixel order. dst is reused if it is large enough. img is only
// read.
func Project(img *colormatch.NRGB, d Direction, dst []float32) ([]float32, error) {
	n := img.NumPixels()
	if cap(dst) < n {
		dst = make([]float32, n)
	}
	dst = dst[:n]
	width := img.Rect.Dx()
	d0, d1, d2 := d[0], d[1], d[2]
	err := img.ForEachRow(func(start, limit int) {
		for y := start; y < limit; y++ {
			row := img.Row(y)
			out := dst[y*width : (y+1)*width]
			for x := range out {
				p := row[3*x : 3*x+3 : 3*x+3]
				out[x] = float32(p[0])*d0 + float32(p[1])*d1 + float32(p[2])*d2
			}
		}
	})
	return dst, err
}
