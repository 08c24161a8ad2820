package transfer

import (
	"fmt"

	"github.com/kovidgoyal/colormatch"
)

// displace adds the integer part of v (truncated toward zero) to c and clamps
// the result to [0, 255]. NaN moves nothing.
func displace(c uint8, v float32) uint8 {
	if v != v {
		return c
	}
	v = max(-255, min(255, v))
	return uint8(max(0, min(255, int32(c)+int32(v))))
}

// ApplyAdvection moves every pixel of img by its entry in m. This is the only
// place the source raster is written during a run.
func ApplyAdvection(img *colormatch.NRGB, m AdvectionMap) error {
	if n := img.NumPixels(); n != len(m) {
		return fmt.Errorf("advection map has %d entries but the image has %d pixels", len(m), n)
	}
	width := img.Rect.Dx()
	return img.ForEachRow(func(start, limit int) {
		for y := start; y < limit; y++ {
			row := img.Row(y)
			for x, v := range m[y*width : (y+1)*width] {
				p := row[3*x : 3*x+3 : 3*x+3]
				p[0] = displace(p[0], v[0])
				p[1] = displace(p[1], v[1])
				p[2] = displace(p[2], v[2])
			}
		}
	})
}
