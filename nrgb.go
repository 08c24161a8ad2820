package colormatch

import (
	"fmt"
	"image"
	"image/color"

	"github.com/kovidgoyal/go-parallel"
)

var _ = fmt.Print

type NRGBColor struct {
	R, G, B uint8
}

func (c NRGBColor) AsSharp() string {
	return fmt.Sprintf("#%02X%02X%02X", c.R, c.G, c.B)
}

func (c NRGBColor) String() string {
	return fmt.Sprintf("NRGBColor{%02X %02X %02X}", c.R, c.G, c.B)
}

func (c NRGBColor) RGBA() (r, g, b, a uint32) {
	r = uint32(c.R)
	r |= r << 8
	g = uint32(c.G)
	g |= g << 8
	b = uint32(c.B)
	b |= b << 8
	a = 65535 // (255 << 8 | 255)
	return
}

// NRGB is an in-memory opaque image with three 8-bit channels per pixel. It
// is the raster type that colour transfer operates on: pixels are visited in
// row-major order and pixel number i is at (i % width, i / width) relative to
// Rect.Min.
type NRGB struct {
	// Pix holds the image's pixels, in R, G, B order. The pixel at
	// (x, y) starts at Pix[(y-Rect.Min.Y)*Stride + (x-Rect.Min.X)*3].
	Pix []uint8
	// Stride is the Pix stride (in bytes) between vertically adjacent pixels.
	Stride int
	// Rect is the image's bounds.
	Rect image.Rectangle
}

func nrgbModel(c color.Color) color.Color {
	if _, ok := c.(NRGBColor); ok {
		return c
	}
	r, g, b, a := c.RGBA()
	return unpremultiplied(r, g, b, a)
}

func unpremultiplied(r, g, b, a uint32) NRGBColor {
	switch a {
	case 0xffff:
		return NRGBColor{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	case 0:
		return NRGBColor{0, 0, 0}
	default:
		// Since Color.RGBA returns an alpha-premultiplied color, we should have r <= a && g <= a && b <= a.
		r = (r * 0xffff) / a
		g = (g * 0xffff) / a
		b = (b * 0xffff) / a
		return NRGBColor{uint8(r >> 8), uint8(g >> 8), uint8(b >> 8)}
	}
}

var NRGBModel color.Model = color.ModelFunc(nrgbModel)

func (p *NRGB) ColorModel() color.Model { return NRGBModel }

func (p *NRGB) Bounds() image.Rectangle { return p.Rect }

func (p *NRGB) At(x, y int) color.Color {
	return p.NRGBAt(x, y)
}

func (p *NRGB) NRGBAt(x, y int) NRGBColor {
	if !(image.Point{x, y}.In(p.Rect)) {
		return NRGBColor{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3] // Small cap improves performance, see https://golang.org/issue/27857
	return NRGBColor{s[0], s[1], s[2]}
}

// PixOffset returns the index of the first element of Pix that corresponds to
// the pixel at (x, y).
func (p *NRGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*3
}

func (p *NRGB) Set(x, y int, c color.Color) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	c1 := NRGBModel.Convert(c).(NRGBColor)
	s := p.Pix[i : i+3 : i+3] // Small cap improves performance, see https://golang.org/issue/27857
	s[0] = c1.R
	s[1] = c1.G
	s[2] = c1.B
}

func (p *NRGB) SetNRGB(x, y int, c NRGBColor) {
	if !(image.Point{x, y}.In(p.Rect)) {
		return
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+3 : i+3]
	s[0], s[1], s[2] = c.R, c.G, c.B
}

// Opaque scans the entire image and reports whether it is fully opaque.
func (p *NRGB) Opaque() bool { return true }

// NumPixels is the number of pixels in the image, width * height.
func (p *NRGB) NumPixels() int { return p.Rect.Dx() * p.Rect.Dy() }

// SameSize reports whether both images have the same width and height.
func (p *NRGB) SameSize(o *NRGB) bool {
	return p.Rect.Dx() == o.Rect.Dx() && p.Rect.Dy() == o.Rect.Dy()
}

// Row returns the pixel bytes of row y, where y is relative to Rect.Min.Y.
// The returned slice has exactly 3*width bytes and aliases Pix.
func (p *NRGB) Row(y int) []uint8 {
	start := y * p.Stride
	end := start + 3*p.Rect.Dx()
	return p.Pix[start:end:end]
}

// Pixel returns pixel number i in row-major order.
func (p *NRGB) Pixel(i int) NRGBColor {
	w := p.Rect.Dx()
	x, y := i%w, i/w
	return p.NRGBAt(x+p.Rect.Min.X, y+p.Rect.Min.Y)
}

// Clone returns a deep copy of the image with a compact stride.
func (p *NRGB) Clone() *NRGB {
	ans := NewNRGB(p.Rect)
	for y := range p.Rect.Dy() {
		copy(ans.Row(y), p.Row(y))
	}
	return ans
}

// ForEachRow calls f concurrently over disjoint ranges of rows [start, limit),
// relative to Rect.Min.Y, using all available CPUs.
func (p *NRGB) ForEachRow(f func(start, limit int)) error {
	h := p.Rect.Dy()
	if h <= 0 {
		return nil
	}
	return parallel.Run_in_parallel_over_range(0, f, 0, h)
}

func NewNRGB(r image.Rectangle) *NRGB {
	return &NRGB{
		Pix:    make([]uint8, 3*r.Dx()*r.Dy()),
		Stride: 3 * r.Dx(),
		Rect:   r,
	}
}

func NewNRGBWithContiguousRGBPixels(p []byte, left, top, width, height int) (*NRGB, error) {
	const bpp = 3
	if expected := bpp * width * height; expected != len(p) {
		return nil, fmt.Errorf("the image width and height dont match the size of the specified pixel data: width=%d height=%d sz=%d != %d", width, height, len(p), expected)
	}
	return &NRGB{
		Pix:    p,
		Stride: bpp * width,
		Rect:   image.Rectangle{image.Point{left, top}, image.Point{left + width, top + height}},
	}, nil
}

// NewNRGBFromImage converts any image into a new NRGB image with its origin
// at (0, 0). Alpha is discarded after un-premultiplying, so fully transparent
// pixels become black. An *NRGB input is copied, never aliased.
func NewNRGBFromImage(img image.Image) (*NRGB, error) {
	b := img.Bounds()
	width := b.Dx()
	ans := NewNRGB(image.Rect(0, 0, width, b.Dy()))
	var f func(start, limit int)
	switch src := img.(type) {
	case *NRGB:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				copy(ans.Row(y), src.Row(y))
			}
		}
	case *image.NRGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := src.Pix[src.Stride*y:]
				drow := ans.Row(y)
				for range width {
					drow[0], drow[1], drow[2] = row[0], row[1], row[2]
					row = row[4:]
					drow = drow[3:]
				}
			}
		}
	case *image.RGBA:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := src.Pix[src.Stride*y:]
				drow := ans.Row(y)
				for range width {
					s := row[0:4:4]
					if a := s[3]; a == 0xff {
						drow[0], drow[1], drow[2] = s[0], s[1], s[2]
					} else {
						c := unpremultiplied(uint32(s[0])*0x101, uint32(s[1])*0x101, uint32(s[2])*0x101, uint32(a)*0x101)
						drow[0], drow[1], drow[2] = c.R, c.G, c.B
					}
					row = row[4:]
					drow = drow[3:]
				}
			}
		}
	case *image.Gray:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				row := src.Pix[src.Stride*y : src.Stride*y+width]
				drow := ans.Row(y)
				for _, gray := range row {
					drow[0], drow[1], drow[2] = gray, gray, gray
					drow = drow[3:]
				}
			}
		}
	default:
		f = func(start, limit int) {
			for y := start; y < limit; y++ {
				drow := ans.Row(y)
				for x := range width {
					r, g, bl, a := img.At(x+b.Min.X, y+b.Min.Y).RGBA()
					c := unpremultiplied(r, g, bl, a)
					drow[0], drow[1], drow[2] = c.R, c.G, c.B
					drow = drow[3:]
				}
			}
		}
	}
	if err := ans.ForEachRow(f); err != nil {
		return nil, err
	}
	return ans, nil
}
