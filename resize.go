package colormatch

import (
	"fmt"
	"image"

	xdraw "golang.org/x/image/draw"
)

var _ = fmt.Print

// ResampleFilter selects the interpolation used by Resize.
type ResampleFilter int

const (
	// NearestNeighbor never introduces colors that are not in the input,
	// which matters when the image is a fixed palette.
	NearestNeighbor ResampleFilter = iota
	// Bilinear is a smooth tent (triangle) filter.
	Bilinear
	// CatmullRom is a sharper cubic filter, slower than Bilinear.
	CatmullRom
)

func (f ResampleFilter) String() string {
	switch f {
	case NearestNeighbor:
		return "nearest"
	case Bilinear:
		return "bilinear"
	case CatmullRom:
		return "catmull-rom"
	}
	return fmt.Sprintf("ResampleFilter(%d)", int(f))
}

func (f ResampleFilter) interpolator() xdraw.Interpolator {
	switch f {
	case Bilinear:
		return xdraw.BiLinear
	case CatmullRom:
		return xdraw.CatmullRom
	}
	return xdraw.NearestNeighbor
}

// Resize returns a new image of exactly width x height pixels, ignoring the
// aspect ratio of img. A zero or negative dimension yields an empty image.
func Resize(img *NRGB, width, height int, filter ResampleFilter) *NRGB {
	if width <= 0 || height <= 0 {
		return NewNRGB(image.Rectangle{})
	}
	dst := NewNRGB(image.Rect(0, 0, width, height))
	if img.Rect.Empty() {
		return dst
	}
	filter.interpolator().Scale(dst, dst.Rect, img, img.Rect, xdraw.Src, nil)
	return dst
}

// MatchSize returns target unchanged if it already has the dimensions of
// source, otherwise a copy of target resized to them. In palette mode nearest
// neighbor sampling is used so that no new colors are introduced.
func MatchSize(source, target *NRGB, palette bool) *NRGB {
	if source.SameSize(target) {
		return target
	}
	filter := Bilinear
	if palette {
		filter = NearestNeighbor
	}
	Logger().Info("resizing target", "from", target.Rect.Size(), "to", source.Rect.Size(), "filter", filter)
	return Resize(target, source.Rect.Dx(), source.Rect.Dy(), filter)
}
