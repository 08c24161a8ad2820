package colormatch

import (
	"fmt"
	"image"
)

var _ = fmt.Print

// orientation is an EXIF flag that specifies the transformation
// that should be applied to image to display it correctly.
type orientation int

const (
	orientationUnspecified = 0
	orientationNormal      = 1
	orientationFlipH       = 2
	orientationRotate180   = 3
	orientationFlipV       = 4
	orientationTranspose   = 5
	orientationRotate270   = 6
	orientationTransverse  = 7
	orientationRotate90    = 8
)

// fixOrientation applies a transform to img corresponding to the given orientation flag.
func fixOrientation(img *NRGB, o orientation) (*NRGB, error) {
	switch o {
	case orientationFlipH:
		return FlipH(img)
	case orientationFlipV:
		return FlipV(img)
	case orientationRotate90:
		return Rotate90(img)
	case orientationRotate180:
		return Rotate180(img)
	case orientationRotate270:
		return Rotate270(img)
	case orientationTranspose:
		return Transpose(img)
	case orientationTransverse:
		return Transverse(img)
	}
	return img, nil
}

// remap builds a new image of size w x h where the pixel at (x, y) is taken
// from src at src_of(x, y). Coordinates are relative to the origins.
func remap(src *NRGB, w, h int, src_of func(x, y int) (int, int)) (*NRGB, error) {
	dst := NewNRGB(image.Rect(0, 0, w, h))
	err := dst.ForEachRow(func(start, limit int) {
		for y := start; y < limit; y++ {
			drow := dst.Row(y)
			for x := range w {
				sx, sy := src_of(x, y)
				i := sy*src.Stride + sx*3
				s := src.Pix[i : i+3 : i+3]
				drow[0], drow[1], drow[2] = s[0], s[1], s[2]
				drow = drow[3:]
			}
		}
	})
	if err != nil {
		return nil, err
	}
	return dst, nil
}

// FlipH flips the image horizontally (from left to right).
func FlipH(img *NRGB) (*NRGB, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return remap(img, w, h, func(x, y int) (int, int) { return w - 1 - x, y })
}

// FlipV flips the image vertically (from top to bottom).
func FlipV(img *NRGB) (*NRGB, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return remap(img, w, h, func(x, y int) (int, int) { return x, h - 1 - y })
}

// Rotate90 rotates the image 90 degrees counter-clockwise.
func Rotate90(img *NRGB) (*NRGB, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return remap(img, h, w, func(x, y int) (int, int) { return w - 1 - y, x })
}

// Rotate180 rotates the image 180 degrees.
func Rotate180(img *NRGB) (*NRGB, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return remap(img, w, h, func(x, y int) (int, int) { return w - 1 - x, h - 1 - y })
}

// Rotate270 rotates the image 270 degrees counter-clockwise.
func Rotate270(img *NRGB) (*NRGB, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return remap(img, h, w, func(x, y int) (int, int) { return y, h - 1 - x })
}

// Transpose flips the image horizontally and rotates 90 degrees counter-clockwise.
func Transpose(img *NRGB) (*NRGB, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return remap(img, h, w, func(x, y int) (int, int) { return y, x })
}

// Transverse flips the image vertically and rotates 90 degrees counter-clockwise.
func Transverse(img *NRGB) (*NRGB, error) {
	w, h := img.Rect.Dx(), img.Rect.Dy()
	return remap(img, h, w, func(x, y int) (int, int) { return w - 1 - y, h - 1 - x })
}
