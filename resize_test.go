package colormatch

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func TestResize(t *testing.T) {
	img := gradient(10, 6)
	for _, f := range []ResampleFilter{NearestNeighbor, Bilinear, CatmullRom} {
		t.Run(f.String(), func(t *testing.T) {
			got := Resize(img, 7, 13, f)
			require.Equal(t, image.Rect(0, 0, 7, 13), got.Rect)
			require.Len(t, got.Pix, 7*13*3)
		})
	}
	require.True(t, Resize(img, 0, 5, Bilinear).Rect.Empty())
	require.Equal(t, "ResampleFilter(9)", ResampleFilter(9).String())
}

func TestNearestNeighborKeepsPalette(t *testing.T) {
	colors := map[NRGBColor]bool{{0xff, 0, 0}: true, {0, 0xff, 0}: true, {0, 0, 0xff}: true}
	img := NewNRGB(image.Rect(0, 0, 6, 6))
	i := 0
	for c := range colors {
		for y := range 6 {
			for x := range 2 {
				img.SetNRGB(2*i+x, y, c)
			}
		}
		i++
	}
	got := Resize(img, 17, 11, NearestNeighbor)
	for i := range got.NumPixels() {
		require.True(t, colors[got.Pixel(i)], "pixel %d has new color %s", i, got.Pixel(i))
	}
	smooth := Resize(img, 17, 11, Bilinear)
	new_colors := 0
	for i := range smooth.NumPixels() {
		if !colors[smooth.Pixel(i)] {
			new_colors++
		}
	}
	require.Greater(t, new_colors, 0)
}

func TestMatchSize(t *testing.T) {
	buf := bytes.Buffer{}
	SetLogger(slog.New(slog.NewTextHandler(&buf, nil)))
	defer SetLogger(nil)

	src, tgt := gradient(4, 3), gradient(8, 8)
	same := gradient(4, 3)
	require.Same(t, same, MatchSize(src, same, false))
	require.Empty(t, buf.String())

	for _, palette := range []bool{false, true} {
		got := MatchSize(src, tgt, palette)
		require.True(t, got.SameSize(src))
		require.NotSame(t, tgt, got)
	}
	require.Contains(t, buf.String(), "resizing target")
	require.Contains(t, buf.String(), "filter=nearest")
}

func TestLoggerDefaultsToSilent(t *testing.T) {
	SetLogger(nil)
	require.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
