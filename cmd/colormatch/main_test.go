package main

import (
	"bytes"
	"fmt"
	"image"
	"os"
	"path/filepath"
	"testing"

	"github.com/kovidgoyal/colormatch"
	"github.com/kovidgoyal/colormatch/transfer"
	"github.com/stretchr/testify/require"
)

var _ = fmt.Print

func write_image(t *testing.T, dir, name string, w, h int, base uint8) string {
	t.Helper()
	img := colormatch.NewNRGB(image.Rect(0, 0, w, h))
	for i := range img.Pix {
		img.Pix[i] = base + uint8(i%50)
	}
	path := filepath.Join(dir, name)
	require.NoError(t, colormatch.Save(img, path))
	return path
}

func TestRun(t *testing.T) {
	dir := t.TempDir()
	src := write_image(t, dir, "src.png", 8, 6, 0)
	tgt := write_image(t, dir, "tgt.bmp", 5, 5, 180)
	dst := filepath.Join(dir, "out.png")

	stdout, stderr := bytes.Buffer{}, bytes.Buffer{}
	require.NoError(t, run([]string{"-s", src, "-t", tgt, "-d", dst, "-n", "3", "-b", "2", "--seed", "5", "-v"}, &stdout, &stderr))
	out, err := colormatch.Open(dst)
	require.NoError(t, err)
	require.Equal(t, image.Rect(0, 0, 8, 6), out.Rect)
	log := stdout.String()
	require.Contains(t, log, "source image")
	require.Contains(t, log, "resizing target")
	require.Contains(t, log, "iter=2")
	require.Contains(t, log, "output written")

	stdout.Reset()
	dst2 := filepath.Join(dir, "out2.png")
	require.NoError(t, run([]string{"--src-path", src, "--target-path", tgt, "--dst-path", dst2, "--num-iters", "3", "--batch-size", "2", "--seed", "5", "--palette"}, &stdout, &stderr))
	require.Empty(t, stdout.String())
	_, err = os.Stat(dst2)
	require.NoError(t, err)
}

func TestZeroIterationsCopiesSource(t *testing.T) {
	dir := t.TempDir()
	src := write_image(t, dir, "src.png", 7, 3, 10)
	tgt := write_image(t, dir, "tgt.png", 7, 3, 200)
	dst := filepath.Join(dir, "out.bmp")
	require.NoError(t, run([]string{"-s", src, "-t", tgt, "-d", dst, "-n", "0"}, &bytes.Buffer{}, &bytes.Buffer{}))
	a, err := colormatch.Open(src)
	require.NoError(t, err)
	b, err := colormatch.Open(dst)
	require.NoError(t, err)
	require.Equal(t, a.Pix, b.Pix)
}

func TestRunErrors(t *testing.T) {
	dir := t.TempDir()
	src := write_image(t, dir, "src.png", 4, 4, 0)
	tgt := write_image(t, dir, "tgt.png", 4, 4, 100)
	missing := filepath.Join(dir, "missing.png")
	q := func(args ...string) error {
		return run(args, &bytes.Buffer{}, &bytes.Buffer{})
	}

	err := q("-t", tgt, "-d", filepath.Join(dir, "x.png"))
	require.ErrorContains(t, err, "--src-path")

	err = q("-s", missing, "-t", tgt, "-d", filepath.Join(dir, "x.png"))
	require.ErrorContains(t, err, missing)
	err = q("-s", src, "-t", missing, "-d", filepath.Join(dir, "x.png"))
	require.ErrorContains(t, err, missing)
	_, serr := os.Stat(filepath.Join(dir, "x.png"))
	require.True(t, os.IsNotExist(serr))

	bad := filepath.Join(dir, "out.unknown")
	err = q("-s", src, "-t", tgt, "-d", bad, "-n", "1")
	require.ErrorIs(t, err, colormatch.ErrUnsupportedFormat)
	require.ErrorContains(t, err, bad)

	err = q("-s", src, "-t", tgt, "-d", filepath.Join(dir, "x.png"), "-b", "0")
	require.ErrorIs(t, err, transfer.ErrInvalidBatchSize)
	err = q("-s", src, "-t", tgt, "-d", filepath.Join(dir, "x.png"), "-n", "-2")
	require.ErrorIs(t, err, transfer.ErrInvalidIterations)
	err = q("-s", src, "-t", tgt, "-d", filepath.Join(dir, "x.jpg"), "--jpeg-quality", "101")
	require.Error(t, err)
	err = q("--no-such-flag")
	require.Error(t, err)

	require.NoError(t, q("--help"))
}
