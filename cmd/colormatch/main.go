// Command colormatch recolors an image so that its color distribution
// matches that of another image, using sliced optimal transport.
//
// Usage:
//
//	colormatch -s photo.jpg -t palette.png -d out.png [-n 100] [-r 1.0] [-b 16] [-p] [-v]
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/kovidgoyal/colormatch"
	"github.com/kovidgoyal/colormatch/transfer"
	"github.com/spf13/pflag"
)

var _ = fmt.Print

type options struct {
	src_path, dst_path, target_path string
	num_iters                       int
	step_factor                     float32
	batch_size                      int
	palette, verbose                bool
	seed                            uint64
	jpeg_quality                    int
	no_auto_orient                  bool
}

func parse_args(args []string, stderr io.Writer) (*options, error) {
	o := options{}
	fs := pflag.NewFlagSet("colormatch", pflag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.StringVarP(&o.src_path, "src-path", "s", "", "Image to recolor (required)")
	fs.StringVarP(&o.dst_path, "dst-path", "d", "", "Where to write the result, the format is taken from the extension (required)")
	fs.StringVarP(&o.target_path, "target-path", "t", "", "Image whose colors are to be matched (required)")
	fs.IntVarP(&o.num_iters, "num-iters", "n", transfer.DefaultIterations, "Number of iterations")
	fs.Float32VarP(&o.step_factor, "step-factor", "r", transfer.DefaultStepFactor, "Initial step factor, clamped to [0.01, 10]")
	fs.IntVarP(&o.batch_size, "batch-size", "b", transfer.DefaultBatchSize, "Number of random directions per iteration")
	fs.BoolVarP(&o.palette, "palette", "p", false, "Resize the target with nearest neighbor sampling, for palette images")
	fs.BoolVarP(&o.verbose, "verbose", "v", false, "Print diagnostics for every iteration instead of a progress bar")
	fs.Uint64Var(&o.seed, "seed", 0, "Seed for the random directions, 0 means a random seed")
	fs.IntVar(&o.jpeg_quality, "jpeg-quality", 95, "Quality when writing JPEG output, 1 to 100")
	fs.BoolVar(&o.no_auto_orient, "no-auto-orient", false, "Ignore the EXIF orientation of the input images")
	if err := fs.Parse(args); err != nil {
		return nil, err
	}
	for _, x := range []struct{ name, val string }{{"src-path", o.src_path}, {"dst-path", o.dst_path}, {"target-path", o.target_path}} {
		if x.val == "" {
			return nil, fmt.Errorf("the --%s option is required", x.name)
		}
	}
	if o.jpeg_quality < 1 || o.jpeg_quality > 100 {
		return nil, fmt.Errorf("the JPEG quality must be between 1 and 100, not %d", o.jpeg_quality)
	}
	return &o, nil
}

func run(args []string, stdout, stderr io.Writer) (err error) {
	o, err := parse_args(args, stderr)
	if err != nil {
		if errors.Is(err, pflag.ErrHelp) {
			return nil
		}
		return err
	}
	if o.verbose {
		colormatch.SetLogger(slog.New(slog.NewTextHandler(stdout, &slog.HandlerOptions{Level: slog.LevelDebug})))
		defer colormatch.SetLogger(nil)
	}
	log := colormatch.Logger()

	dopts := []colormatch.DecodeOption{colormatch.AutoOrientation(!o.no_auto_orient)}
	src, err := colormatch.Open(o.src_path, dopts...)
	if err != nil {
		return err
	}
	tgt, err := colormatch.Open(o.target_path, dopts...)
	if err != nil {
		return err
	}
	log.Info("source image", "width", src.Rect.Dx(), "height", src.Rect.Dy())
	log.Info("target image", "width", tgt.Rect.Dx(), "height", tgt.Rect.Dy())
	tgt = colormatch.MatchSize(src, tgt, o.palette)

	topts := []transfer.Option{
		transfer.Iterations(o.num_iters),
		transfer.StepFactor(o.step_factor),
		transfer.BatchSize(o.batch_size),
	}
	if o.seed != 0 {
		topts = append(topts, transfer.Seed(o.seed))
	}
	if !o.verbose {
		topts = append(topts, transfer.WithProgress(transfer.NewProgressBar(stderr, o.num_iters)))
	}
	t, err := transfer.New(topts...)
	if err != nil {
		return err
	}
	stats, err := t.Run(src, tgt)
	if err != nil {
		return err
	}
	if err = colormatch.Save(src, o.dst_path, colormatch.JPEGQuality(o.jpeg_quality)); err != nil {
		return err
	}
	log.Info("output written", "path", o.dst_path, "iterations", stats.Iterations, "final_step_factor", stats.FinalStepFactor)
	return nil
}

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
