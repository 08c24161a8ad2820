package transfer

import (
	"fmt"
	"io"

	"github.com/schollz/progressbar/v3"
)

// Progress is told about completed outer iterations. It has no effect on
// the result.
type Progress interface {
	Advance(count int)
	Finish()
}

type NopProgress struct{}

func (NopProgress) Advance(int) {}
func (NopProgress) Finish()     {}

type progress_bar struct {
	bar *progressbar.ProgressBar
}

func (p *progress_bar) Advance(count int) { _ = p.bar.Add(count) }
func (p *progress_bar) Finish()           { _ = p.bar.Finish() }

// NewProgressBar renders a terminal progress bar for total iterations to w.
func NewProgressBar(w io.Writer, total int) Progress {
	return &progress_bar{bar: progressbar.NewOptions(total,
		progressbar.OptionSetWriter(w),
		progressbar.OptionSetDescription("matching colors"),
		progressbar.OptionShowCount(),
		progressbar.OptionSetPredictTime(true),
		progressbar.OptionOnCompletion(func() { fmt.Fprintln(w) }),
	)}
}
