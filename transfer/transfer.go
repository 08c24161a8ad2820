// Package transfer implements sliced optimal transport color transfer.
//
// Each outer iteration draws a batch of random directions in RGB space. For
// every direction the colors of the source and target images are projected
// onto it and both projections are sorted; pairing them rank by rank gives
// the 1-D optimal transport plan, and each source pixel is pushed along the
// direction by the distance to its partner. The displacements of the batch
// are averaged and added to the source image. Repeating this moves the color
// distribution of the source toward that of the target while every pixel
// stays where it is.
package transfer

import (
	"errors"
	"fmt"
	"time"

	"github.com/kovidgoyal/colormatch"
)

const (
	DefaultIterations = 100
	DefaultStepFactor = 1.0
	DefaultBatchSize  = 16

	MinStepFactor = 0.01
	MaxStepFactor = 10.0
)

var (
	ErrSizeMismatch      = errors.New("source and target images have different dimensions")
	ErrInvalidBatchSize  = errors.New("batch size must be at least 1")
	ErrInvalidIterations = errors.New("number of iterations must not be negative")
)

// ClampStepFactor restricts s to [MinStepFactor, MaxStepFactor]. NaN becomes
// DefaultStepFactor.
func ClampStepFactor(s float32) float32 {
	if s != s {
		return DefaultStepFactor
	}
	return max(MinStepFactor, min(MaxStepFactor, s))
}

// RelaxStepFactor moves s one step toward 1.
func RelaxStepFactor(s float32) float32 {
	return 0.9*s + 0.1
}

// StepFactorAfter is the step factor in effect after n outer iterations
// starting from s0 (which is clamped first).
func StepFactorAfter(s0 float32, n int) float32 {
	s := ClampStepFactor(s0)
	for range n {
		s = RelaxStepFactor(s)
	}
	return s
}

// State is the phase of a Transfer.
type State int

const (
	Idle State = iota
	IteratingOuter
	IteratingBatch
	Done
)

func (s State) String() string {
	switch s {
	case Idle:
		return "Idle"
	case IteratingOuter:
		return "IteratingOuter"
	case IteratingBatch:
		return "IteratingBatch"
	case Done:
		return "Done"
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// IterationStats describes one completed outer iteration.
type IterationStats struct {
	Iteration int
	// StepFactor is the factor used for this iteration, before relaxation.
	StepFactor float32
	// MeanAdvection is the average displacement over all pixels and
	// MeanAdvectionNorm its length.
	MeanAdvection     [3]float32
	MeanAdvectionNorm float32
}

// Observer is notified as a run progresses. IterationStarted is called right
// after the advection map was reset, IterationDone after the source image was
// updated. m must not be retained or modified.
type Observer interface {
	IterationStarted(iteration int, m AdvectionMap)
	IterationDone(s IterationStats)
}

// Stats summarises a finished run.
type Stats struct {
	Iterations      int
	NumPixels       int
	FinalStepFactor float32
}

type config struct {
	iterations  int
	step_factor float32
	batch_size  int
	rng         NormalSource
	sorter      Sorter
	progress    Progress
	observer    Observer
}

// Option configures a Transfer.
type Option func(*config)

// Iterations sets the number of outer iterations. Default is 100.
func Iterations(n int) Option {
	return func(c *config) { c.iterations = n }
}

// StepFactor sets the initial step factor, clamped to [0.01, 10]. Default is 1.
func StepFactor(s float32) Option {
	return func(c *config) { c.step_factor = s }
}

// BatchSize sets the number of directions sampled per outer iteration.
// Default is 16.
func BatchSize(n int) Option {
	return func(c *config) { c.batch_size = n }
}

// Seed makes runs reproducible by seeding the direction generator.
func Seed(seed uint64) Option {
	return func(c *config) { c.rng = NewRand(seed) }
}

// RandomSource sets the generator directions are drawn from.
func RandomSource(src NormalSource) Option {
	return func(c *config) { c.rng = src }
}

// WithSorter replaces the default ParallelSorter.
func WithSorter(s Sorter) Option {
	return func(c *config) { c.sorter = s }
}

// WithProgress sets the progress reporter, advanced once per outer iteration.
func WithProgress(p Progress) Option {
	return func(c *config) { c.progress = p }
}

func WithObserver(o Observer) Option {
	return func(c *config) { c.observer = o }
}

type nop_observer struct{}

func (nop_observer) IterationStarted(int, AdvectionMap) {}
func (nop_observer) IterationDone(IterationStats)       {}

// Transfer is the iteration controller. It is not safe for concurrent use.
type Transfer struct {
	cfg         config
	state       State
	step_factor float32
}

func New(opts ...Option) (*Transfer, error) {
	cfg := config{
		iterations:  DefaultIterations,
		step_factor: DefaultStepFactor,
		batch_size:  DefaultBatchSize,
		progress:    NopProgress{},
		observer:    nop_observer{},
	}
	for _, option := range opts {
		option(&cfg)
	}
	if cfg.iterations < 0 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidIterations, cfg.iterations)
	}
	if cfg.batch_size < 1 {
		return nil, fmt.Errorf("%w: %d", ErrInvalidBatchSize, cfg.batch_size)
	}
	cfg.step_factor = ClampStepFactor(cfg.step_factor)
	if cfg.rng == nil {
		cfg.rng = NewRand(uint64(time.Now().UnixNano()))
	}
	if cfg.sorter == nil {
		cfg.sorter = &ParallelSorter{}
	}
	if cfg.progress == nil {
		cfg.progress = NopProgress{}
	}
	if cfg.observer == nil {
		cfg.observer = nop_observer{}
	}
	return &Transfer{cfg: cfg, state: Idle, step_factor: cfg.step_factor}, nil
}

func (t *Transfer) State() State { return t.state }

// StepFactor is the step factor the next outer iteration will use.
func (t *Transfer) StepFactor() float32 { return t.step_factor }

// Run modifies src in place so that its color distribution approaches that
// of tgt. tgt is only read and must have the same dimensions as src. Run
// always performs the configured number of iterations; the random generator
// carries over between runs, the step factor restarts from its initial value.
func (t *Transfer) Run(src, tgt *colormatch.NRGB) (stats Stats, err error) {
	if !src.SameSize(tgt) {
		return stats, fmt.Errorf("%w: %dx%d != %dx%d", ErrSizeMismatch, src.Rect.Dx(), src.Rect.Dy(), tgt.Rect.Dx(), tgt.Rect.Dy())
	}
	cfg := &t.cfg
	log := colormatch.Logger()
	n := src.NumPixels()
	t.step_factor = cfg.step_factor
	stats.NumPixels = n
	defer func() {
		stats.FinalStepFactor = t.step_factor
		cfg.progress.Finish()
		if err == nil {
			t.state = Done
		}
	}()

	advect := NewAdvectionMap(n)
	src_proj, tgt_proj := make([]float32, n), make([]float32, n)
	src_perm, tgt_perm := make([]int, n), make([]int, n)

	for i := range cfg.iterations {
		t.state = IteratingOuter
		advect.Reset()
		cfg.observer.IterationStarted(i, advect)

		t.state = IteratingBatch
		for range cfg.batch_size {
			d := RandomDirection(cfg.rng)
			if src_proj, err = Project(src, d, src_proj); err != nil {
				return
			}
			if err = cfg.sorter.SortIndices(src_proj, src_perm); err != nil {
				return
			}
			if tgt_proj, err = Project(tgt, d, tgt_proj); err != nil {
				return
			}
			if err = cfg.sorter.SortIndices(tgt_proj, tgt_perm); err != nil {
				return
			}
			if err = advect.Accumulate(src_perm, tgt_perm, src_proj, tgt_proj, d, t.step_factor); err != nil {
				return
			}
		}

		t.state = IteratingOuter
		advect.Average(cfg.batch_size)
		is := IterationStats{Iteration: i, StepFactor: t.step_factor, MeanAdvection: advect.Mean()}
		is.MeanAdvectionNorm = norm3(is.MeanAdvection)
		log.Debug("iteration", "iter", i, "mean_advection", is.MeanAdvectionNorm, "step_factor", t.step_factor)
		if err = ApplyAdvection(src, advect); err != nil {
			return
		}
		cfg.observer.IterationDone(is)

		t.step_factor = RelaxStepFactor(t.step_factor)
		stats.Iterations++
		cfg.progress.Advance(1)
	}
	return
}
