// Package pipeline runs the simulation as two overlapping stages: stage A
// computes generations in order, stage B renders each one and fans it out to
// the video and still-image sinks.
package pipeline

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"
	"time"

	"golang.org/x/sync/errgroup"

	"lifereel/internal/core"
	"lifereel/internal/encode"
	"lifereel/internal/life"
	"lifereel/internal/metrics"
)

// Stepper computes the generation after current.
type Stepper interface {
	Next(current *life.Grid) (*life.Grid, error)
}

// Renderer turns a grid into a frame.
type Renderer interface {
	Render(g *life.Grid) (*image.Gray, error)
}

// VideoSink is an order-sensitive frame stream. Only one AddFrame call is
// ever in flight.
type VideoSink interface {
	AddFrame(img image.Image) error
	Close() error
}

// ImageSink persists a single frame at path.
type ImageSink interface {
	Save(path string, img image.Image) error
}

// Config describes one run.
type Config struct {
	// Rounds is the total number of frames, including the initial grid.
	Rounds int
	// Export lists the 1-based generation indices also saved as stills.
	Export []int
	// StillsDir receives frame<k>.png files.
	StillsDir string
	// Buffer is the capacity of the channel between the stages.
	Buffer int
}

// Result summarizes a run.
type Result struct {
	Frames int   // frames appended to the video
	Stills []int // generations saved as stills, in order
	Failed []int // generations with at least one failed dispatch
}

// Option customizes a Pipeline.
type Option func(*Pipeline)

// WithLogger sets the logger; the default is slog.Default().
func WithLogger(l *slog.Logger) Option {
	return func(p *Pipeline) {
		if l != nil {
			p.log = l
		}
	}
}

// WithMetrics records run metrics on m.
func WithMetrics(m *metrics.Metrics) Option {
	return func(p *Pipeline) { p.metrics = m }
}

// Pipeline wires the engine, renderer and sinks for a single run.
type Pipeline struct {
	cfg      Config
	export   map[int]bool
	engine   Stepper
	renderer Renderer
	video    VideoSink
	images   ImageSink
	log      *slog.Logger
	metrics  *metrics.Metrics
}

type generation struct {
	index int
	grid  *life.Grid
}

// New validates cfg and builds a pipeline. images may be nil only when
// nothing is exported.
func New(cfg Config, engine Stepper, renderer Renderer, video VideoSink, images ImageSink, opts ...Option) (*Pipeline, error) {
	if cfg.Rounds < 1 {
		return nil, fmt.Errorf("%w: rounds must be at least 1, got %d", core.ErrConfig, cfg.Rounds)
	}
	if engine == nil || renderer == nil || video == nil {
		return nil, fmt.Errorf("%w: pipeline needs an engine, a renderer and a video sink", core.ErrConfig)
	}
	if cfg.Buffer < 1 {
		cfg.Buffer = 1
	}
	export := make(map[int]bool, len(cfg.Export))
	for _, k := range cfg.Export {
		export[k] = true
	}
	if len(export) > 0 && images == nil {
		return nil, fmt.Errorf("%w: stills requested without an image sink", core.ErrConfig)
	}
	p := &Pipeline{
		cfg:      cfg,
		export:   export,
		engine:   engine,
		renderer: renderer,
		video:    video,
		images:   images,
		log:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p, nil
}

// Run renders Rounds frames starting from initial and closes the video sink.
//
// Engine and render failures abort the run. A failed dispatch is logged and
// recorded in the result but later frames still go out; Run then returns an
// error wrapping core.ErrEncoding. Cancelling ctx stops the run between
// generations.
func (p *Pipeline) Run(ctx context.Context, initial *life.Grid) (Result, error) {
	var (
		res      Result
		failures []error
		errs     []error
	)
	start := time.Now()

	if err := p.run(ctx, initial, &res, &failures); err != nil {
		errs = append(errs, err)
	}
	if len(failures) > 0 {
		errs = append(errs, fmt.Errorf("%w: %d of %d frames failed to dispatch: %w",
			core.ErrEncoding, len(res.Failed), p.cfg.Rounds, errors.Join(failures...)))
	}
	if err := p.video.Close(); err != nil {
		errs = append(errs, fmt.Errorf("close video: %w", err))
	}

	p.log.Info("pipeline finished",
		"frames", res.Frames,
		"stills", len(res.Stills),
		"failed", len(res.Failed),
		"elapsed", time.Since(start))
	return res, errors.Join(errs...)
}

func (p *Pipeline) run(ctx context.Context, initial *life.Grid, res *Result, failures *[]error) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	// The first frame is the initial grid itself; no generation is computed.
	frame, err := p.renderer.Render(initial)
	if err != nil {
		return fmt.Errorf("frame 1: %w", err)
	}
	if err := p.dispatch(1, frame, res); err != nil {
		*failures = append(*failures, err)
	}
	if p.cfg.Rounds == 1 {
		return nil
	}

	g, gctx := errgroup.WithContext(ctx)
	grids := make(chan generation, p.cfg.Buffer)

	g.Go(func() error {
		defer close(grids)
		return p.compute(gctx, initial, grids)
	})
	g.Go(func() error {
		for gen := range grids {
			if err := gctx.Err(); err != nil {
				return err
			}
			frame, err := p.renderer.Render(gen.grid)
			if err != nil {
				return fmt.Errorf("frame %d: %w", gen.index, err)
			}
			if err := p.dispatch(gen.index, frame, res); err != nil {
				*failures = append(*failures, err)
			}
		}
		return nil
	})
	return g.Wait()
}

// compute is stage A. It emits generations 2..Rounds strictly in order.
func (p *Pipeline) compute(ctx context.Context, cur *life.Grid, out chan<- generation) error {
	want := cur.Size()
	for k := 2; k <= p.cfg.Rounds; k++ {
		if err := ctx.Err(); err != nil {
			return err
		}
		start := time.Now()
		next, err := p.engine.Next(cur)
		if err != nil {
			return fmt.Errorf("generation %d: %w", k, err)
		}
		if got := next.Size(); got != want {
			return fmt.Errorf("generation %d: %w: size changed from %dx%d to %dx%d",
				k, core.ErrInputFormat, want.W, want.H, got.W, got.H)
		}
		p.metrics.ObserveGeneration(time.Since(start))

		select {
		case out <- generation{index: k, grid: next}:
		case <-ctx.Done():
			return ctx.Err()
		}
		cur = next
	}
	return nil
}

// dispatch is the stage B fan-out for frame k. Both tasks read the same frame
// and are always awaited; a failing task does not cancel its sibling, and
// the returned error joins every task failure.
func (p *Pipeline) dispatch(k int, frame image.Image, res *Result) error {
	var (
		wg       sync.WaitGroup
		videoErr error
		stillErr error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		if err := p.video.AddFrame(frame); err != nil {
			p.metrics.DispatchFailed(metrics.SinkVideo)
			p.log.Error("video append failed", "frame", k, "error", err)
			videoErr = fmt.Errorf("frame %d: video: %w", k, err)
			return
		}
		p.metrics.FrameEncoded()
	}()
	go func() {
		defer wg.Done()
		if !p.export[k] {
			return
		}
		path := encode.FrameName(p.cfg.StillsDir, k)
		if err := p.images.Save(path, frame); err != nil {
			p.metrics.DispatchFailed(metrics.SinkStill)
			p.log.Error("still save failed", "frame", k, "path", path, "error", err)
			stillErr = fmt.Errorf("frame %d: still: %w", k, err)
			return
		}
		p.metrics.StillSaved()
		p.log.Debug("still saved", "frame", k, "path", path)
	}()
	wg.Wait()

	if videoErr == nil {
		res.Frames++
	}
	if p.export[k] && stillErr == nil {
		res.Stills = append(res.Stills, k)
	}
	err := errors.Join(videoErr, stillErr)
	if err != nil {
		res.Failed = append(res.Failed, k)
	}
	return err
}
