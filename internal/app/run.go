// Package app wires configuration, the engine, the renderer and the encoders
// into a rendering run.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"lifereel/internal/encode"
	"lifereel/internal/life"
	"lifereel/internal/metrics"
	"lifereel/internal/pipeline"
	"lifereel/internal/render"
)

// Run reads the input grid, renders cfg.Rounds generations to cfg.Output and
// saves the requested stills.
func Run(ctx context.Context, cfg Config, log *slog.Logger) (pipeline.Result, error) {
	if log == nil {
		log = slog.Default()
	}
	if err := cfg.Validate(); err != nil {
		return pipeline.Result{}, err
	}
	export, err := cfg.ExportSet()
	if err != nil {
		return pipeline.Result{}, err
	}

	initial, err := life.ReadFile(cfg.Input)
	if err != nil {
		return pipeline.Result{}, err
	}
	renderer, err := render.New(initial.Size(), render.Options{
		PixelsPerCell: cfg.PixelsPerCell,
		Watermark:     cfg.Watermark,
	})
	if err != nil {
		return pipeline.Result{}, err
	}

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector())
	m := metrics.New(reg)
	if cfg.MetricsAddr != "" {
		stop, err := serveMetrics(cfg.MetricsAddr, reg, log)
		if err != nil {
			return pipeline.Result{}, err
		}
		defer stop()
	}

	video, err := encode.NewAVIWriter(cfg.Output, renderer.Bounds().Size(), cfg.FPS, cfg.Quality)
	if err != nil {
		return pipeline.Result{}, err
	}
	p, err := pipeline.New(pipeline.Config{
		Rounds:    cfg.Rounds,
		Export:    export,
		StillsDir: cfg.StillsDirectory(),
		Buffer:    cfg.Buffer,
	}, life.Engine{Workers: cfg.Workers}, renderer, video, encode.PNGSaver{},
		pipeline.WithLogger(log), pipeline.WithMetrics(m))
	if err != nil {
		return pipeline.Result{}, errors.Join(err, video.Close())
	}

	size := initial.Size()
	log.Info("rendering",
		"input", cfg.Input,
		"output", cfg.Output,
		"grid", fmt.Sprintf("%dx%d", size.W, size.H),
		"frame", fmt.Sprintf("%dx%d", renderer.Bounds().Dx(), renderer.Bounds().Dy()),
		"rounds", cfg.Rounds,
		"fps", cfg.FPS,
		"stills", len(export))
	return p.Run(ctx, initial)
}

// metricsShutdownTimeout bounds how long in-flight scrapes may delay the end
// of a run.
var metricsShutdownTimeout = 2 * time.Second

// serveMetrics exposes reg on addr until the returned stop func is called.
func serveMetrics(addr string, reg *prometheus.Registry, log *slog.Logger) (func(), error) {
	ln, err := net.Listen("tcp", addr)
	if err != nil {
		return nil, fmt.Errorf("metrics listener: %w", err)
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{Registry: reg}))
	srv := &http.Server{Handler: mux, ReadHeaderTimeout: 5 * time.Second}

	go func() {
		if err := srv.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Warn("metrics server stopped", "error", err)
		}
	}()
	log.Info("serving metrics", "addr", ln.Addr().String())

	return func() {
		ctx, cancel := context.WithTimeout(context.Background(), metricsShutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(ctx); err != nil {
			log.Warn("metrics server shutdown", "error", err)
		}
	}, nil
}
