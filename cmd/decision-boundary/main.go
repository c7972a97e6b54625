package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"boundary-go/internal/config"
	"boundary-go/internal/logging"
	"boundary-go/internal/presenter"
	"boundary-go/pkg/boundary"
	"boundary-go/pkg/knn"
	"boundary-go/pkg/readmatrix"
	"boundary-go/pkg/synthetic"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/plot/vg"
)

// editors often emit several events per save
const debounce = 200 * time.Millisecond

func main() {
	cfg := config.Parse()

	logger, err := logging.New(cfg.LogLevel, cfg.LogFile)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()
	log := logger.Sugar()

	log.Info("Starting decision-boundary...")
	log.Debugf("Configuration of the run:\n%s", cfg.ToString())

	renderer, err := newRenderer(cfg)
	if err != nil {
		log.Fatalw("invalid plot settings", "error", err)
	}

	if err := run(cfg, renderer, log); err != nil {
		log.Fatalw("render failed", "error", err)
	}
	if !cfg.Watch {
		return
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	if err := watch(ctx, cfg, renderer, log); err != nil {
		log.Fatalw("watch failed", "error", err)
	}
}

func newRenderer(cfg *config.Config) (*boundary.Renderer, error) {
	r := boundary.NewRenderer()
	r.Margin = cfg.Margin
	r.Step = cfg.Step
	r.Title = cfg.Title
	r.XLabel = cfg.XLabel
	r.YLabel = cfg.YLabel
	r.Legend = cfg.Legend
	r.ClassNames = cfg.ClassNames
	r.Width = vg.Length(cfg.Width) * vg.Inch
	r.Height = vg.Length(cfg.Height) * vg.Inch

	var err error
	if r.Light, err = boundary.ParseListed(cfg.Light...); err != nil {
		return nil, fmt.Errorf("light palette: %w", err)
	}
	if r.Bold, err = boundary.ParseListed(cfg.Bold...); err != nil {
		return nil, fmt.Errorf("bold palette: %w", err)
	}
	if cfg.Input == "" && len(r.ClassNames) == 0 {
		r.ClassNames = synthetic.IrisClassNames()
	}
	return r, nil
}

func loadData(cfg *config.Config) (*mat.Dense, []int, error) {
	if cfg.Input != "" {
		return readmatrix.ReadDataset(cfg.Input, cfg.XCol, cfg.YCol, cfg.LabelCol)
	}
	X, y := synthetic.NewGenerator(cfg.Seed).Blobs(synthetic.IrisLikeCenters(), cfg.StdDev, cfg.Synthetic)
	return X, y, nil
}

// run performs one load, fit, render and save cycle.
func run(cfg *config.Config, r *boundary.Renderer, log *zap.SugaredLogger) error {
	start := time.Now()

	X, y, err := loadData(cfg)
	if err != nil {
		return fmt.Errorf("load data: %w", err)
	}
	n, _ := X.Dims()
	log.Infow("dataset loaded", "samples", n, "source", sourceName(cfg))

	model := knn.New(cfg.K)
	if err := model.Fit(X, y); err != nil {
		return fmt.Errorf("fit: %w", err)
	}

	grid, err := r.Evaluate(X, model)
	if err != nil {
		return err
	}
	cols, rows := grid.Dims()
	log.Debugw("grid evaluated", "cols", cols, "rows", rows, "elapsed", time.Since(start))

	p, err := r.PlotGrid(grid, X, y)
	if err != nil {
		return err
	}
	if err := presenter.SavePlot(p, r.Width, r.Height, cfg.Output); err != nil {
		return fmt.Errorf("save plot: %w", err)
	}
	if cfg.GridCSV != "" {
		if err := presenter.SaveGridCSV(grid, cfg.GridCSV); err != nil {
			return fmt.Errorf("save grid: %w", err)
		}
	}

	log.Infow("plot written", "output", cfg.Output, "elapsed", time.Since(start))
	return nil
}

func sourceName(cfg *config.Config) string {
	if cfg.Input != "" {
		return cfg.Input
	}
	return fmt.Sprintf("synthetic(seed=%d)", cfg.Seed)
}

// watch re-renders after every write to the input file until ctx is done.
// The parent directory is watched so that editors replacing the file by
// rename are noticed too.
func watch(ctx context.Context, cfg *config.Config, r *boundary.Renderer, log *zap.SugaredLogger) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer w.Close()

	target, err := filepath.Abs(cfg.Input)
	if err != nil {
		return err
	}
	if err := w.Add(filepath.Dir(target)); err != nil {
		return err
	}
	log.Infow("watching for changes", "input", target)

	timer := time.NewTimer(debounce)
	timer.Stop()
	for {
		select {
		case <-ctx.Done():
			log.Info("Exiting")
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != target || !(ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create)) {
				continue
			}
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", "error", err)
		case <-timer.C:
			if err := run(cfg, r, log); err != nil {
				log.Errorw("render failed", "error", err)
			}
		}
	}
}
