package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"allow-clicker/config"
	"allow-clicker/internal/container"
	"allow-clicker/internal/domain/entity"
	"allow-clicker/internal/infrastructure/ocr"
)

type flags struct {
	debug bool
	test  bool
	once  bool
	check bool
	quiet bool
}

func main() {
	os.Exit(run())
}

func run() int {
	var f flags
	flag.BoolVar(&f.debug, "debug", false, "подробный лог")
	flag.BoolVar(&f.test, "test", false, "тестовый режим: искать кнопки, но не кликать")
	flag.BoolVar(&f.once, "once", false, "один проход: найти и нажать кнопку, затем выйти")
	flag.BoolVar(&f.check, "check", false, "проверить доступ к экрану, OCR и мыши")
	flag.BoolVar(&f.quiet, "quiet", false, "выводить только предупреждения и ошибки")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load config: %v\n", err)
		return 1
	}

	logger := newLogger(cfg.LogFormat, f)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	signals := make(chan os.Signal, 2)
	signal.Notify(signals, os.Interrupt, syscall.SIGTERM)
	defer signal.Stop(signals)

	c, err := container.New(cfg, container.Options{DryRun: f.test}, logger)
	if err != nil {
		logger.Error("failed to initialize", "error", err)
		return 1
	}
	defer c.Close()

	logger = logger.With("run_id", c.RunID)

	if f.check {
		go func() {
			select {
			case <-signals:
				cancel()
			case <-ctx.Done():
			}
		}()
		return runCheck(ctx, c, f, logger)
	}

	// Первый Ctrl+C доводит текущий проход до конца, второй прерывает его
	go c.Monitor.StopOnSignal(ctx, signals, cancel)

	switch {
	case f.once:
		return runOnce(ctx, c, logger)
	default:
		return runMonitor(ctx, c, logger)
	}
}

func newLogger(format string, f flags) *slog.Logger {
	level := slog.LevelInfo
	switch {
	case f.debug:
		level = slog.LevelDebug
	case f.quiet:
		level = slog.LevelWarn
	}

	opts := &slog.HandlerOptions{Level: level}
	if format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stderr, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stderr, opts))
}

func runMonitor(ctx context.Context, c *container.Container, logger *slog.Logger) int {
	bg, cancel := context.WithCancel(ctx)
	defer cancel()

	go func() {
		if err := c.StopKey.Listen(bg, c.Monitor.Stop); err != nil {
			logger.Warn("stop key listener failed", "error", err)
		}
	}()
	if c.Notifier != nil {
		go c.Notifier.Run(bg)
	}
	if c.Commands != nil {
		go c.Commands.Run(bg)
	}

	err := c.Monitor.Run(ctx)
	logStats(c, logger)
	if err != nil {
		return 1
	}
	return 0
}

func runOnce(ctx context.Context, c *container.Container, logger *slog.Logger) int {
	event, err := c.Monitor.RunOnce(ctx)
	logStats(c, logger)
	if err != nil {
		if ctx.Err() != nil {
			return 0
		}
		logger.Error("single pass failed", "error", err)
		return 1
	}

	switch event.Outcome {
	case entity.OutcomeClicked, entity.OutcomeDryRun:
		return 0
	case entity.OutcomeSkipped:
		logger.Warn("click skipped", "reason", string(event.Decision.Reason))
		return 1
	default:
		logger.Warn("no allow button found", "regions", event.Regions, "error", event.Err)
		return 1
	}
}

func runCheck(ctx context.Context, c *container.Container, f flags, logger *slog.Logger) int {
	failed := false

	if bounds, err := c.Capturer.Probe(); err != nil {
		failed = true
		logger.Error("screen capture: FAILED (grant screen recording permission)", "error", err)
	} else {
		logger.Info("screen capture: OK", "display", bounds.String())
	}

	if _, ok := c.Recognizer.(ocr.NullRecognizer); ok {
		logger.Warn("ocr: not available, only color detection will be used")
	} else {
		logger.Info("ocr: OK", "engine", c.Recognizer.Name())
	}

	if f.test {
		logger.Info("mouse control: skipped in test mode")
	} else if err := c.Robot.Probe(); err != nil {
		failed = true
		logger.Error("mouse control: FAILED (grant accessibility permission)", "error", err)
	} else {
		logger.Info("mouse control: OK")
	}

	if ctx.Err() != nil {
		return 0
	}
	if failed {
		return 1
	}
	return 0
}

func logStats(c *container.Container, logger *slog.Logger) {
	stats, err := c.Events.Stats(context.Background())
	if err != nil {
		return
	}
	logger.Info("run finished",
		"cycles", stats.Cycles,
		"clicks", stats.Clicks,
		"dry_runs", stats.DryRuns,
		"skips", stats.Skips,
		"empty", stats.Empty,
		"errors", stats.Errors,
	)
}
