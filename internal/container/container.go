package container

import (
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"

	"allow-clicker/config"
	app "allow-clicker/internal/application"
	"allow-clicker/internal/domain/port"
	"allow-clicker/internal/infrastructure/input"
	"allow-clicker/internal/infrastructure/notify"
	"allow-clicker/internal/infrastructure/ocr"
	"allow-clicker/internal/infrastructure/screen"
	"allow-clicker/internal/infrastructure/storage"
	"allow-clicker/internal/infrastructure/vision"
)

// Options режимы запуска, задаваемые флагами
type Options struct {
	DryRun bool
}

type Container struct {
	RunID      string
	Capturer   *screen.Capturer
	Detector   port.RegionDetector
	Recognizer port.TextRecognizer
	Clicker    port.Clicker
	Robot      *input.RobotClicker
	Events     *storage.MemoryEventLog
	Notifier   *notify.TelegramNotifier // nil, если Telegram не настроен
	Commands   *notify.Commands         // nil, если Telegram не настроен
	StopKey    input.StopKeyListener
	Monitor    *app.Monitor
}

func New(cfg *config.Config, opts Options, logger *slog.Logger) (*Container, error) {
	c := &Container{
		RunID:    uuid.NewString(),
		Capturer: screen.NewCapturer(0),
		Robot:    input.NewRobotClicker(logger),
		Events:   storage.NewMemoryEventLog(storage.DefaultEventCapacity),
	}

	detector, err := newDetector(cfg.Detector)
	if err != nil {
		return nil, err
	}
	c.Detector = detector

	recognizer, err := newRecognizer(cfg, logger)
	if err != nil {
		return nil, err
	}
	c.Recognizer = recognizer

	c.Clicker = c.Robot
	if opts.DryRun {
		c.Clicker = input.NewDryRunClicker(logger)
	}

	stopKey, err := input.NewStopKeyListener(cfg.StopKey, logger)
	if err != nil {
		return nil, err
	}
	c.StopKey = stopKey

	confirmer := app.NewTextConfirmer(recognizer, app.ConfirmerConfig{
		Padding:       cfg.OCRPadding,
		MinConfidence: cfg.OCRMinConfidence,
		Timeout:       cfg.OCRTimeout,
	})
	ranker := app.NewRanker(confirmer, app.RankerConfig{
		RequireTextMatch: cfg.RequireTextMatch,
		OverlapThreshold: cfg.OverlapThreshold,
		ColorOnlyMinY:    cfg.ColorOnlyMinY,
	}, logger)
	pipeline := app.NewPipeline(detector, ranker, app.PipelineConfig{
		ColorRanges: cfg.ColorRanges,
		SizeFilter:  cfg.SizeFilter,
		Keyword:     cfg.Keyword,
		ScanStartX:  cfg.ScanStartX,
		ScanStartY:  cfg.ScanStartY,
	})

	deps := app.MonitorDeps{
		Capturer: c.Capturer,
		Pipeline: pipeline,
		Gate:     app.NewGate(cfg.Cooldown),
		Clicker:  c.Clicker,
		Events:   c.Events,
	}

	var api notify.UpdatesAPI
	if cfg.TelegramEnabled() {
		botAPI, err := notify.NewBotAPI(cfg.TelegramToken, logger)
		if err != nil {
			// уведомления необязательны, мониторинг работает и без них
			logger.Warn("telegram disabled", "error", err)
		} else {
			api = botAPI
			c.Notifier = notify.NewTelegramNotifier(api, cfg.TelegramChatID, logger)
			deps.Notifier = c.Notifier
		}
	}

	c.Monitor = app.NewMonitor(deps, app.MonitorConfig{
		PollInterval:       cfg.PollInterval,
		CycleTimeout:       cfg.CycleTimeout,
		MaxCaptureFailures: cfg.MaxCaptureFailures,
		DryRun:             opts.DryRun,
	}, c.RunID, logger)

	if api != nil {
		c.Commands = notify.NewCommands(api, cfg.TelegramChatID, c.Events, c.Monitor.Stop, logger)
	}

	return c, nil
}

// Close освобождает ресурсы движка OCR
func (c *Container) Close() error {
	if closer, ok := c.Recognizer.(io.Closer); ok {
		return closer.Close()
	}
	return nil
}

func newDetector(name string) (port.RegionDetector, error) {
	switch name {
	case "", "go":
		return vision.NewColorDetector(), nil
	case "gocv":
		d, err := vision.NewGoCVDetector()
		if err != nil {
			return nil, fmt.Errorf("gocv detector: %w", err)
		}
		return d, nil
	default:
		return nil, fmt.Errorf("unknown detector %q", name)
	}
}

func newRecognizer(cfg *config.Config, logger *slog.Logger) (port.TextRecognizer, error) {
	rec, err := ocr.Select(cfg.OCREngine, cfg.TesseractPath, logger)
	if err != nil {
		return nil, err
	}
	if _, ok := rec.(ocr.NullRecognizer); ok {
		return rec, nil
	}

	cached, err := ocr.NewCachedRecognizer(rec, cfg.OCRCacheSize)
	if err != nil {
		return nil, err
	}
	logger.Info("ocr engine selected", "engine", rec.Name())
	return cached, nil
}
