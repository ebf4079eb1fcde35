package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"allow-clicker/internal/domain/entity"
)

// Config настройки автокликера
type Config struct {
	ColorRanges []entity.ColorRange
	SizeFilter  entity.SizeFilter

	PollInterval time.Duration
	Cooldown     time.Duration

	Keyword          string
	RequireTextMatch bool

	OCREngine        string // auto, tesseract, gosseract, none
	TesseractPath    string
	OCRMinConfidence float64
	OCRTimeout       time.Duration
	OCRCacheSize     int
	OCRPadding       int

	OverlapThreshold float64
	ColorOnlyMinY    int
	ScanStartX       float64
	ScanStartY       float64

	CycleTimeout       time.Duration
	MaxCaptureFailures int

	StopKey  string
	Detector string // go или gocv

	TelegramToken  string
	TelegramChatID int64

	LogFormat string // text или json
}

// Default возвращает настройки по умолчанию
func Default() *Config {
	return &Config{
		ColorRanges: entity.DefaultColorRanges(),
		SizeFilter: entity.SizeFilter{
			MinWidth:  30,
			MaxWidth:  200,
			MinHeight: 15,
			MaxHeight: 60,
			MinAspect: 0.8,
			MaxAspect: 8,
			MinPixels: 100,
		},
		PollInterval:       500 * time.Millisecond,
		Cooldown:           2 * time.Second,
		Keyword:            "allow",
		OCREngine:          "auto",
		TesseractPath:      "tesseract",
		OCRMinConfidence:   0.2,
		OCRTimeout:         2 * time.Second,
		OCRCacheSize:       64,
		OCRPadding:         5,
		OverlapThreshold:   0.5,
		ColorOnlyMinY:      100,
		CycleTimeout:       10 * time.Second,
		MaxCaptureFailures: 3,
		StopKey:            "esc",
		Detector:           "go",
		LogFormat:          "text",
	}
}

func Load() (*Config, error) {
	// Загружаем .env файл (игнорируем ошибку если файла нет)
	_ = godotenv.Load()

	cfg, err := FromEnv(os.LookupEnv)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// FromEnv читает настройки через lookup, незаданные берутся из Default.
func FromEnv(lookup func(string) (string, bool)) (*Config, error) {
	cfg := Default()
	r := reader{lookup: lookup}

	if v, ok := lookup("ALLOW_COLOR_RANGES"); ok && strings.TrimSpace(v) != "" {
		ranges, err := ParseColorRanges(v)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("ALLOW_COLOR_RANGES: %w", err))
		} else {
			cfg.ColorRanges = ranges
		}
	}

	r.intVar("ALLOW_MIN_WIDTH", &cfg.SizeFilter.MinWidth)
	r.intVar("ALLOW_MAX_WIDTH", &cfg.SizeFilter.MaxWidth)
	r.intVar("ALLOW_MIN_HEIGHT", &cfg.SizeFilter.MinHeight)
	r.intVar("ALLOW_MAX_HEIGHT", &cfg.SizeFilter.MaxHeight)
	r.floatVar("ALLOW_MIN_ASPECT", &cfg.SizeFilter.MinAspect)
	r.floatVar("ALLOW_MAX_ASPECT", &cfg.SizeFilter.MaxAspect)
	r.intVar("ALLOW_MIN_BLOB_PIXELS", &cfg.SizeFilter.MinPixels)

	r.secondsVar("ALLOW_POLL_INTERVAL_SECONDS", &cfg.PollInterval)
	r.secondsVar("ALLOW_COOLDOWN_SECONDS", &cfg.Cooldown)

	r.stringVar("ALLOW_KEYWORD", &cfg.Keyword)
	r.boolVar("ALLOW_REQUIRE_TEXT_MATCH", &cfg.RequireTextMatch)

	r.stringVar("ALLOW_OCR_ENGINE", &cfg.OCREngine)
	r.stringVar("ALLOW_TESSERACT_PATH", &cfg.TesseractPath)
	r.floatVar("ALLOW_OCR_MIN_CONFIDENCE", &cfg.OCRMinConfidence)
	r.secondsVar("ALLOW_OCR_TIMEOUT_SECONDS", &cfg.OCRTimeout)
	r.intVar("ALLOW_OCR_CACHE_SIZE", &cfg.OCRCacheSize)
	r.intVar("ALLOW_OCR_PADDING", &cfg.OCRPadding)

	r.floatVar("ALLOW_OVERLAP_THRESHOLD", &cfg.OverlapThreshold)
	r.intVar("ALLOW_COLOR_ONLY_MIN_Y", &cfg.ColorOnlyMinY)
	r.floatVar("ALLOW_SCAN_START_X_RATIO", &cfg.ScanStartX)
	r.floatVar("ALLOW_SCAN_START_Y_RATIO", &cfg.ScanStartY)

	r.secondsVar("ALLOW_CYCLE_TIMEOUT_SECONDS", &cfg.CycleTimeout)
	r.intVar("ALLOW_MAX_CAPTURE_FAILURES", &cfg.MaxCaptureFailures)

	r.stringVar("ALLOW_STOP_KEY", &cfg.StopKey)
	r.stringVar("ALLOW_DETECTOR", &cfg.Detector)

	r.stringVar("TELEGRAM_TOKEN", &cfg.TelegramToken)
	r.int64Var("TELEGRAM_CHAT_ID", &cfg.TelegramChatID)

	r.stringVar("ALLOW_LOG_FORMAT", &cfg.LogFormat)

	if err := errors.Join(r.errs...); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate проверяет, что настройки имеют смысл
func (c *Config) Validate() error {
	var errs []error
	check := func(ok bool, format string, args ...any) {
		if !ok {
			errs = append(errs, fmt.Errorf(format, args...))
		}
	}

	f := c.SizeFilter
	check(len(c.ColorRanges) > 0, "at least one color range is required")
	for i, r := range c.ColorRanges {
		check(r.Lower.H <= r.Upper.H && r.Lower.S <= r.Upper.S && r.Lower.V <= r.Upper.V,
			"color range %d: lower bound exceeds upper bound", i)
		check(r.Upper.H <= 180, "color range %d: hue must be within [0,180]", i)
	}
	check(f.MinWidth > 0 && f.MinWidth <= f.MaxWidth, "invalid width bounds [%d,%d]", f.MinWidth, f.MaxWidth)
	check(f.MinHeight > 0 && f.MinHeight <= f.MaxHeight, "invalid height bounds [%d,%d]", f.MinHeight, f.MaxHeight)
	check(f.MinAspect >= 0 && (f.MaxAspect == 0 || f.MinAspect <= f.MaxAspect), "invalid aspect bounds [%g,%g]", f.MinAspect, f.MaxAspect)
	check(f.MinPixels >= 0, "min blob pixels must not be negative")
	check(c.PollInterval > 0, "poll interval must be positive")
	check(c.Cooldown >= 0, "cooldown must not be negative")
	check(strings.TrimSpace(c.Keyword) != "", "keyword is required")
	check(c.OCRMinConfidence >= 0 && c.OCRMinConfidence <= 1, "ocr min confidence must be within [0,1]")
	check(c.OCRTimeout > 0, "ocr timeout must be positive")
	check(c.OCRPadding >= 0, "ocr padding must not be negative")
	check(c.OverlapThreshold >= 0 && c.OverlapThreshold <= 1, "overlap threshold must be within [0,1]")
	check(c.ScanStartX >= 0 && c.ScanStartX < 1, "scan start x ratio must be within [0,1)")
	check(c.ScanStartY >= 0 && c.ScanStartY < 1, "scan start y ratio must be within [0,1)")
	check(c.CycleTimeout > 0, "cycle timeout must be positive")
	check(c.MaxCaptureFailures > 0, "max capture failures must be positive")

	switch c.OCREngine {
	case "auto", "tesseract", "gosseract", "none":
	default:
		errs = append(errs, fmt.Errorf("unknown ocr engine %q", c.OCREngine))
	}
	switch c.Detector {
	case "go", "gocv":
	default:
		errs = append(errs, fmt.Errorf("unknown detector %q", c.Detector))
	}
	switch c.LogFormat {
	case "text", "json":
	default:
		errs = append(errs, fmt.Errorf("unknown log format %q", c.LogFormat))
	}
	check(c.TelegramToken == "" || c.TelegramChatID != 0, "TELEGRAM_CHAT_ID is required when TELEGRAM_TOKEN is set")

	if len(errs) > 0 {
		return fmt.Errorf("invalid config: %w", errors.Join(errs...))
	}
	return nil
}

// TelegramEnabled сообщает, настроены ли уведомления
func (c *Config) TelegramEnabled() bool {
	return c.TelegramToken != "" && c.TelegramChatID != 0
}

// ParseColorRanges разбирает "h,s,v-h,s,v;h,s,v-h,s,v" в список диапазонов.
func ParseColorRanges(s string) ([]entity.ColorRange, error) {
	var ranges []entity.ColorRange
	for _, part := range strings.Split(s, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		bounds := strings.Split(part, "-")
		if len(bounds) != 2 {
			return nil, fmt.Errorf("range %q: expected lower-upper", part)
		}
		lower, err := parseHSV(bounds[0])
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", part, err)
		}
		upper, err := parseHSV(bounds[1])
		if err != nil {
			return nil, fmt.Errorf("range %q: %w", part, err)
		}
		ranges = append(ranges, entity.ColorRange{Lower: lower, Upper: upper})
	}
	if len(ranges) == 0 {
		return nil, errors.New("no color ranges")
	}
	return ranges, nil
}

func parseHSV(s string) (entity.HSV, error) {
	parts := strings.Split(s, ",")
	if len(parts) != 3 {
		return entity.HSV{}, fmt.Errorf("expected h,s,v, got %q", s)
	}
	var vals [3]uint8
	for i, p := range parts {
		v, err := strconv.ParseUint(strings.TrimSpace(p), 10, 8)
		if err != nil {
			return entity.HSV{}, fmt.Errorf("component %q: %w", p, err)
		}
		vals[i] = uint8(v)
	}
	return entity.HSV{H: vals[0], S: vals[1], V: vals[2]}, nil
}

type reader struct {
	lookup func(string) (string, bool)
	errs   []error
}

func (r *reader) get(key string) (string, bool) {
	v, ok := r.lookup(key)
	v = strings.TrimSpace(v)
	return v, ok && v != ""
}

func (r *reader) stringVar(key string, dst *string) {
	if v, ok := r.get(key); ok {
		*dst = v
	}
}

func (r *reader) intVar(key string, dst *int) {
	if v, ok := r.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
}

func (r *reader) int64Var(key string, dst *int64) {
	if v, ok := r.get(key); ok {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = n
	}
}

func (r *reader) floatVar(key string, dst *float64) {
	if v, ok := r.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = f
	}
}

func (r *reader) boolVar(key string, dst *bool) {
	if v, ok := r.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			r.errs = append(r.errs, fmt.Errorf("%s: %w", key, err))
			return
		}
		*dst = b
	}
}

func (r *reader) secondsVar(key string, dst *time.Duration) {
	var f float64
	if _, ok := r.get(key); !ok {
		return
	}
	before := len(r.errs)
	r.floatVar(key, &f)
	if len(r.errs) == before {
		*dst = time.Duration(f * float64(time.Second))
	}
}
