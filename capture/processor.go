// Package capture prepares screen captures for upload: it shrinks them to a
// configured size, compresses them with shotjpeg and turns the JPEG bytes
// into base64 text.
package capture

import (
	"bytes"
	"image"
	"log/slog"
	"sync"

	"github.com/pkg/errors"

	"github.com/dlecorfec/shotjpeg"
)

var (
	// ErrLowMemory is returned while the processor is told memory is short;
	// the capture is skipped.
	ErrLowMemory = errors.New("capture: skipped, low memory")
	// ErrInvalidConfig is returned by SetConfig for unusable settings.
	ErrInvalidConfig = errors.New("capture: invalid config")
)

// Config holds the processing settings.
type Config struct {
	TargetWidth  int
	TargetHeight int
	Quality      int
}

// DefaultConfig returns 360x640 at quality 40.
func DefaultConfig() Config {
	return Config{TargetWidth: 360, TargetHeight: 640, Quality: 40}
}

// Processor turns captured images into base64 JPEG text. It is safe for
// concurrent use; each call works from a snapshot of the config taken when it
// starts.
type Processor struct {
	log *slog.Logger

	mu        sync.Mutex
	cfg       Config
	lowMemory bool
}

// NewProcessor returns a Processor with DefaultConfig. A nil logger means
// slog.Default().
func NewProcessor(logger *slog.Logger) *Processor {
	if logger == nil {
		logger = slog.Default()
	}
	return &Processor{log: logger, cfg: DefaultConfig()}
}

// SetConfig replaces the processing settings.
func (p *Processor) SetConfig(cfg Config) error {
	if cfg.TargetWidth <= 0 || cfg.TargetHeight <= 0 {
		return errors.Wrapf(ErrInvalidConfig, "target %dx%d", cfg.TargetWidth, cfg.TargetHeight)
	}
	p.mu.Lock()
	p.cfg = cfg
	p.mu.Unlock()
	p.log.Debug("config set", "width", cfg.TargetWidth, "height", cfg.TargetHeight, "quality", cfg.Quality)
	return nil
}

// Config returns the current settings.
func (p *Processor) Config() Config {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg
}

// SetLowMemory makes subsequent captures fail with ErrLowMemory until it is
// cleared.
func (p *Processor) SetLowMemory(low bool) {
	p.mu.Lock()
	p.lowMemory = low
	p.mu.Unlock()
}

// LowMemory reports the low-memory state.
func (p *Processor) LowMemory() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.lowMemory
}

func (p *Processor) snapshot() (Config, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.cfg, p.lowMemory
}

// Process downscales img to the configured bounds and returns it as JPEG.
func (p *Processor) Process(img image.Image) ([]byte, error) {
	jpg, _, err := p.process(img)
	return jpg, err
}

func (p *Processor) process(img image.Image) ([]byte, image.Point, error) {
	cfg, low := p.snapshot()
	if low {
		p.log.Debug("low memory, skipping screenshot")
		return nil, image.Point{}, ErrLowMemory
	}
	if img == nil {
		return nil, image.Point{}, errors.Wrap(shotjpeg.ErrInvalidInput, "capture: nil image")
	}
	src := img.Bounds()
	p.log.Debug("processing capture", "width", src.Dx(), "height", src.Dy())

	w, h := TargetSize(src.Dx(), src.Dy(), cfg)
	if w == 0 || h == 0 {
		return nil, image.Point{}, errors.Wrapf(shotjpeg.ErrInvalidInput, "capture: empty image %dx%d", src.Dx(), src.Dy())
	}
	small := Downscale(img, w, h)

	var buf bytes.Buffer
	buf.Grow(w * h)
	if err := shotjpeg.EncodeImage(&buf, small, &shotjpeg.Options{Quality: cfg.Quality}); err != nil {
		p.log.Error("failed to compress JPEG", "err", err)
		return nil, image.Point{}, errors.Wrap(err, "capture: encode")
	}
	return buf.Bytes(), image.Pt(w, h), nil
}

// ProcessAndEncode is Process followed by EncodeBase64.
func (p *Processor) ProcessAndEncode(img image.Image) (string, error) {
	jpg, dst, err := p.process(img)
	if err != nil {
		return "", err
	}
	text := EncodeBase64(jpg)
	p.log.Info("screenshot processed",
		"src", img.Bounds().Size().String(),
		"dst", dst.String(),
		"jpeg_bytes", len(jpg),
		"base64_chars", len(text))
	return text, nil
}
