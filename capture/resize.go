package capture

import (
	"image"

	"github.com/disintegration/gift"
)

// TargetSize fits a srcW x srcH capture into the configured bounds: the width
// is matched first and the height is clamped second, keeping the aspect ratio.
// Neither dimension goes below 1.
func TargetSize(srcW, srcH int, cfg Config) (w, h int) {
	if srcW <= 0 || srcH <= 0 {
		return 0, 0
	}
	aspect := float32(srcW) / float32(srcH)
	w = cfg.TargetWidth
	h = int(float32(w) / aspect)
	if h > cfg.TargetHeight {
		h = cfg.TargetHeight
		w = int(float32(h) * aspect)
	}
	return max(w, 1), max(h, 1)
}

// Downscale resamples img to w x h with nearest-neighbor sampling.
func Downscale(img image.Image, w, h int) *image.RGBA {
	g := gift.New(gift.Resize(w, h, gift.NearestNeighborResampling))
	dst := image.NewRGBA(g.Bounds(img.Bounds()))
	g.Draw(dst, img)
	return dst
}
