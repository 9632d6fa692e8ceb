package shotjpeg

import (
	"image"
	"image/draw"
)

// PixelBuffer is a read-only view of interleaved 8-bit samples.
//
// Channels is 3 (RGB) or 4 (RGBA, alpha ignored). 1 (gray) and 2 (gray and
// alpha) are accepted too; the gray sample then stands for R, G and B.
// Stride is the byte distance between rows; zero means Width*Channels.
type PixelBuffer struct {
	Pix      []byte
	Width    int
	Height   int
	Channels int
	Stride   int
}

// NewPixelBuffer returns a validated view of pix.
func NewPixelBuffer(pix []byte, width, height, channels, stride int) (*PixelBuffer, error) {
	p := &PixelBuffer{Pix: pix, Width: width, Height: height, Channels: channels, Stride: stride}
	if err := p.validate(); err != nil {
		return nil, err
	}
	return p, nil
}

func (p *PixelBuffer) stride() int {
	if p.Stride == 0 {
		return p.Width * p.Channels
	}
	return p.Stride
}

func (p *PixelBuffer) validate() error {
	if p == nil {
		return invalidInput("nil pixel buffer")
	}
	if len(p.Pix) == 0 {
		return invalidInput("empty pixel buffer")
	}
	if p.Width <= 0 || p.Height <= 0 {
		return invalidInput("bad dimensions %dx%d", p.Width, p.Height)
	}
	if p.Width >= 1<<16 || p.Height >= 1<<16 {
		return invalidInput("image is too large to encode (%dx%d)", p.Width, p.Height)
	}
	if p.Channels < 1 || p.Channels > 4 {
		return invalidInput("unsupported channel count %d", p.Channels)
	}
	stride, row := p.stride(), p.Width*p.Channels
	if stride < row {
		return invalidInput("stride %d is shorter than a row of %d bytes", stride, row)
	}
	if len(p.Pix) < row {
		return invalidInput("pixel buffer holds %d bytes, need a row of %d", len(p.Pix), row)
	}
	// (Height-1)*stride + row must fit in Pix; divide so a huge stride
	// cannot overflow.
	if p.Height > 1 && stride > (len(p.Pix)-row)/(p.Height-1) {
		return invalidInput("pixel buffer holds %d bytes, too few for %d rows of stride %d", len(p.Pix), p.Height, stride)
	}
	return nil
}

// rgb returns the color sample at (x, y), which must be inside the buffer.
func (p *PixelBuffer) rgb(x, y int) (r, g, b float32) {
	i := y*p.stride() + x*p.Channels
	if p.Channels < 3 {
		v := float32(p.Pix[i])
		return v, v, v
	}
	return float32(p.Pix[i]), float32(p.Pix[i+1]), float32(p.Pix[i+2])
}

// pixelBufferOf views m as a PixelBuffer. *image.RGBA, *image.NRGBA and
// *image.Gray are viewed without copying; other images are converted to RGBA.
func pixelBufferOf(m image.Image) *PixelBuffer {
	b := m.Bounds()
	switch m := m.(type) {
	case *image.RGBA:
		return &PixelBuffer{Pix: m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], Width: b.Dx(), Height: b.Dy(), Channels: 4, Stride: m.Stride}
	case *image.NRGBA:
		return &PixelBuffer{Pix: m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], Width: b.Dx(), Height: b.Dy(), Channels: 4, Stride: m.Stride}
	case *image.Gray:
		return &PixelBuffer{Pix: m.Pix[m.PixOffset(b.Min.X, b.Min.Y):], Width: b.Dx(), Height: b.Dy(), Channels: 1, Stride: m.Stride}
	}
	rgba := image.NewRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(rgba, rgba.Bounds(), m, b.Min, draw.Src)
	return &PixelBuffer{Pix: rgba.Pix, Width: b.Dx(), Height: b.Dy(), Channels: 4, Stride: rgba.Stride}
}
