// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shotjpeg

// subsampling is the chroma layout of an encode. It is chosen once from the
// quality and fixes the MCU size, the SOF0 sampling factors and the order of
// data units in the scan.
type subsampling int

const (
	// subsample420 stores Cb and Cr at half resolution in both directions:
	// a 16x16 MCU holds 4 Y blocks, 1 Cb and 1 Cr.
	subsample420 subsampling = iota
	// subsample444 stores all channels at full resolution: an 8x8 MCU holds
	// 1 Y, 1 Cb and 1 Cr.
	subsample444
)

// subsamplingFor picks 4:2:0 up to quality 90 and 4:4:4 above it.
func subsamplingFor(quality int) subsampling {
	if quality <= 90 {
		return subsample420
	}
	return subsample444
}

// mcuSize is the MCU edge length in pixels.
func (s subsampling) mcuSize() int {
	if s == subsample420 {
		return 16
	}
	return 8
}

// lumaSampling is the packed H|V sampling factor of the Y component.
func (s subsampling) lumaSampling() byte {
	if s == subsample420 {
		return 0x22
	}
	return 0x11
}

// rgbToYCbCr converts one sample. Y is level shifted by -128 so that all
// three outputs are centered on zero, as the fdct expects.
func rgbToYCbCr(r, g, b float32) (y, cb, cr float32) {
	y = 0.299*r + 0.587*g + 0.114*b - 128
	cb = -0.16874*r - 0.33126*g + 0.5*b
	cr = 0.5*r - 0.41869*g - 0.08131*b
	return y, cb, cr
}

// mcuPlanes holds the converted samples of one MCU, row-major with a stride
// of 16. Under 4:4:4 only the top-left 8x8 is used.
type mcuPlanes struct {
	y, cb, cr [256]float32
}

// load converts the size x size region of p whose top-left corner is (x0, y0).
// Samples past the right or bottom edge repeat the last valid column or row.
func (m *mcuPlanes) load(p *PixelBuffer, x0, y0, size int) {
	xmax := p.Width - 1
	ymax := p.Height - 1
	for j := 0; j < size; j++ {
		sy := min(y0+j, ymax)
		for i := 0; i < size; i++ {
			sx := min(x0+i, xmax)
			r, g, b := p.rgb(sx, sy)
			k := 16*j + i
			m.y[k], m.cb[k], m.cr[k] = rgbToYCbCr(r, g, b)
		}
	}
}

// extract copies the 8x8 region of a 16-stride plane starting at off into dst.
func extract(dst *block, plane *[256]float32, off int) {
	for j := 0; j < 8; j++ {
		copy(dst[8*j:8*j+8], plane[off+16*j:off+16*j+8])
	}
}

// downsample averages each 2x2 group of a 16x16 plane into one sample of dst.
func downsample(dst *block, plane *[256]float32) {
	for row := 0; row < 8; row++ {
		for col := 0; col < 8; col++ {
			j := 32*row + 2*col
			dst[8*row+col] = (plane[j] + plane[j+1] + plane[j+16] + plane[j+17]) * 0.25
		}
	}
}
