package shotjpeg

import (
	"math"
	"testing"

	"github.com/pkg/errors"
)

func near(a, b, tol float32) bool {
	return math.Abs(float64(a-b)) <= float64(tol)
}

func TestRGBToYCbCr(t *testing.T) {
	for _, tc := range []struct {
		r, g, b   float32
		y, cb, cr float32
	}{
		{0, 0, 0, -128, 0, 0},
		{255, 255, 255, 127, 0, 0},
		{255, 0, 0, -51.755, -43.0287, 127.5},
		{0, 255, 0, 21.685, -84.4713, -106.76595},
		{0, 0, 255, -98.93, 127.5, -20.73405},
	} {
		y, cb, cr := rgbToYCbCr(tc.r, tc.g, tc.b)
		if !near(y, tc.y, 1e-3) || !near(cb, tc.cb, 1e-3) || !near(cr, tc.cr, 1e-3) {
			t.Errorf("rgbToYCbCr(%v, %v, %v) = (%v, %v, %v), want (%v, %v, %v)",
				tc.r, tc.g, tc.b, y, cb, cr, tc.y, tc.cb, tc.cr)
		}
	}
}

func TestSubsamplingFor(t *testing.T) {
	for _, tc := range []struct {
		quality int
		want    subsampling
	}{
		{-3, subsample420},
		{1, subsample420},
		{75, subsample420},
		{90, subsample420},
		{91, subsample444},
		{100, subsample444},
		{300, subsample444},
	} {
		if got := subsamplingFor(tc.quality); got != tc.want {
			t.Errorf("subsamplingFor(%d) = %v, want %v", tc.quality, got, tc.want)
		}
	}
	if subsample420.mcuSize() != 16 || subsample444.mcuSize() != 8 {
		t.Error("wrong MCU sizes")
	}
}

func TestLoadReplicatesEdges(t *testing.T) {
	// A 3x2 RGB image whose red channel encodes the pixel position.
	const w, h = 3, 2
	pix := make([]byte, w*h*3)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			pix[(y*w+x)*3] = byte(10*y + x)
		}
	}
	p := &PixelBuffer{Pix: pix, Width: w, Height: h, Channels: 3}
	var m mcuPlanes
	m.load(p, 0, 0, 16)
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			sx, sy := min(i, w-1), min(j, h-1)
			want, _, _ := rgbToYCbCr(float32(10*sy+sx), 0, 0)
			if got := m.y[16*j+i]; got != want {
				t.Fatalf("(%d, %d): got %v, want %v", i, j, got, want)
			}
		}
	}
}

func TestLoadOnePixel(t *testing.T) {
	p := &PixelBuffer{Pix: []byte{200, 100, 50}, Width: 1, Height: 1, Channels: 3}
	y, cb, cr := rgbToYCbCr(200, 100, 50)
	for _, size := range []int{8, 16} {
		var m mcuPlanes
		m.load(p, 0, 0, size)
		for j := 0; j < size; j++ {
			for i := 0; i < size; i++ {
				k := 16*j + i
				if m.y[k] != y || m.cb[k] != cb || m.cr[k] != cr {
					t.Fatalf("size %d (%d, %d): got (%v, %v, %v)", size, i, j, m.y[k], m.cb[k], m.cr[k])
				}
			}
		}
	}
}

func TestLoadHonoursStrideAndChannels(t *testing.T) {
	// 2x2 RGBA with 3 junk bytes at the end of each row.
	rgba := []byte{
		10, 20, 30, 255, 40, 50, 60, 0, 0xee, 0xee, 0xee,
		70, 80, 90, 128, 100, 110, 120, 7, 0xee, 0xee, 0xee,
	}
	rgb := []byte{
		10, 20, 30, 40, 50, 60,
		70, 80, 90, 100, 110, 120,
	}
	var a, b mcuPlanes
	a.load(&PixelBuffer{Pix: rgba, Width: 2, Height: 2, Channels: 4, Stride: 11}, 0, 0, 8)
	b.load(&PixelBuffer{Pix: rgb, Width: 2, Height: 2, Channels: 3}, 0, 0, 8)
	if a != b {
		t.Error("RGBA with padded stride converts differently from packed RGB")
	}

	gray := []byte{10, 255, 70, 255}
	grayRGB := []byte{10, 10, 10, 70, 70, 70}
	a, b = mcuPlanes{}, mcuPlanes{}
	a.load(&PixelBuffer{Pix: gray, Width: 1, Height: 2, Channels: 2}, 0, 0, 8)
	b.load(&PixelBuffer{Pix: grayRGB, Width: 1, Height: 2, Channels: 3}, 0, 0, 8)
	if a != b {
		t.Error("gray+alpha converts differently from the equivalent RGB")
	}
}

func TestDownsample(t *testing.T) {
	var plane [256]float32
	for j := 0; j < 16; j++ {
		for i := 0; i < 16; i++ {
			plane[16*j+i] = float32(4*(j/2*8+i/2) + (i % 2) + 2*(j%2))
		}
	}
	var b block
	downsample(&b, &plane)
	for k := range b {
		// Each 2x2 group holds 4k, 4k+1, 4k+2 and 4k+3.
		if want := float32(4*k) + 1.5; b[k] != want {
			t.Fatalf("sample %d: got %v, want %v", k, b[k], want)
		}
	}
}

func TestExtract(t *testing.T) {
	var plane [256]float32
	for k := range plane {
		plane[k] = float32(k)
	}
	var b block
	extract(&b, &plane, 136)
	if b[0] != 136 || b[7] != 143 || b[8] != 152 || b[63] != 255 {
		t.Errorf("got %v %v %v %v", b[0], b[7], b[8], b[63])
	}
}

func TestValidate(t *testing.T) {
	for _, tc := range []struct {
		name string
		p    *PixelBuffer
	}{
		{"nil", nil},
		{"empty", &PixelBuffer{Width: 1, Height: 1, Channels: 3}},
		{"zero width", &PixelBuffer{Pix: make([]byte, 3), Width: 0, Height: 1, Channels: 3}},
		{"zero height", &PixelBuffer{Pix: make([]byte, 3), Width: 1, Height: 0, Channels: 3}},
		{"negative", &PixelBuffer{Pix: make([]byte, 3), Width: -1, Height: 1, Channels: 3}},
		{"no channels", &PixelBuffer{Pix: make([]byte, 3), Width: 1, Height: 1, Channels: 0}},
		{"five channels", &PixelBuffer{Pix: make([]byte, 5), Width: 1, Height: 1, Channels: 5}},
		{"short stride", &PixelBuffer{Pix: make([]byte, 12), Width: 2, Height: 2, Channels: 3, Stride: 5}},
		{"short pix", &PixelBuffer{Pix: make([]byte, 11), Width: 2, Height: 2, Channels: 3}},
		{"too wide", &PixelBuffer{Pix: make([]byte, 3<<16), Width: 1 << 16, Height: 1, Channels: 3}},
		{"short row", &PixelBuffer{Pix: make([]byte, 2), Width: 1, Height: 1, Channels: 3}},
		{"huge stride", &PixelBuffer{Pix: make([]byte, 16), Width: 1, Height: 3, Channels: 3, Stride: math.MaxInt}},
		{"stride overflows", &PixelBuffer{Pix: make([]byte, 16), Width: 1, Height: 3, Channels: 3, Stride: math.MaxInt/2 + 1}},
	} {
		t.Run(tc.name, func(t *testing.T) {
			if err := tc.p.validate(); !errors.Is(err, ErrInvalidInput) {
				t.Errorf("got %v, want ErrInvalidInput", err)
			}
		})
	}

	// The last row does not need its padding.
	p, err := NewPixelBuffer(make([]byte, 16+6), 2, 2, 3, 16)
	if err != nil || p.stride() != 16 {
		t.Errorf("NewPixelBuffer: %v", err)
	}
}
