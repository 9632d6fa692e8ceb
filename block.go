// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shotjpeg

import "math"

// componentTables are the tables a data unit of one channel class is coded
// with.
type componentTables struct {
	recip  *[blockSize]float32
	dc, ac *huffmanLUT
}

// quantize transforms b and returns its quantized coefficients in zig-zag
// order, rounded half away from zero.
func quantize(b *block, recip *[blockSize]float32) (du [blockSize]int32) {
	fdct(b)
	for i, c := range b {
		v := c * recip[i]
		if v < 0 {
			du[zigzag[i]] = int32(math.Ceil(float64(v - 0.5)))
		} else {
			du[zigzag[i]] = int32(math.Floor(float64(v + 0.5)))
		}
	}
	return du
}

// magnitude returns the size category of v and its low size bits, with
// negative values stored as v-1 as section F.1.2.1 requires.
func magnitude(v int32) (bits, size uint32) {
	a, b := v, v
	if a < 0 {
		a, b = -v, v-1
	}
	if a < 0x100 {
		size = uint32(bitCount[a])
	} else {
		size = 8 + uint32(bitCount[a>>8])
	}
	return uint32(b) & (1<<size - 1), size
}

// emitHuffRLE emits the (runLength, size) symbol for value followed by the
// value's magnitude bits.
func emitHuffRLE(bw *bitWriter, h *huffmanLUT, runLength, value int32) {
	bits, size := magnitude(value)
	bw.emitHuff(h, uint8(runLength<<4|int32(size)))
	if size > 0 {
		bw.emit(bits, size)
	}
}

// writeBlock transforms, quantizes and entropy codes one data unit, returning
// the post-quantized DC value to be used as the next predictor of the same
// channel class. b is in natural order and is clobbered.
func writeBlock(bw *bitWriter, b *block, t componentTables, prevDC int32) int32 {
	du := quantize(b, t.recip)
	return emitBlock(bw, &du, t, prevDC)
}

// emitBlock entropy codes quantized coefficients in zig-zag order and returns
// du[0].
func emitBlock(bw *bitWriter, du *[blockSize]int32, t componentTables, prevDC int32) int32 {
	// Emit the DC delta.
	emitHuffRLE(bw, t.dc, 0, du[0]-prevDC)
	// Emit the AC components.
	runLength := int32(0)
	for zig := 1; zig < blockSize; zig++ {
		ac := du[zig]
		if ac == 0 {
			runLength++
			continue
		}
		for runLength > 15 {
			bw.emitHuff(t.ac, 0xf0)
			runLength -= 16
		}
		emitHuffRLE(bw, t.ac, runLength, ac)
		runLength = 0
	}
	if runLength > 0 {
		bw.emitHuff(t.ac, 0x00)
	}
	return du[0]
}
