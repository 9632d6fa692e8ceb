// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shotjpeg

// aasf are the AAN scale factors of the float FDCT, pre-multiplied by
// 2*sqrt(2). Folding aasf[u]*aasf[v] into the divisor normalizes the
// unscaled fdct output.
var aasf = [8]float32{
	1.0 * 2.828427125,
	1.387039845 * 2.828427125,
	1.306562965 * 2.828427125,
	1.175875602 * 2.828427125,
	1.0 * 2.828427125,
	0.785694958 * 2.828427125,
	0.541196100 * 2.828427125,
	0.275899379 * 2.828427125,
}

// quantTables are the quantization tables derived from one quality setting.
type quantTables struct {
	// divisor is the scaled quantization tables, in zig-zag order, as they
	// are written to the DQT marker.
	divisor [nQuantIndex][blockSize]byte
	// recip is 1/(divisor*aasf[row]*aasf[col]), in natural order, so that
	// quantizing an fdct output is a single multiply.
	recip [nQuantIndex][blockSize]float32
}

// clampQuality clips quality to [1, 100].
func clampQuality(quality int) int {
	if quality < 1 {
		return 1
	} else if quality > 100 {
		return 100
	}
	return quality
}

// qualityScale converts a quality rating to a percentage scaling factor.
func qualityScale(quality int) int {
	quality = clampQuality(quality)
	if quality < 50 {
		return 5000 / quality
	}
	return 200 - quality*2
}

func newQuantTables(quality int) *quantTables {
	t := new(quantTables)
	scale := qualityScale(quality)
	for i := range t.divisor {
		for j := 0; j < blockSize; j++ {
			x := int(unscaledQuant[i][j])
			x = (x*scale + 50) / 100
			if x < 1 {
				x = 1
			} else if x > 255 {
				x = 255
			}
			t.divisor[i][zigzag[j]] = uint8(x)
			t.recip[i][j] = 1 / (float32(x) * aasf[j>>3] * aasf[j&7])
		}
	}
	return t
}
