package shotjpeg

// block is an 8x8 data unit of one channel, in natural (not zig-zag) order.
type block [blockSize]float32

// fdct8 is the AAN (Arai, Agui and Nakajima) 8-point forward DCT butterfly
// applied to the 8 samples d[0], d[step], ..., d[7*step]. The outputs are
// left unnormalized; the aasf factors in the quantization reciprocals absorb
// the scaling.
func fdct8(d []float32, step int) {
	d0, d1, d2, d3 := d[0], d[step], d[2*step], d[3*step]
	d4, d5, d6, d7 := d[4*step], d[5*step], d[6*step], d[7*step]

	tmp0, tmp7 := d0+d7, d0-d7
	tmp1, tmp6 := d1+d6, d1-d6
	tmp2, tmp5 := d2+d5, d2-d5
	tmp3, tmp4 := d3+d4, d3-d4

	// Even part.
	tmp10, tmp13 := tmp0+tmp3, tmp0-tmp3
	tmp11, tmp12 := tmp1+tmp2, tmp1-tmp2

	d[0] = tmp10 + tmp11
	d[4*step] = tmp10 - tmp11

	z1 := (tmp12 + tmp13) * 0.707106781 // c4
	d[2*step] = tmp13 + z1
	d[6*step] = tmp13 - z1

	// Odd part.
	tmp10 = tmp4 + tmp5
	tmp11 = tmp5 + tmp6
	tmp12 = tmp6 + tmp7

	// The rotator is modified from fig 4-8 to avoid extra negations.
	z5 := (tmp10 - tmp12) * 0.382683433 // c6
	z2 := tmp10*0.541196100 + z5        // c2-c6
	z4 := tmp12*1.306562965 + z5        // c2+c6
	z3 := tmp11 * 0.707106781           // c4

	z11 := tmp7 + z3
	z13 := tmp7 - z3

	d[5*step] = z13 + z2
	d[3*step] = z13 - z2
	d[1*step] = z11 + z4
	d[7*step] = z11 - z4
}

// fdct performs a forward DCT on an 8x8 block in place: rows first, then
// columns.
func fdct(b *block) {
	for y := 0; y < 8; y++ {
		fdct8(b[8*y:], 1)
	}
	for x := 0; x < 8; x++ {
		fdct8(b[x:], 8)
	}
}
