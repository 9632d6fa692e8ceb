// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shotjpeg

import (
	"bufio"
	"io"
)

// writer is a buffered writer.
type writer interface {
	Flush() error
	io.Writer
	io.ByteWriter
}

// bitWriter accumulates entropy-coded bits and writes them, and the marker
// segments around them, to w. It lives for the whole image because codes do
// not align to byte or block boundaries.
type bitWriter struct {
	// w is the writer to write to. err is the first error encountered during
	// writing. All attempted writes after the first error become no-ops.
	w   writer
	err error
	// bits and nBits are accumulated bits to write to w. nBits is always
	// less than 8 between calls to emit.
	bits, nBits uint32
}

func newBitWriter(w io.Writer) *bitWriter {
	if ww, ok := w.(writer); ok {
		return &bitWriter{w: ww}
	}
	return &bitWriter{w: bufio.NewWriter(w)}
}

func (b *bitWriter) fail(err error) {
	if err != nil && b.err == nil {
		b.err = &sinkError{err: err}
	}
}

func (b *bitWriter) flush() {
	if b.err != nil {
		return
	}
	b.fail(b.w.Flush())
}

func (b *bitWriter) write(p []byte) {
	if b.err != nil {
		return
	}
	_, err := b.w.Write(p)
	b.fail(err)
}

func (b *bitWriter) writeByte(c byte) {
	if b.err != nil {
		return
	}
	b.fail(b.w.WriteByte(c))
}

// emit emits the least significant nBits bits of bits to the bit-stream.
// The precondition is bits < 1<<nBits && nBits <= 16.
func (b *bitWriter) emit(bits, nBits uint32) {
	nBits += b.nBits
	bits <<= 32 - nBits
	bits |= b.bits
	for nBits >= 8 {
		c := uint8(bits >> 24)
		b.writeByte(c)
		if c == 0xff {
			b.writeByte(0x00)
		}
		bits <<= 8
		nBits -= 8
	}
	b.bits, b.nBits = bits, nBits
}

// emitHuff emits the codeword for value v of table h.
func (b *bitWriter) emitHuff(h *huffmanLUT, v uint8) {
	b.emit(h.code(v), h.size(v))
}

// pad fills the last partial byte with 1 bits.
func (b *bitWriter) pad() {
	b.emit(0x7f, 7)
}
