// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shotjpeg

import "github.com/pkg/errors"

// huffmanLUT is a compiled look-up table representation of a huffmanSpec.
// Each value maps to a uint32 of which the 8 most significant bits hold the
// codeword size in bits and the 24 least significant bits hold the codeword.
// The maximum codeword size is 16 bits. Values absent from the table map to 0.
type huffmanLUT [256]uint32

// init assigns canonical codes: lengths are walked from 1 to 16 bits, codes of
// one length are consecutive, and the running code doubles between lengths.
func (h *huffmanLUT) init(s huffmanSpec) error {
	*h = huffmanLUT{}
	code, k := uint32(0), 0
	for i := 0; i < len(s.count); i++ {
		nBits := uint32(i + 1)
		for j := uint8(0); j < s.count[i]; j++ {
			if k >= len(s.value) {
				return errors.Errorf("shotjpeg: huffman table has %d values, counts need more", len(s.value))
			}
			if code >= 1<<nBits {
				return errors.Errorf("shotjpeg: huffman table overflows %d-bit codes", nBits)
			}
			h[s.value[k]] = nBits<<24 | code
			code++
			k++
		}
		code <<= 1
	}
	return nil
}

// size returns the codeword length for v, or 0 if v has no code.
func (h *huffmanLUT) size(v uint8) uint32 { return h[v] >> 24 }

// code returns the codeword for v.
func (h *huffmanLUT) code(v uint8) uint32 { return h[v] & (1<<24 - 1) }

// huffmanTables holds the four compiled tables of one encode.
type huffmanTables [nHuffIndex]huffmanLUT

func newHuffmanTables() (*huffmanTables, error) {
	t := new(huffmanTables)
	for i, s := range theHuffmanSpec {
		if err := t[i].init(s); err != nil {
			return nil, err
		}
	}
	return t, nil
}
