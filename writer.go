// Copyright 2011 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package shotjpeg

import (
	"image"
	"io"

	"github.com/pkg/errors"
)

// DefaultQuality is the quality used when Options is nil or its Quality is 0.
const DefaultQuality = 90

// Options are the encoding parameters.
// Quality ranges from 1 to 100 inclusive, higher is better. Values outside
// that range are clipped. Qualities up to 90 subsample the chroma 4:2:0,
// higher ones keep it at full resolution.
type Options struct {
	Quality int
}

func (o *Options) quality() int {
	if o == nil || o.Quality == 0 {
		return DefaultQuality
	}
	return o.Quality
}

// WriterFunc adapts a callback to io.Writer, for sinks that consume the
// stream in pieces as it is produced.
type WriterFunc func(p []byte) (n int, err error)

func (f WriterFunc) Write(p []byte) (int, error) { return f(p) }

// encoder encodes one image to the JPEG format. Every call to Encode builds
// its own encoder; nothing in it is shared with concurrent calls.
type encoder struct {
	bw    *bitWriter
	quant *quantTables
	huff  *huffmanTables
	mode  subsampling
	// buf is a scratch buffer.
	buf [20]byte
}

func newEncoder(w io.Writer, quality int) (*encoder, error) {
	huff, err := newHuffmanTables()
	if err != nil {
		return nil, err
	}
	return &encoder{
		bw:    newBitWriter(w),
		quant: newQuantTables(quality),
		huff:  huff,
		mode:  subsamplingFor(quality),
	}, nil
}

// tables returns the coding tables of channel class q.
func (e *encoder) tables(q quantIndex) componentTables {
	return componentTables{
		recip: &e.quant.recip[q],
		dc:    &e.huff[2*int(q)],
		ac:    &e.huff[2*int(q)+1],
	}
}

// writeMarkerHeader writes the header for a marker with the given length.
func (e *encoder) writeMarkerHeader(marker uint8, markerlen int) {
	e.buf[0] = 0xff
	e.buf[1] = marker
	e.buf[2] = uint8(markerlen >> 8)
	e.buf[3] = uint8(markerlen & 0xff)
	e.bw.write(e.buf[:4])
}

// writeAPP0 writes a JFIF 1.01 header with a 1:1 pixel aspect ratio and no
// thumbnail.
func (e *encoder) writeAPP0() {
	e.writeMarkerHeader(app0Marker, 16)
	e.bw.write([]byte{'J', 'F', 'I', 'F', 0, 1, 1, 0, 0, 1, 0, 1, 0, 0})
}

// writeDQT writes the Define Quantization Table marker.
func (e *encoder) writeDQT() {
	const markerlen = 2 + int(nQuantIndex)*(1+blockSize)
	e.writeMarkerHeader(dqtMarker, markerlen)
	for i := range e.quant.divisor {
		e.bw.writeByte(uint8(i))
		e.bw.write(e.quant.divisor[i][:])
	}
}

// writeSOF0 writes the Start Of Frame (Baseline Sequential) marker.
func (e *encoder) writeSOF0(size image.Point) {
	const nComponent = 3
	markerlen := 8 + 3*nComponent
	e.writeMarkerHeader(sof0Marker, markerlen)
	e.buf[0] = 8 // 8-bit color.
	e.buf[1] = uint8(size.Y >> 8)
	e.buf[2] = uint8(size.Y & 0xff)
	e.buf[3] = uint8(size.X >> 8)
	e.buf[4] = uint8(size.X & 0xff)
	e.buf[5] = nComponent
	for i := 0; i < nComponent; i++ {
		e.buf[3*i+6] = uint8(i + 1)
		e.buf[3*i+7] = 0x11
		e.buf[3*i+8] = "\x00\x01\x01"[i]
	}
	e.buf[7] = e.mode.lumaSampling()
	e.bw.write(e.buf[:3*(nComponent-1)+9])
}

// writeDHT writes the Define Huffman Table marker.
func (e *encoder) writeDHT() {
	markerlen := 2
	for _, s := range theHuffmanSpec {
		markerlen += 1 + 16 + len(s.value)
	}
	e.writeMarkerHeader(dhtMarker, markerlen)
	for i, s := range theHuffmanSpec {
		e.bw.writeByte("\x00\x10\x01\x11"[i])
		e.bw.write(s.count[:])
		e.bw.write(s.value)
	}
}

// sosHeaderYCbCr is the SOS marker "\xff\xda" followed by 12 bytes:
//   - the marker length "\x00\x0c",
//   - the number of components "\x03",
//   - component 1 uses DC table 0 and AC table 0 "\x01\x00",
//   - component 2 uses DC table 1 and AC table 1 "\x02\x11",
//   - component 3 uses DC table 1 and AC table 1 "\x03\x11",
//   - the bytes "\x00\x3f\x00". Section B.2.3 of ITU-T T.81 says that for
//     sequential DCTs, those bytes (8-bit Ss, 8-bit Se, 4-bit Ah, 4-bit Al)
//     should be 0x00, 0x3f, 0x00<<4 | 0x00.
var sosHeaderYCbCr = []byte{
	0xff, 0xda, 0x00, 0x0c, 0x03, 0x01, 0x00, 0x02,
	0x11, 0x03, 0x11, 0x00, 0x3f, 0x00,
}

// writeSOS writes the StartOfScan marker and the entropy-coded segment.
func (e *encoder) writeSOS(p *PixelBuffer) {
	e.bw.write(sosHeaderYCbCr)
	e.writeMCUs(p)
	// Pad the last byte with 1's.
	e.bw.pad()
}

// writeMCUs codes the image one MCU at a time in raster order. The order is
// fixed: DC values are coded as differences from the previous block of the
// same channel class.
func (e *encoder) writeMCUs(p *PixelBuffer) {
	var (
		// Scratch buffers to hold the YCbCr values.
		planes mcuPlanes
		b      block
		// DC components are delta-encoded.
		prevDCY, prevDCCb, prevDCCr int32
	)
	luma := e.tables(quantIndexLuminance)
	chroma := e.tables(quantIndexChrominance)
	size := e.mode.mcuSize()
	for y := 0; y < p.Height; y += size {
		for x := 0; x < p.Width; x += size {
			if e.bw.err != nil {
				return
			}
			planes.load(p, x, y, size)
			switch e.mode {
			case subsample420:
				for i := 0; i < 4; i++ {
					off := (i&2)*64 + (i&1)*8 // 0 8 128 136
					extract(&b, &planes.y, off)
					prevDCY = writeBlock(e.bw, &b, luma, prevDCY)
				}
				downsample(&b, &planes.cb)
				prevDCCb = writeBlock(e.bw, &b, chroma, prevDCCb)
				downsample(&b, &planes.cr)
				prevDCCr = writeBlock(e.bw, &b, chroma, prevDCCr)
			default:
				extract(&b, &planes.y, 0)
				prevDCY = writeBlock(e.bw, &b, luma, prevDCY)
				extract(&b, &planes.cb, 0)
				prevDCCb = writeBlock(e.bw, &b, chroma, prevDCCb)
				extract(&b, &planes.cr, 0)
				prevDCCr = writeBlock(e.bw, &b, chroma, prevDCCr)
			}
		}
	}
}

// Encode writes the pixels of p to w in baseline JPEG format with the given
// options. Default parameters are used if a nil *[Options] is passed.
//
// The stream reaches w in many small writes unless w is buffered already. If
// Encode fails, whatever reached w is not a valid image and must be dropped.
func Encode(w io.Writer, p *PixelBuffer, o *Options) error {
	if err := p.validate(); err != nil {
		return err
	}
	if w == nil {
		return invalidInput("nil writer")
	}
	e, err := newEncoder(w, o.quality())
	if err != nil {
		return err
	}
	// Write the Start Of Image marker.
	e.buf[0] = 0xff
	e.buf[1] = soiMarker
	e.bw.write(e.buf[:2])
	e.writeAPP0()
	// Write the quantization tables.
	e.writeDQT()
	// Write the image dimensions.
	e.writeSOF0(image.Pt(p.Width, p.Height))
	// Write the Huffman tables.
	e.writeDHT()
	// Write the image data.
	e.writeSOS(p)
	// Write the End Of Image marker.
	e.buf[0] = 0xff
	e.buf[1] = eoiMarker
	e.bw.write(e.buf[:2])
	e.bw.flush()
	if e.bw.err != nil {
		return errors.WithStack(e.bw.err)
	}
	return nil
}

// EncodeImage writes the Image m to w in baseline JPEG format with the given
// options. Default parameters are used if a nil *[Options] is passed.
func EncodeImage(w io.Writer, m image.Image, o *Options) error {
	if m == nil {
		return invalidInput("nil image")
	}
	return Encode(w, pixelBufferOf(m), o)
}
