package capture

import (
	"bytes"
	"strings"

	"github.com/klauspost/compress/zstd"
	"github.com/pkg/errors"
)

// Bundle packs base64 screenshots, one per line, into a single zstd frame.
// Screenshots must be non-empty and free of line breaks.
// Base64 text only carries 6 bits per byte, so the frame is typically close
// to the size of the raw JPEG data it encodes.
func Bundle(shots []string) ([]byte, error) {
	for i, s := range shots {
		if s == "" {
			return nil, errors.Errorf("capture: screenshot %d is empty", i)
		}
		if strings.ContainsAny(s, "\r\n") {
			return nil, errors.Errorf("capture: screenshot %d contains a line break", i)
		}
	}
	enc, err := zstd.NewWriter(nil,
		zstd.WithEncoderConcurrency(1),
		zstd.WithEncoderLevel(zstd.SpeedBetterCompression),
		zstd.WithLowerEncoderMem(true),
		zstd.WithZeroFrames(true),
	)
	if err != nil {
		return nil, errors.Wrap(err, "capture: zstd encoder")
	}
	defer enc.Close()
	var raw bytes.Buffer
	for _, s := range shots {
		raw.WriteString(s)
		raw.WriteByte('\n')
	}
	return enc.EncodeAll(raw.Bytes(), nil), nil
}

// Unbundle reverses Bundle.
func Unbundle(frame []byte) ([]string, error) {
	dec, err := zstd.NewReader(nil, zstd.WithDecoderConcurrency(1))
	if err != nil {
		return nil, errors.Wrap(err, "capture: zstd decoder")
	}
	defer dec.Close()
	raw, err := dec.DecodeAll(frame, nil)
	if err != nil {
		return nil, errors.Wrap(err, "capture: zstd decode")
	}
	text := strings.TrimSuffix(string(raw), "\n")
	if text == "" {
		return nil, nil
	}
	return strings.Split(text, "\n"), nil
}
