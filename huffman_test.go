package shotjpeg

import (
	"strings"
	"testing"
)

func TestHuffmanCanonical(t *testing.T) {
	tables, err := newHuffmanTables()
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range theHuffmanSpec {
		h := &tables[i]
		var prevSize, prevCode uint32
		for k, v := range s.value {
			size, code := h.size(v), h.code(v)
			if size == 0 || size > 16 {
				t.Fatalf("table %d value %#02x: size %d", i, v, size)
			}
			if code >= 1<<size {
				t.Fatalf("table %d value %#02x: code %b does not fit %d bits", i, v, code, size)
			}
			if k > 0 {
				switch {
				case size < prevSize:
					t.Fatalf("table %d value %#02x: size %d after %d", i, v, size, prevSize)
				case size == prevSize && code != prevCode+1:
					t.Fatalf("table %d value %#02x: code %b after %b", i, v, code, prevCode)
				case size > prevSize && code <= prevCode<<(size-prevSize):
					t.Fatalf("table %d value %#02x: code %b not above %b", i, v, code, prevCode)
				}
			}
			prevSize, prevCode = size, code
		}
	}
}

func TestHuffmanPrefixFree(t *testing.T) {
	tables, err := newHuffmanTables()
	if err != nil {
		t.Fatal(err)
	}
	for i, s := range theHuffmanSpec {
		var codes []string
		for _, v := range s.value {
			codes = append(codes, codeString(&tables[i], v))
		}
		for a := range codes {
			for b := range codes {
				if a != b && strings.HasPrefix(codes[b], codes[a]) {
					t.Fatalf("table %d: %s is a prefix of %s", i, codes[a], codes[b])
				}
			}
		}
	}
}

func TestHuffmanKnownCodes(t *testing.T) {
	tables, err := newHuffmanTables()
	if err != nil {
		t.Fatal(err)
	}
	// Codes from tables K.3 to K.6 of ITU-T T.81.
	for _, tc := range []struct {
		table huffIndex
		value uint8
		want  string
	}{
		{huffIndexLuminanceDC, 0x00, "00"},
		{huffIndexLuminanceDC, 0x03, "100"},
		{huffIndexLuminanceDC, 0x0b, "111111110"},
		{huffIndexLuminanceAC, 0x00, "1010"},
		{huffIndexLuminanceAC, 0x01, "00"},
		{huffIndexLuminanceAC, 0xf0, "11111111001"},
		{huffIndexLuminanceAC, 0xfa, "1111111111111110"},
		{huffIndexChrominanceDC, 0x00, "00"},
		{huffIndexChrominanceDC, 0x0b, "11111111110"},
		{huffIndexChrominanceAC, 0x00, "00"},
		{huffIndexChrominanceAC, 0xf0, "1111111010"},
	} {
		if got := codeString(&tables[tc.table], tc.value); got != tc.want {
			t.Errorf("table %d value %#02x: got %s, want %s", tc.table, tc.value, got, tc.want)
		}
	}
}

func TestHuffmanBadSpec(t *testing.T) {
	var h huffmanLUT
	if err := h.init(huffmanSpec{count: [16]byte{3}, value: []byte{0, 1, 2}}); err == nil {
		t.Error("three 1-bit codes: got nil error")
	}
	if err := h.init(huffmanSpec{count: [16]byte{0, 2}, value: []byte{0}}); err == nil {
		t.Error("short value list: got nil error")
	}
}

// codeString renders the codeword of v as a string of '0' and '1'.
func codeString(h *huffmanLUT, v uint8) string {
	return bitString(h.code(v), h.size(v))
}

func bitString(bits, n uint32) string {
	var sb strings.Builder
	for i := int(n) - 1; i >= 0; i-- {
		if bits>>uint(i)&1 == 1 {
			sb.WriteByte('1')
		} else {
			sb.WriteByte('0')
		}
	}
	return sb.String()
}
