package capture

import (
	"encoding/base64"
	"strings"

	"github.com/pkg/errors"
)

const alphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789+/"

// EncodeBase64 returns the padded standard base64 text of data.
func EncodeBase64(data []byte) string {
	return base64.StdEncoding.EncodeToString(data)
}

// DecodeBase64 decodes base64 text back to bytes. Decoding stops at the first
// byte outside the alphabet, so trailing padding, newlines or junk are
// ignored.
func DecodeBase64(text string) ([]byte, error) {
	if i := strings.IndexFunc(text, func(r rune) bool {
		return !strings.ContainsRune(alphabet, r)
	}); i >= 0 {
		text = text[:i]
	}
	// A single leftover character carries fewer than 8 bits.
	if len(text)%4 == 1 {
		text = text[:len(text)-1]
	}
	data, err := base64.RawStdEncoding.DecodeString(text)
	if err != nil {
		return nil, errors.Wrap(err, "capture: decode base64")
	}
	return data, nil
}
