package audio

import (
	"encoding/hex"
	"fmt"

	apierrors "github.com/diogo/voicechat/internal/errors"
)

// DecodeHex decodes the backend's hex-encoded audio field into raw bytes.
// Each pair of hex characters is one byte, high nibble first. Decoding is
// strict: an odd-length string or any non-hex digit fails closed with a
// ProtocolError rather than producing a best-effort prefix.
func DecodeHex(s string) ([]byte, error) {
	if len(s)%2 != 0 {
		return nil, apierrors.NewProtocolError("", fmt.Sprintf("audio field has odd length %d", len(s)))
	}
	data, err := hex.DecodeString(s)
	if err != nil {
		return nil, apierrors.NewProtocolError("", fmt.Sprintf("audio field is not valid hex: %v", err))
	}
	return data, nil
}

// EncodeHex encodes raw bytes the way the backend encodes reply audio
func EncodeHex(data []byte) string {
	return hex.EncodeToString(data)
}
