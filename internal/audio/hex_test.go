package audio

import (
	"bytes"
	"strings"
	"testing"

	apierrors "github.com/diogo/voicechat/internal/errors"
)

func TestDecodeHex(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    []byte
		wantErr bool
	}{
		{
			name:  "empty string",
			input: "",
			want:  []byte{},
		},
		{
			name:  "single byte",
			input: "48",
			want:  []byte{0x48},
		},
		{
			name:  "hello payload",
			input: "48656c6c6f",
			want:  []byte("Hello"),
		},
		{
			name:  "uppercase digits",
			input: "DEADBEEF",
			want:  []byte{0xde, 0xad, 0xbe, 0xef},
		},
		{
			name:    "odd length",
			input:   "48656c6c6",
			wantErr: true,
		},
		{
			name:    "non-hex digit",
			input:   "48zz",
			wantErr: true,
		},
		{
			name:    "whitespace",
			input:   "48 65",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := DecodeHex(tt.input)
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !apierrors.IsProtocolError(err) {
					t.Errorf("expected ProtocolError, got %T", err)
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if !bytes.Equal(got, tt.want) {
				t.Errorf("got %v, want %v", got, tt.want)
			}
		})
	}
}

func TestHexRoundTrip(t *testing.T) {
	sizes := []int{0, 1, 512, 1024}
	for _, size := range sizes {
		data := make([]byte, size)
		for i := range data {
			data[i] = byte(i % 251)
		}

		encoded := EncodeHex(data)
		if len(encoded) != size*2 {
			t.Errorf("size %d: encoded length %d, want %d", size, len(encoded), size*2)
		}

		decoded, err := DecodeHex(encoded)
		if err != nil {
			t.Fatalf("size %d: decode failed: %v", size, err)
		}
		if !bytes.Equal(decoded, data) {
			t.Errorf("size %d: round trip mismatch", size)
		}
	}
}

func TestDecodeHexErrorMessage(t *testing.T) {
	_, err := DecodeHex("abc")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "odd length") {
		t.Errorf("error should mention odd length, got %q", err.Error())
	}
}
