package audio

import (
	"bytes"
	"encoding/binary"
	"testing"
)

func TestEncodeWAVHeader(t *testing.T) {
	samples := make([]float32, 1600) // 100ms at 16kHz
	data, err := EncodeWAV(samples, SampleRate, Channels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if len(data) != wavHeaderSize+len(samples)*2 {
		t.Fatalf("total size %d, want %d", len(data), wavHeaderSize+len(samples)*2)
	}

	if string(data[0:4]) != "RIFF" {
		t.Errorf("missing RIFF magic: %q", data[0:4])
	}
	if string(data[8:12]) != "WAVE" {
		t.Errorf("missing WAVE magic: %q", data[8:12])
	}

	if got := binary.LittleEndian.Uint16(data[20:22]); got != wavPCMFormat {
		t.Errorf("format tag %d, want %d", got, wavPCMFormat)
	}
	if got := binary.LittleEndian.Uint16(data[22:24]); got != Channels {
		t.Errorf("channels %d, want %d", got, Channels)
	}
	if got := binary.LittleEndian.Uint32(data[24:28]); got != SampleRate {
		t.Errorf("sample rate %d, want %d", got, SampleRate)
	}
	if got := binary.LittleEndian.Uint16(data[34:36]); got != wavBitsPerSample {
		t.Errorf("bits per sample %d, want %d", got, wavBitsPerSample)
	}
	if got := binary.LittleEndian.Uint32(data[40:44]); got != uint32(len(samples)*2) {
		t.Errorf("data chunk size %d, want %d", got, len(samples)*2)
	}
}

func TestEncodeWAVClamping(t *testing.T) {
	data, err := EncodeWAV([]float32{2.0, -2.0, 0, 1.0, -1.0}, SampleRate, Channels)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	pcm := data[wavHeaderSize:]
	want := []int16{32767, -32768, 0, 32767, -32768}
	for i, w := range want {
		got := int16(binary.LittleEndian.Uint16(pcm[i*2:]))
		if got != w {
			t.Errorf("sample %d: got %d, want %d", i, got, w)
		}
	}
}

func TestEncodeWAVInvalidFormat(t *testing.T) {
	if _, err := EncodeWAV(nil, 0, 1); err == nil {
		t.Error("zero sample rate should fail")
	}
	if _, err := EncodeWAV(nil, SampleRate, 0); err == nil {
		t.Error("zero channels should fail")
	}
}

func TestSplitWAVRoundTrip(t *testing.T) {
	samples := []float32{0.5, -0.5, 0.25, -0.25}
	encoded, err := EncodeWAV(samples, 24000, 1)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	pcm, info, err := SplitWAV(encoded)
	if err != nil {
		t.Fatalf("split failed: %v", err)
	}
	if info.SampleRate != 24000 {
		t.Errorf("sample rate %d, want 24000", info.SampleRate)
	}
	if info.Channels != 1 {
		t.Errorf("channels %d, want 1", info.Channels)
	}
	if len(pcm) != len(samples)*2 {
		t.Errorf("pcm length %d, want %d", len(pcm), len(samples)*2)
	}
	if !bytes.Equal(pcm, encoded[wavHeaderSize:]) {
		t.Error("pcm does not match encoded data chunk")
	}
}

func TestSplitWAVHeaderless(t *testing.T) {
	raw := []byte{0x01, 0x02, 0x03, 0x04}
	pcm, info, err := SplitWAV(raw)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !bytes.Equal(pcm, raw) {
		t.Error("headerless payload should pass through unchanged")
	}
	if info.SampleRate != SampleRate || info.Channels != Channels {
		t.Errorf("headerless payload should use defaults, got %+v", info)
	}
}

func TestSplitWAVTruncated(t *testing.T) {
	samples := []float32{0.5, -0.5}
	encoded, err := EncodeWAV(samples, SampleRate, Channels)
	if err != nil {
		t.Fatalf("encode failed: %v", err)
	}

	// Corrupt the data chunk size so it claims more bytes than exist
	binary.LittleEndian.PutUint32(encoded[40:44], 9999)
	if _, _, err := SplitWAV(encoded); err == nil {
		t.Error("overrunning data chunk should fail")
	}
}

func TestPadToMinimum(t *testing.T) {
	if got := PadToMinimum(nil, SampleRate); len(got) != 0 {
		t.Errorf("empty capture must stay empty, got %d samples", len(got))
	}

	short := make([]float32, 100)
	padded := PadToMinimum(short, SampleRate)
	if len(padded) != SampleRate/5 {
		t.Errorf("padded length %d, want %d", len(padded), SampleRate/5)
	}

	long := make([]float32, SampleRate)
	if got := PadToMinimum(long, SampleRate); len(got) != len(long) {
		t.Errorf("long capture should be unchanged, got %d", len(got))
	}

	// The minimum window scales with the capture rate
	if got := PadToMinimum(short, 8000); len(got) != 8000/5 {
		t.Errorf("padded length at 8kHz %d, want %d", len(got), 8000/5)
	}
}
