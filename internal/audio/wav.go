package audio

import (
	"bytes"
	"encoding/binary"

	apierrors "github.com/diogo/voicechat/internal/errors"
)

const (
	wavBytesPerSample = 2  // LINEAR16 -> 2 bytes per sample
	wavBitsPerSample  = 16 // LINEAR16 -> 16 bits per sample
	wavPCMFormat      = 1  // WAV PCM format tag
	wavHeaderSize     = 44
)

// EncodeWAV converts captured float32 samples into the canonical wire
// format: 16-bit little-endian PCM in a RIFF/WAVE container. The capture
// device's native float frames are not what the backend accepts, so this
// conversion is a required step before transmission.
func EncodeWAV(samples []float32, sampleRate, channels int) ([]byte, error) {
	if sampleRate <= 0 || channels <= 0 {
		return nil, apierrors.NewEncodingError("sample rate and channels must be positive")
	}

	pcm := make([]byte, len(samples)*wavBytesPerSample)
	for i, s := range samples {
		// Clamp to [-1, 1] before scaling; out-of-range floats would
		// otherwise wrap around when truncated to int16.
		if s > 1 {
			s = 1
		} else if s < -1 {
			s = -1
		}
		var v int16
		if s < 0 {
			v = int16(s * 0x8000)
		} else {
			v = int16(s * 0x7fff)
		}
		binary.LittleEndian.PutUint16(pcm[i*2:], uint16(v))
	}

	var buf bytes.Buffer
	bps := sampleRate * channels * wavBytesPerSample

	buf.WriteString("RIFF")
	binary.Write(&buf, binary.LittleEndian, uint32(36+len(pcm)))
	buf.WriteString("WAVE")

	buf.WriteString("fmt ")
	binary.Write(&buf, binary.LittleEndian, uint32(16))
	binary.Write(&buf, binary.LittleEndian, uint16(wavPCMFormat))
	binary.Write(&buf, binary.LittleEndian, uint16(channels))
	binary.Write(&buf, binary.LittleEndian, uint32(sampleRate))
	binary.Write(&buf, binary.LittleEndian, uint32(bps))
	binary.Write(&buf, binary.LittleEndian, uint16(channels*wavBytesPerSample))
	binary.Write(&buf, binary.LittleEndian, uint16(wavBitsPerSample))

	buf.WriteString("data")
	binary.Write(&buf, binary.LittleEndian, uint32(len(pcm)))
	buf.Write(pcm)

	return buf.Bytes(), nil
}

// PCMInfo describes a decoded playback payload
type PCMInfo struct {
	SampleRate int
	Channels   int
}

// SplitWAV separates reply audio into raw PCM and format info. Audio with a
// RIFF header is parsed; headerless payloads are passed through and assumed
// to be PCM at the session defaults.
func SplitWAV(data []byte) ([]byte, PCMInfo, error) {
	info := PCMInfo{SampleRate: SampleRate, Channels: Channels}

	if len(data) < wavHeaderSize || string(data[0:4]) != "RIFF" || string(data[8:12]) != "WAVE" {
		return data, info, nil
	}

	info.Channels = int(binary.LittleEndian.Uint16(data[22:24]))
	info.SampleRate = int(binary.LittleEndian.Uint32(data[24:28]))
	if info.Channels <= 0 || info.SampleRate <= 0 {
		return nil, PCMInfo{}, apierrors.NewEncodingError("WAV header has invalid format fields")
	}

	// Scan chunks for "data"; the fmt chunk is not always exactly 16 bytes.
	off := 12
	for off+8 <= len(data) {
		id := string(data[off : off+4])
		size := int(binary.LittleEndian.Uint32(data[off+4 : off+8]))
		if size < 0 || off+8+size > len(data) {
			return nil, PCMInfo{}, apierrors.NewEncodingError("WAV chunk overruns payload")
		}
		if id == "data" {
			return data[off+8 : off+8+size], info, nil
		}
		off += 8 + size
		if size%2 == 1 {
			off++ // chunks are word-aligned
		}
	}

	return nil, PCMInfo{}, apierrors.NewEncodingError("WAV payload has no data chunk")
}
