// Package audio provides microphone capture, playback, and the codecs
// that bridge device frames and the backend wire format.
package audio

import (
	"sync"
	"time"

	"github.com/gordonklaus/portaudio"

	apierrors "github.com/diogo/voicechat/internal/errors"
)

const (
	// SampleRate is the default capture rate, matching the backend's recognizer
	SampleRate = 16000
	// Channels is the capture channel count (mono)
	Channels = 1
	// FramesPerBuffer is the device read size
	FramesPerBuffer = 1024
)

// Device is a capture source that delivers audio in chunks as they arrive.
// Implementations call the sink from their own goroutine; the sink must be
// safe for that.
type Device interface {
	// Start opens the device and begins delivering chunks to sink
	Start(sink func(chunk []float32)) error
	// Stop ends delivery and releases the device. No sink calls happen
	// after Stop returns.
	Stop() error
	// Close releases all device resources
	Close() error
	// SampleRate is the rate chunks are captured at, in Hz
	SampleRate() int
}

// Recorder captures audio from the default input device.
type Recorder struct {
	mu         sync.Mutex
	stream     *portaudio.Stream
	buffer     []float32
	sink       func([]float32)
	sampleRate int
	running    bool
	done       chan struct{}
}

// NewRecorder initializes the audio host and creates a Recorder
// capturing at the given rate. Non-positive rates fall back to the
// default.
func NewRecorder(sampleRate int) (*Recorder, error) {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	if err := portaudio.Initialize(); err != nil {
		return nil, apierrors.NewDeviceError("failed to initialize audio host", err)
	}
	return &Recorder{
		buffer:     make([]float32, FramesPerBuffer),
		sampleRate: sampleRate,
	}, nil
}

// SampleRate returns the capture rate in Hz
func (r *Recorder) SampleRate() int {
	return r.sampleRate
}

// Start opens the default input stream and begins delivering chunks.
// Calling Start while already running is a no-op.
func (r *Recorder) Start(sink func(chunk []float32)) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.running {
		return nil
	}

	stream, err := portaudio.OpenDefaultStream(
		Channels,
		0,
		float64(r.sampleRate),
		FramesPerBuffer,
		r.buffer,
	)
	if err != nil {
		return apierrors.NewDeviceError("failed to open input stream", err)
	}

	r.stream = stream
	r.sink = sink
	r.running = true
	r.done = make(chan struct{})

	if err := stream.Start(); err != nil {
		stream.Close()
		r.stream = nil
		r.running = false
		return apierrors.NewDeviceError("failed to start input stream", err)
	}

	go r.recordLoop()

	return nil
}

func (r *Recorder) recordLoop() {
	defer close(r.done)

	for {
		r.mu.Lock()
		running := r.running
		stream := r.stream
		r.mu.Unlock()

		if !running || stream == nil {
			return
		}

		available, err := stream.AvailableToRead()
		if err != nil || available == 0 {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		if err := stream.Read(); err != nil {
			time.Sleep(10 * time.Millisecond)
			continue
		}

		r.mu.Lock()
		if r.running && r.sink != nil {
			chunk := make([]float32, len(r.buffer))
			copy(chunk, r.buffer)
			sink := r.sink
			r.mu.Unlock()
			sink(chunk)
			continue
		}
		r.mu.Unlock()
	}
}

// Stop ends capture and closes the stream. The record loop is given a
// short grace period to observe the stop before the stream goes away.
func (r *Recorder) Stop() error {
	r.mu.Lock()
	if !r.running {
		r.mu.Unlock()
		return nil
	}

	r.running = false
	stream := r.stream
	r.stream = nil
	r.sink = nil
	done := r.done
	r.mu.Unlock()

	if done != nil {
		select {
		case <-done:
		case <-time.After(100 * time.Millisecond):
		}
	}

	if stream != nil {
		stream.Stop()
		stream.Close()
	}

	return nil
}

// Close stops any in-flight capture and tears down the audio host
func (r *Recorder) Close() error {
	r.Stop()
	return portaudio.Terminate()
}

// IsRecording reports whether capture is in progress
func (r *Recorder) IsRecording() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.running
}

// PadToMinimum appends silence so the clip meets the recognizer's
// 200ms minimum window at the given rate. Empty input stays empty:
// padding must never turn a capture with no audio into a sendable one.
func PadToMinimum(samples []float32, sampleRate int) []float32 {
	if sampleRate <= 0 {
		sampleRate = SampleRate
	}
	min := sampleRate / 5
	if len(samples) == 0 || len(samples) >= min {
		return samples
	}
	padded := make([]float32, min)
	copy(padded, samples)
	return padded
}

// DeviceInfo describes one audio device on the host
type DeviceInfo struct {
	Name          string
	MaxInputs     int
	MaxOutputs    int
	DefaultInput  bool
	DefaultOutput bool
}

// ListDevices enumerates the host's audio devices. The audio host must
// already be initialized (NewRecorder does this).
func ListDevices() ([]DeviceInfo, error) {
	devices, err := portaudio.Devices()
	if err != nil {
		return nil, apierrors.NewDeviceError("failed to enumerate devices", err)
	}

	defaultIn, _ := portaudio.DefaultInputDevice()
	defaultOut, _ := portaudio.DefaultOutputDevice()

	infos := make([]DeviceInfo, 0, len(devices))
	for _, d := range devices {
		infos = append(infos, DeviceInfo{
			Name:          d.Name,
			MaxInputs:     d.MaxInputChannels,
			MaxOutputs:    d.MaxOutputChannels,
			DefaultInput:  defaultIn != nil && d.Name == defaultIn.Name,
			DefaultOutput: defaultOut != nil && d.Name == defaultOut.Name,
		})
	}
	return infos, nil
}
