package audio

import (
	"encoding/binary"
	"sync"

	"github.com/gordonklaus/portaudio"

	apierrors "github.com/diogo/voicechat/internal/errors"
)

// Handle is one playback in progress
type Handle interface {
	// Done is closed when playback finishes or is released
	Done() <-chan struct{}
	// Release stops playback and frees the output device. Safe to call
	// more than once.
	Release()
}

// Engine starts playback of raw PCM on an output device
type Engine interface {
	Play(pcm []byte, info PCMInfo) (Handle, error)
}

// Player owns reply-audio playback. At most one handle is active at a
// time: starting a new playback always releases the previous one first.
// When the engine refuses to play, the payload is retained so the user
// can trigger it manually.
type Player struct {
	mu       sync.Mutex
	engine   Engine
	active   Handle
	retained []byte
	info     PCMInfo
	blocked  bool
}

// NewPlayer creates a Player backed by the given engine
func NewPlayer(engine Engine) *Player {
	return &Player{engine: engine}
}

// Play decodes the reply payload and starts playback, releasing any
// previous playback first. A refused or failed start returns a
// PlaybackBlockedError and retains the audio for Replay.
func (p *Player) Play(data []byte) error {
	pcm, info, err := SplitWAV(data)
	if err != nil {
		return err
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	p.releaseLocked()
	p.retained = pcm
	p.info = info

	handle, err := p.engine.Play(pcm, info)
	if err != nil {
		p.blocked = true
		return apierrors.NewPlaybackBlockedError(err.Error())
	}

	p.active = handle
	p.blocked = false
	return nil
}

// Replay retries playback of the retained audio. Used after a blocked
// playback, once the user has asked for it explicitly.
func (p *Player) Replay() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if len(p.retained) == 0 {
		return apierrors.NewPlaybackBlockedError("no audio to replay")
	}

	p.releaseLocked()

	handle, err := p.engine.Play(p.retained, p.info)
	if err != nil {
		p.blocked = true
		return apierrors.NewPlaybackBlockedError(err.Error())
	}

	p.active = handle
	p.blocked = false
	return nil
}

// Release stops the active playback, if any
func (p *Player) Release() {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.releaseLocked()
}

func (p *Player) releaseLocked() {
	if p.active != nil {
		p.active.Release()
		p.active = nil
	}
}

// Blocked reports whether the last playback attempt was refused
func (p *Player) Blocked() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.blocked
}

// HasRetained reports whether audio is available for Replay
func (p *Player) HasRetained() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.retained) > 0
}

// Wait blocks until the active playback finishes. Returns immediately
// when nothing is playing.
func (p *Player) Wait() {
	p.mu.Lock()
	active := p.active
	p.mu.Unlock()
	if active != nil {
		<-active.Done()
	}
}

// OutputEngine plays PCM on the default output device. The audio host
// must already be initialized.
type OutputEngine struct{}

// NewOutputEngine creates the default output engine
func NewOutputEngine() *OutputEngine {
	return &OutputEngine{}
}

// Play starts playback on the default output device
func (e *OutputEngine) Play(pcm []byte, info PCMInfo) (Handle, error) {
	samples := make([]int16, len(pcm)/wavBytesPerSample)
	for i := range samples {
		samples[i] = int16(binary.LittleEndian.Uint16(pcm[i*2:]))
	}

	buffer := make([]int16, FramesPerBuffer*info.Channels)
	stream, err := portaudio.OpenDefaultStream(
		0,
		info.Channels,
		float64(info.SampleRate),
		FramesPerBuffer,
		buffer,
	)
	if err != nil {
		return nil, apierrors.NewDeviceError("failed to open output stream", err)
	}

	if err := stream.Start(); err != nil {
		stream.Close()
		return nil, apierrors.NewDeviceError("failed to start output stream", err)
	}

	h := &outputHandle{
		stream: stream,
		done:   make(chan struct{}),
		stop:   make(chan struct{}),
	}

	go h.playLoop(samples, buffer)

	return h, nil
}

type outputHandle struct {
	mu       sync.Mutex
	stream   *portaudio.Stream
	done     chan struct{}
	stop     chan struct{}
	released bool
}

func (h *outputHandle) playLoop(samples, buffer []int16) {
	defer func() {
		h.mu.Lock()
		if h.stream != nil {
			h.stream.Stop()
			h.stream.Close()
			h.stream = nil
		}
		h.mu.Unlock()
		close(h.done)
	}()

	for off := 0; off < len(samples); off += len(buffer) {
		select {
		case <-h.stop:
			return
		default:
		}

		n := copy(buffer, samples[off:])
		for i := n; i < len(buffer); i++ {
			buffer[i] = 0
		}

		h.mu.Lock()
		stream := h.stream
		h.mu.Unlock()
		if stream == nil {
			return
		}
		if err := stream.Write(); err != nil {
			return
		}
	}
}

func (h *outputHandle) Done() <-chan struct{} {
	return h.done
}

func (h *outputHandle) Release() {
	h.mu.Lock()
	if h.released {
		h.mu.Unlock()
		return
	}
	h.released = true
	h.mu.Unlock()

	close(h.stop)
	<-h.done
}
