// Package session implements the recording session controller: the state
// machine that owns capture, transmission, playback handoff, and the
// conversation log for one voice chat session.
package session

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/diogo/voicechat/internal/api"
	"github.com/diogo/voicechat/internal/audio"
	apierrors "github.com/diogo/voicechat/internal/errors"
	"github.com/diogo/voicechat/internal/models"
)

// EmptyCaptureMessage is shown when a recording stops with nothing in it
const EmptyCaptureMessage = "No audio recorded. Please try again."

// Controller drives one voice chat session. It is idle, recording, or
// processing, and every turn ends back at idle no matter how it went.
// All methods are safe for concurrent use.
type Controller struct {
	mu       sync.Mutex
	state    models.SessionState
	client   api.ChatClient
	device   audio.Device
	player   *audio.Player
	capture  []float32
	messages []models.Message
	advisory string
}

// Option configures a Controller
type Option func(*Controller)

// WithPlayer enables reply-audio playback
func WithPlayer(player *audio.Player) Option {
	return func(c *Controller) {
		c.player = player
	}
}

// NewController creates a Controller in the idle state
func NewController(client api.ChatClient, device audio.Device, opts ...Option) *Controller {
	c := &Controller{
		state:  models.StateIdle,
		client: client,
		device: device,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// State returns the current session state
func (c *Controller) State() models.SessionState {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.state
}

// Messages returns a copy of the conversation log. The log is append
// only: entries are never rewritten or removed once added.
func (c *Controller) Messages() []models.Message {
	c.mu.Lock()
	defer c.mu.Unlock()
	out := make([]models.Message, len(c.messages))
	copy(out, c.messages)
	return out
}

// Advisory returns the transient playback advisory, or "" when none is
// active. Set when reply audio arrived but could not be played.
func (c *Controller) Advisory() string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.advisory
}

// transition moves the session from one state to another. The caller
// holds the lock. Each operation names the state it must start from;
// the transition table rejects edges the life cycle does not allow.
func (c *Controller) transition(op string, from, to models.SessionState) error {
	if c.state != from || !models.CanTransition(from, to) {
		return apierrors.NewTransitionError(op, c.state.String(), to.String())
	}
	c.state = to
	return nil
}

// StartRecording opens the capture device and moves the session to
// recording. Only valid from idle.
func (c *Controller) StartRecording() error {
	c.mu.Lock()
	if err := c.transition("start recording", models.StateIdle, models.StateRecording); err != nil {
		c.mu.Unlock()
		return err
	}
	c.capture = nil
	c.advisory = ""
	c.mu.Unlock()

	if err := c.device.Start(c.appendChunk); err != nil {
		c.mu.Lock()
		c.state = models.StateIdle
		c.messages = append(c.messages, models.AssistantMessage(failureMessage(err)))
		c.mu.Unlock()
		return err
	}
	return nil
}

// appendChunk accumulates one device chunk into the capture buffer.
// Called from the device's capture goroutine; chunks arriving after the
// session left recording are dropped.
func (c *Controller) appendChunk(chunk []float32) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.state == models.StateRecording {
		c.capture = append(c.capture, chunk...)
	}
}

// StopAndSend ends the recording and submits it as one chat turn. Only
// valid from recording. The session always returns to idle: on success
// after logging the exchange, on failure after logging exactly one
// assistant failure message. An empty capture short-circuits before any
// network activity.
func (c *Controller) StopAndSend(ctx context.Context) error {
	c.mu.Lock()
	if err := c.transition("stop recording", models.StateRecording, models.StateProcessing); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	c.device.Stop()

	c.mu.Lock()
	samples := c.capture
	c.capture = nil
	c.mu.Unlock()

	if len(samples) == 0 {
		c.mu.Lock()
		c.messages = append(c.messages, models.AssistantMessage(EmptyCaptureMessage))
		c.state = models.StateIdle
		c.mu.Unlock()
		return apierrors.NewEmptyCaptureError()
	}

	rate := c.device.SampleRate()
	wav, err := audio.EncodeWAV(audio.PadToMinimum(samples, rate), rate, audio.Channels)
	if err != nil {
		return c.finishTurn(false, nil, err)
	}

	reply, err := c.client.SendAudio(ctx, wav)
	return c.finishTurn(false, reply, err)
}

// SendText submits a typed message as one chat turn. Only valid from
// idle; the session passes through processing and returns to idle.
// The user message is logged before the request goes out, so a failed
// turn still reads [user, assistant-failure].
func (c *Controller) SendText(ctx context.Context, text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return fmt.Errorf("message cannot be empty")
	}

	c.mu.Lock()
	if err := c.transition("send text", models.StateIdle, models.StateProcessing); err != nil {
		c.mu.Unlock()
		return err
	}
	c.advisory = ""
	c.messages = append(c.messages, models.UserMessage(text))
	c.mu.Unlock()

	reply, err := c.client.SendText(ctx, text)
	return c.finishTurn(true, reply, err)
}

// finishTurn logs the outcome of one turn and returns the session to
// idle. userLogged is true for typed turns, whose user message was
// already appended; voice turns log the backend transcript here.
func (c *Controller) finishTurn(userLogged bool, reply *models.TurnReply, err error) error {
	if err != nil {
		c.mu.Lock()
		c.messages = append(c.messages, models.AssistantMessage(failureMessage(err)))
		c.state = models.StateIdle
		c.mu.Unlock()
		return err
	}

	assistant := models.AssistantMessage(reply.Reply)
	assistant.HadAudio = reply.HasAudio()

	c.mu.Lock()
	if !userLogged {
		user := models.UserMessage(reply.Transcript)
		user.Transcribed = true
		c.messages = append(c.messages, user)
	}
	c.messages = append(c.messages, assistant)
	c.mu.Unlock()

	// Playback happens after the exchange is logged. A blocked playback
	// is not a failed turn: the reply stays in the log and the user gets
	// an advisory with a manual replay path.
	if reply.HasAudio() && c.player != nil {
		if playErr := c.player.Play(reply.Audio); playErr != nil {
			c.mu.Lock()
			c.advisory = "Reply audio ready. Playback was blocked, trigger replay to hear it."
			c.mu.Unlock()
		}
	}

	c.mu.Lock()
	c.state = models.StateIdle
	c.mu.Unlock()
	return nil
}

// Replay retries playback of the last reply audio. Clears the advisory
// when playback starts.
func (c *Controller) Replay() error {
	c.mu.Lock()
	player := c.player
	c.mu.Unlock()

	if player == nil {
		return apierrors.NewPlaybackBlockedError("playback is disabled")
	}
	if err := player.Replay(); err != nil {
		return err
	}

	c.mu.Lock()
	c.advisory = ""
	c.mu.Unlock()
	return nil
}

// CancelRecording discards an in-flight recording without sending it.
// The capture buffer is dropped and nothing is logged.
func (c *Controller) CancelRecording() error {
	c.mu.Lock()
	if err := c.transition("cancel recording", models.StateRecording, models.StateProcessing); err != nil {
		c.mu.Unlock()
		return err
	}
	c.mu.Unlock()

	c.device.Stop()

	c.mu.Lock()
	c.capture = nil
	c.state = models.StateIdle
	c.mu.Unlock()
	return nil
}

// Close tears down the session: stops capture, releases playback, and
// closes the backend client
func (c *Controller) Close() {
	c.mu.Lock()
	state := c.state
	c.mu.Unlock()

	if state == models.StateRecording {
		c.device.Stop()
	}
	c.device.Close()

	if c.player != nil {
		c.player.Release()
	}
	c.client.Close()

	c.mu.Lock()
	c.state = models.StateIdle
	c.mu.Unlock()
}

// failureMessage renders an error as the single assistant message a
// failed turn leaves in the log
func failureMessage(err error) string {
	switch {
	case apierrors.IsDeviceError(err):
		return "Could not access the microphone. Check your input device and try again."
	case apierrors.IsNetworkError(err):
		return "Could not reach the voice backend. Is it running?"
	case apierrors.IsProtocolError(err):
		return "The voice backend sent a response I could not understand. Please try again."
	case apierrors.IsEncodingError(err):
		return "Could not encode the recording. Please try again."
	default:
		return "Something went wrong. Please try again."
	}
}
