// Package errors provides custom error types for the voicechat client.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	ErrDeviceUnavailable = errors.New("capture device unavailable")
	ErrEmptyCapture      = errors.New("nothing captured")
	ErrInvalidResponse   = errors.New("invalid response format")
	ErrPlaybackBlocked   = errors.New("playback blocked")
	ErrInvalidTransition = errors.New("invalid session state transition")
)

// DeviceError represents a capture device failure (permission denied,
// no input device, stream open failure)
type DeviceError struct {
	Message string
	Err     error
}

func (e *DeviceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("capture device error: %s: %v", e.Message, e.Err)
	}
	return fmt.Sprintf("capture device error: %s", e.Message)
}

func (e *DeviceError) Unwrap() error { return e.Err }

// Is allows comparison with sentinel errors
func (e *DeviceError) Is(target error) bool {
	if target == ErrDeviceUnavailable {
		return true
	}
	_, ok := target.(*DeviceError)
	return ok
}

// NewDeviceError creates a new DeviceError
func NewDeviceError(message string, err error) *DeviceError {
	return &DeviceError{Message: message, Err: err}
}

// EncodingError represents a failure converting captured audio to the
// canonical wire format
type EncodingError struct {
	Message string
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encoding error: %s", e.Message)
}

// NewEncodingError creates a new EncodingError
func NewEncodingError(message string) *EncodingError {
	return &EncodingError{Message: message}
}

// EmptyCaptureError signals that a send was attempted with no captured audio
type EmptyCaptureError struct{}

func (e *EmptyCaptureError) Error() string {
	return "no audio recorded"
}

// Is allows comparison with the ErrEmptyCapture sentinel
func (e *EmptyCaptureError) Is(target error) bool {
	if target == ErrEmptyCapture {
		return true
	}
	_, ok := target.(*EmptyCaptureError)
	return ok
}

// NewEmptyCaptureError creates a new EmptyCaptureError
func NewEmptyCaptureError() *EmptyCaptureError {
	return &EmptyCaptureError{}
}

// NetworkError represents a transport failure or a non-success HTTP status
type NetworkError struct {
	StatusCode int // 0 when the request never got a response
	Endpoint   string
	Message    string
	Err        error
}

func (e *NetworkError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("network error [%d] at %s: %s", e.StatusCode, e.Endpoint, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("network error at %s: %s: %v", e.Endpoint, e.Message, e.Err)
	}
	return fmt.Sprintf("network error at %s: %s", e.Endpoint, e.Message)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// NewNetworkError creates a NetworkError for a transport-level failure
func NewNetworkError(endpoint, message string, err error) *NetworkError {
	return &NetworkError{Endpoint: endpoint, Message: message, Err: err}
}

// NewHTTPStatusError creates a NetworkError for a non-2xx HTTP response
func NewHTTPStatusError(statusCode int, endpoint, message string) *NetworkError {
	return &NetworkError{StatusCode: statusCode, Endpoint: endpoint, Message: message}
}

// ProtocolError represents a response the backend delivered but that fails
// the contract: a non-success status field, missing required fields, or a
// malformed audio payload. Validation fails closed on anything unexpected.
type ProtocolError struct {
	RemoteStatus string // the backend-reported status, if any
	Message      string
}

func (e *ProtocolError) Error() string {
	if e.RemoteStatus != "" {
		return fmt.Sprintf("protocol error (status %q): %s", e.RemoteStatus, e.Message)
	}
	return fmt.Sprintf("protocol error: %s", e.Message)
}

// Is allows comparison with the ErrInvalidResponse sentinel
func (e *ProtocolError) Is(target error) bool {
	if target == ErrInvalidResponse {
		return true
	}
	_, ok := target.(*ProtocolError)
	return ok
}

// NewProtocolError creates a new ProtocolError
func NewProtocolError(remoteStatus, message string) *ProtocolError {
	return &ProtocolError{RemoteStatus: remoteStatus, Message: message}
}

// PlaybackBlockedError signals that the host refused or cannot perform
// autonomous audio playback. This is recoverable: the decoded audio is
// retained and the user can replay it manually.
type PlaybackBlockedError struct {
	Message string
}

func (e *PlaybackBlockedError) Error() string {
	if e.Message == "" {
		return "playback blocked"
	}
	return fmt.Sprintf("playback blocked: %s", e.Message)
}

// Is allows comparison with the ErrPlaybackBlocked sentinel
func (e *PlaybackBlockedError) Is(target error) bool {
	if target == ErrPlaybackBlocked {
		return true
	}
	_, ok := target.(*PlaybackBlockedError)
	return ok
}

// NewPlaybackBlockedError creates a new PlaybackBlockedError
func NewPlaybackBlockedError(message string) *PlaybackBlockedError {
	return &PlaybackBlockedError{Message: message}
}

// TransitionError reports a session operation invoked in the wrong state.
// These indicate a caller bug, not a runtime condition to recover from.
type TransitionError struct {
	Op       string
	From, To string
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("%s: illegal transition %s -> %s", e.Op, e.From, e.To)
}

// Is allows comparison with the ErrInvalidTransition sentinel
func (e *TransitionError) Is(target error) bool {
	if target == ErrInvalidTransition {
		return true
	}
	_, ok := target.(*TransitionError)
	return ok
}

// NewTransitionError creates a new TransitionError
func NewTransitionError(op, from, to string) *TransitionError {
	return &TransitionError{Op: op, From: from, To: to}
}
