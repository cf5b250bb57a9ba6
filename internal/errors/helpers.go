package errors

import "errors"

// IsDeviceError checks if an error is a capture device failure
func IsDeviceError(err error) bool {
	var de *DeviceError
	return errors.As(err, &de)
}

// IsEncodingError checks if an error is an audio encoding failure
func IsEncodingError(err error) bool {
	var ee *EncodingError
	return errors.As(err, &ee)
}

// IsEmptyCapture checks if an error signals an empty capture buffer
func IsEmptyCapture(err error) bool {
	var ec *EmptyCaptureError
	return errors.As(err, &ec)
}

// IsNetworkError checks if an error is a transport or HTTP status failure
func IsNetworkError(err error) bool {
	var ne *NetworkError
	return errors.As(err, &ne)
}

// IsProtocolError checks if an error is a contract violation by the backend
func IsProtocolError(err error) bool {
	var pe *ProtocolError
	return errors.As(err, &pe)
}

// IsPlaybackBlocked checks if an error is the recoverable playback advisory
func IsPlaybackBlocked(err error) bool {
	var pb *PlaybackBlockedError
	return errors.As(err, &pb)
}

// GetHTTPStatus extracts the HTTP status code from an error, or 0
func GetHTTPStatus(err error) int {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.StatusCode
	}
	return 0
}

// GetEndpoint extracts the endpoint from an error, or ""
func GetEndpoint(err error) string {
	var ne *NetworkError
	if errors.As(err, &ne) {
		return ne.Endpoint
	}
	return ""
}

// GetRemoteStatus extracts the backend-reported status from an error, or ""
func GetRemoteStatus(err error) string {
	var pe *ProtocolError
	if errors.As(err, &pe) {
		return pe.RemoteStatus
	}
	return ""
}
