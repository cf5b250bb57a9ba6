package commands

import (
	"strings"
	"testing"

	apierrors "github.com/diogo/voicechat/internal/errors"
)

func TestFormatErrorMessage_Nil(t *testing.T) {
	if got := formatErrorMessage(nil, "ctx"); got != "" {
		t.Fatalf("expected empty for nil error, got %s", got)
	}
}

func TestFormatErrorMessage_HTTPStatus(t *testing.T) {
	e := apierrors.NewHTTPStatusError(503, "http://127.0.0.1:8000/api/chat", "service unavailable")
	out := formatErrorMessage(e, "Request failed")
	if out == "" {
		t.Fatalf("expected non-empty message")
	}
	if !strings.Contains(out, "HTTP Status") || !strings.Contains(out, "Endpoint") {
		t.Fatalf("expected HTTP Status and Endpoint in message, got: %s", out)
	}
	if !strings.Contains(out, "Hint") {
		t.Fatalf("expected a hint for network errors, got: %s", out)
	}
}

func TestFormatErrorMessage_OtherErrors(t *testing.T) {
	proto := apierrors.NewProtocolError("error", "backend reported failure")
	if out := formatErrorMessage(proto, "Request failed"); !strings.Contains(out, "Backend Status") {
		t.Fatalf("expected backend status for protocol error, got: %s", out)
	}

	device := apierrors.NewDeviceError("no input device", nil)
	if out := formatErrorMessage(device, "Recording failed"); !strings.Contains(out, "microphone") {
		t.Fatalf("expected microphone hint for device error, got: %s", out)
	}

	empty := apierrors.NewEmptyCaptureError()
	if out := formatErrorMessage(empty, "Recording failed"); !strings.Contains(out, "Hint") {
		t.Fatalf("expected hint for empty capture, got: %s", out)
	}
}
