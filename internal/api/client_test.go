package api

import (
	"testing"
	"time"

	"github.com/diogo/voicechat/internal/models"
)

func TestNewClientDefaults(t *testing.T) {
	client := newTestClient(t, NewMockHttpClient(nil, 200))

	if client.Endpoint() != models.DefaultEndpoint {
		t.Errorf("endpoint %q, want %q", client.Endpoint(), models.DefaultEndpoint)
	}
	if client.Timeout() != DefaultTimeout {
		t.Errorf("timeout %v, want %v", client.Timeout(), DefaultTimeout)
	}
	if client.IsClosed() {
		t.Error("new client should not be closed")
	}
}

func TestNewClientOptions(t *testing.T) {
	client, err := NewClient(
		WithHTTPClient(NewMockHttpClient(nil, 200)),
		WithEndpoint("http://localhost:9999/api/chat"),
		WithTimeout(30*time.Second),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if client.Endpoint() != "http://localhost:9999/api/chat" {
		t.Errorf("endpoint %q not applied", client.Endpoint())
	}
	if client.Timeout() != 30*time.Second {
		t.Errorf("timeout %v not applied", client.Timeout())
	}
}

func TestNewClientIgnoresEmptyOverrides(t *testing.T) {
	client, err := NewClient(
		WithHTTPClient(NewMockHttpClient(nil, 200)),
		WithEndpoint(""),
		WithTimeout(0),
	)
	if err != nil {
		t.Fatalf("failed to create client: %v", err)
	}

	if client.Endpoint() != models.DefaultEndpoint {
		t.Errorf("empty endpoint should keep the default, got %q", client.Endpoint())
	}
	if client.Timeout() != DefaultTimeout {
		t.Errorf("zero timeout should keep the default, got %v", client.Timeout())
	}
}

func TestClientCloseIdempotent(t *testing.T) {
	client := newTestClient(t, NewMockHttpClient(nil, 200))
	client.Close()
	client.Close()
	if !client.IsClosed() {
		t.Error("client should report closed")
	}
}
