package api

import (
	"context"

	"github.com/diogo/voicechat/internal/models"
)

// MockChatClient is a mock implementation of ChatClient for testing
type MockChatClient struct {
	// Mock return values
	Reply       *models.TurnReply
	Err         error
	EndpointVal string

	// Call counters/recorders
	SendAudioCalled int
	SendTextCalled  int
	LastAudio       []byte
	LastMessage     string
	CloseCalled     bool
}

// Ensure MockChatClient implements ChatClient
var _ ChatClient = (*MockChatClient)(nil)

func (m *MockChatClient) SendAudio(ctx context.Context, wav []byte) (*models.TurnReply, error) {
	m.SendAudioCalled++
	m.LastAudio = wav
	return m.Reply, m.Err
}

func (m *MockChatClient) SendText(ctx context.Context, message string) (*models.TurnReply, error) {
	m.SendTextCalled++
	m.LastMessage = message
	return m.Reply, m.Err
}

func (m *MockChatClient) Endpoint() string {
	if m.EndpointVal != "" {
		return m.EndpointVal
	}
	return models.DefaultEndpoint
}

func (m *MockChatClient) Close() {
	m.CloseCalled = true
}
