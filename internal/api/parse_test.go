package api

import (
	"bytes"
	"testing"

	apierrors "github.com/diogo/voicechat/internal/errors"
)

func TestParseTurnReply(t *testing.T) {
	tests := []struct {
		name           string
		body           string
		wantTranscript string
		wantReply      string
		wantAudio      []byte
		wantErr        bool
		wantStatus     string
	}{
		{
			name:           "full response",
			body:           `{"status":"success","transcript":"hello","response_text":"hi there","audio":"48656c6c6f"}`,
			wantTranscript: "hello",
			wantReply:      "hi there",
			wantAudio:      []byte("Hello"),
		},
		{
			name:      "no audio",
			body:      `{"status":"success","transcript":"hello","response_text":"hi there"}`,
			wantReply: "hi there",
		},
		{
			name:      "empty audio string",
			body:      `{"status":"success","response_text":"hi"}`,
			wantReply: "hi",
		},
		{
			name:      "legacy response field",
			body:      `{"status":"success","response":"from the old field"}`,
			wantReply: "from the old field",
		},
		{
			name:      "response_text preferred over response",
			body:      `{"status":"success","response_text":"new","response":"old"}`,
			wantReply: "new",
		},
		{
			name:    "not json",
			body:    `<html>502 Bad Gateway</html>`,
			wantErr: true,
		},
		{
			name:    "json but not an object",
			body:    `["success"]`,
			wantErr: true,
		},
		{
			name:    "missing status",
			body:    `{"response_text":"hi"}`,
			wantErr: true,
		},
		{
			name:       "error status",
			body:       `{"status":"error","message":"recognizer unavailable"}`,
			wantErr:    true,
			wantStatus: "error",
		},
		{
			name:       "error status without message",
			body:       `{"status":"failed"}`,
			wantErr:    true,
			wantStatus: "failed",
		},
		{
			name:    "missing reply text",
			body:    `{"status":"success","transcript":"hello"}`,
			wantErr: true,
		},
		{
			name:    "reply text not a string",
			body:    `{"status":"success","response_text":42}`,
			wantErr: true,
		},
		{
			name:    "odd length audio",
			body:    `{"status":"success","response_text":"hi","audio":"48656"}`,
			wantErr: true,
		},
		{
			name:    "non-hex audio",
			body:    `{"status":"success","response_text":"hi","audio":"zzzz"}`,
			wantErr: true,
		},
		{
			name:    "numeric audio field",
			body:    `{"status":"success","response_text":"hi","audio":1234}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			reply, err := parseTurnReply([]byte(tt.body))
			if tt.wantErr {
				if err == nil {
					t.Fatal("expected error, got nil")
				}
				if !apierrors.IsProtocolError(err) {
					t.Errorf("expected ProtocolError, got %T: %v", err, err)
				}
				if tt.wantStatus != "" {
					if got := apierrors.GetRemoteStatus(err); got != tt.wantStatus {
						t.Errorf("remote status %q, want %q", got, tt.wantStatus)
					}
				}
				return
			}
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if reply.Transcript != tt.wantTranscript {
				t.Errorf("transcript %q, want %q", reply.Transcript, tt.wantTranscript)
			}
			if reply.Reply != tt.wantReply {
				t.Errorf("reply %q, want %q", reply.Reply, tt.wantReply)
			}
			if !bytes.Equal(reply.Audio, tt.wantAudio) {
				t.Errorf("audio %v, want %v", reply.Audio, tt.wantAudio)
			}
			if reply.HasAudio() != (len(tt.wantAudio) > 0) {
				t.Errorf("HasAudio %v, want %v", reply.HasAudio(), len(tt.wantAudio) > 0)
			}
		})
	}
}
