package models

import "testing"

func TestSessionStateString(t *testing.T) {
	tests := []struct {
		state SessionState
		want  string
	}{
		{StateIdle, "idle"},
		{StateRecording, "recording"},
		{StateProcessing, "processing"},
		{SessionState(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.state.String(); got != tt.want {
			t.Errorf("String(%d) = %q, want %q", tt.state, got, tt.want)
		}
	}
}

func TestCanTransition(t *testing.T) {
	tests := []struct {
		name string
		from SessionState
		to   SessionState
		want bool
	}{
		{"idle to recording", StateIdle, StateRecording, true},
		{"idle to processing", StateIdle, StateProcessing, true},
		{"recording to processing", StateRecording, StateProcessing, true},
		{"processing to idle", StateProcessing, StateIdle, true},
		{"no processing to recording", StateProcessing, StateRecording, false},
		{"no recording to idle", StateRecording, StateIdle, false},
		{"no idle to idle", StateIdle, StateIdle, false},
		{"no recording to recording", StateRecording, StateRecording, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanTransition(tt.from, tt.to); got != tt.want {
				t.Errorf("CanTransition(%v, %v) = %v, want %v", tt.from, tt.to, got, tt.want)
			}
		})
	}
}
