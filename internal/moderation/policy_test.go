package moderation

import (
	"testing"
	"time"
)

func TestNextActionEscalationTable(t *testing.T) {
	tests := []struct {
		name     string
		prior    int
		kind     ActionKind
		duration time.Duration
	}{
		{"first violation mutes for a minute", 0, ActionMute, 60 * time.Second},
		{"second violation mutes for five minutes", 1, ActionMute, 300 * time.Second},
		{"third violation mutes for half an hour", 2, ActionMute, 1800 * time.Second},
		{"fourth violation mutes for four hours", 3, ActionMute, 14400 * time.Second},
		{"fifth violation mutes for a day", 4, ActionMute, 86400 * time.Second},
		{"sixth violation kicks", 5, ActionKick, 0},
		{"further violations keep kicking", 6, ActionKick, 0},
		{"large counts keep kicking", 100, ActionKick, 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			action := NextAction(tt.prior)
			if action.Kind != tt.kind {
				t.Errorf("NextAction(%d).Kind = %v, want %v", tt.prior, action.Kind, tt.kind)
			}
			if action.Duration != tt.duration {
				t.Errorf("NextAction(%d).Duration = %v, want %v", tt.prior, action.Duration, tt.duration)
			}
		})
	}
}
