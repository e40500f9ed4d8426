package moderation

import "time"

// ActionKind is the kind of punitive action the escalation policy picks.
type ActionKind int

const (
	ActionMute ActionKind = iota
	ActionKick
)

// Action is a punitive action with its duration. Duration is zero for a
// kick, which is permanent removal.
type Action struct {
	Kind     ActionKind
	Duration time.Duration
}

// NextAction maps the violation count recorded before the current violation
// to the punitive action. The count must not include the message being
// punished: the fifth toxic message is still a mute, the sixth is a kick.
func NextAction(priorViolations int) Action {
	switch priorViolations {
	case 0:
		return Action{Kind: ActionMute, Duration: 60 * time.Second}
	case 1:
		return Action{Kind: ActionMute, Duration: 300 * time.Second}
	case 2:
		return Action{Kind: ActionMute, Duration: 1800 * time.Second}
	case 3:
		return Action{Kind: ActionMute, Duration: 14400 * time.Second}
	case 4:
		return Action{Kind: ActionMute, Duration: 86400 * time.Second}
	default:
		return Action{Kind: ActionKick}
	}
}
