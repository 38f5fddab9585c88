package repair

import "fmt"

// Mode selects how a broken pod is removed.
type Mode string

const (
	// ModeDelete deletes the pod with a zero grace period.
	ModeDelete Mode = "delete"

	// ModeEvict evicts the pod through the eviction API, honoring disruption budgets.
	ModeEvict Mode = "evict"
)

// ParseMode validates a configured remediation mode.
func ParseMode(s string) (Mode, error) {
	switch Mode(s) {
	case ModeDelete, ModeEvict:
		return Mode(s), nil
	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownMode, s)
	}
}

// Action is the event action published after a successful removal.
func (m Mode) Action() string {
	if m == ModeEvict {
		return "Evicting"
	}

	return "Deleting"
}

// ReportingController is the controller name that events are reported under.
func (m Mode) ReportingController() string {
	if m == ModeEvict {
		return "linkerd-reinitialize-pods"
	}

	return "linkerd-cni-repair-controller"
}

// Note is the human readable explanation attached to published events.
func (m Mode) Note() string {
	if m == ModeEvict {
		return "Evicting pod to create a new one with proper CNI config"
	}

	return "Deleting pod to create a new one with proper CNI config"
}
