package workflows

// StateMachine enforces status transitions for a record lifecycle.
// Transitions are forward-only; there is no way to register a cycle breaker,
// callers decide what the map contains.
type StateMachine struct {
	allowedTransitions map[string][]string
}

// NewStateMachine creates a state machine from a map of allowed transitions
func NewStateMachine(transitions map[string][]string) *StateMachine {
	return &StateMachine{allowedTransitions: transitions}
}

// CanTransition checks if a status transition is allowed
func (sm *StateMachine) CanTransition(from, to string) bool {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return false
	}
	for _, allowedTo := range allowed {
		if allowedTo == to {
			return true
		}
	}
	return false
}

// GetAllowedTransitions returns the allowed next statuses for a given status
func (sm *StateMachine) GetAllowedTransitions(from string) []string {
	allowed, exists := sm.allowedTransitions[from]
	if !exists {
		return []string{}
	}
	return allowed
}

// IsTerminal reports whether a status has no outgoing transitions
func (sm *StateMachine) IsTerminal(status string) bool {
	return len(sm.allowedTransitions[status]) == 0
}
