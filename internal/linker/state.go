package linker

// State is a step of a run.
type State int

const (
	StateStart State = iota
	StatePreconditionsChecked
	StateConflictsResolved
	StateEnvironmentRequested
	StateLinked
	StateSyncRequested
	StateDone
	StateAborted
)

func (s State) String() string {
	switch s {
	case StateStart:
		return "start"
	case StatePreconditionsChecked:
		return "preconditions-checked"
	case StateConflictsResolved:
		return "conflicts-resolved"
	case StateEnvironmentRequested:
		return "environment-requested"
	case StateLinked:
		return "linked"
	case StateSyncRequested:
		return "sync-requested"
	case StateDone:
		return "done"
	case StateAborted:
		return "aborted"
	default:
		return "unknown"
	}
}

// Terminal reports whether no further transition follows s.
func (s State) Terminal() bool {
	return s == StateDone || s == StateAborted
}
