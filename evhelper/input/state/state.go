package state

// State represents the press state of a tracked element
type State int

const (
	Released State = iota // Idle, not down
	Pressed               // Went down during the current update cycle
	Held                  // Down since an earlier update cycle
)

func (s State) String() string {
	switch s {
	case Released:
		return "released"
	case Pressed:
		return "pressed"
	case Held:
		return "held"
	default:
		return "unknown"
	}
}

// Valid reports whether s is one of the defined states.
func (s State) Valid() bool {
	return s >= Released && s <= Held
}

// Down reports whether the element is pressed or held.
func (s State) Down() bool {
	return s == Pressed || s == Held
}
