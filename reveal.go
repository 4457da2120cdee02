package chatmd

// RevealPhase names the four reachable combinations of RevealState.
type RevealPhase int

const (
	RevealExpanded      RevealPhase = iota // Initial: reasoning visible while streaming.
	RevealCollapsedAuto                    // Collapsed by the close marker.
	RevealCollapsedUser                    // Collapsed by the user before the close marker.
	RevealExpandedUser                     // Re-expanded by the user after auto-collapse.
)

func (p RevealPhase) String() string {
	switch p {
	case RevealExpanded:
		return "expanded"
	case RevealCollapsedAuto:
		return "collapsed_auto"
	case RevealCollapsedUser:
		return "collapsed_user"
	case RevealExpandedUser:
		return "expanded_user"
	default:
		return "unknown"
	}
}

// RevealState governs whether a message's reasoning segment is shown.
// It belongs to one rendering instance and changes only through Transition.
type RevealState struct {
	Expanded         bool
	HasAutoCollapsed bool
}

// NewRevealState returns the state of a message that has just begun
// rendering.
func NewRevealState() RevealState {
	return RevealState{Expanded: true}
}

// Phase returns the named phase for the current flags.
func (s RevealState) Phase() RevealPhase {
	switch {
	case s.Expanded && !s.HasAutoCollapsed:
		return RevealExpanded
	case !s.Expanded && s.HasAutoCollapsed:
		return RevealCollapsedAuto
	case !s.Expanded:
		return RevealCollapsedUser
	default:
		return RevealExpandedUser
	}
}

// RevealEvent is a sealed interface for inputs to the reveal state machine.
type RevealEvent interface {
	revealEvent()
}

// RevealObserved reports the reasoning state of the latest buffer snapshot.
type RevealObserved struct {
	State ReasoningState
}

func (RevealObserved) revealEvent() {}

// RevealToggled is an explicit user expand/collapse action.
type RevealToggled struct{}

func (RevealToggled) revealEvent() {}

var (
	_ RevealEvent = RevealObserved{}
	_ RevealEvent = RevealToggled{}
)

// Transition returns the state that follows s on ev.
//
// The first observation of a closed reasoning segment collapses it and
// records that the auto-collapse has fired; it never fires again for the
// same state lineage. A toggle flips Expanded and leaves HasAutoCollapsed
// alone. All other observations leave s unchanged.
func Transition(s RevealState, ev RevealEvent) RevealState {
	switch e := ev.(type) {
	case RevealObserved:
		if e.State == ReasoningClosed && !s.HasAutoCollapsed {
			s.Expanded = false
			s.HasAutoCollapsed = true
		}
	case RevealToggled:
		s.Expanded = !s.Expanded
	}
	return s
}

// Observe is shorthand for Transition(s, RevealObserved{State: state}).
func (s RevealState) Observe(state ReasoningState) RevealState {
	return Transition(s, RevealObserved{State: state})
}

// Toggle is shorthand for Transition(s, RevealToggled{}).
func (s RevealState) Toggle() RevealState {
	return Transition(s, RevealToggled{})
}
