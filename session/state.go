package session

// State is a node of the session state machine.
type State int

const (
	StatePickFile State = iota
	StateReady
	StateExtracting
	StateRotating
	StateDeleting
	StateMerging
	StateSplitting
	StateExit
)

func (s State) String() string {
	switch s {
	case StatePickFile:
		return "PickFile"
	case StateReady:
		return "Ready"
	case StateExtracting:
		return "Extracting"
	case StateRotating:
		return "Rotating"
	case StateDeleting:
		return "Deleting"
	case StateMerging:
		return "Merging"
	case StateSplitting:
		return "Splitting"
	case StateExit:
		return "Exit"
	default:
		return "Unknown"
	}
}

// Event drives a transition. Menu choices typed at Ready are events too.
type Event string

const (
	EventOpened     Event = "opened"
	EventOpenFailed Event = "open-failed"
	EventCancelled  Event = "cancelled"
	EventDone       Event = "done"
	EventFailed     Event = "failed"

	EventExtract  Event = "1"
	EventRotate   Event = "2"
	EventDelete   Event = "3"
	EventMerge    Event = "4"
	EventSplit    Event = "5"
	EventPickFile Event = "6"
	EventQuit     Event = "0"
)

type transition struct {
	from State
	on   Event
}

var transitions = map[transition]State{
	{StatePickFile, EventOpened}:     StateReady,
	{StatePickFile, EventOpenFailed}: StatePickFile,
	{StatePickFile, EventCancelled}:  StateExit,

	{StateReady, EventExtract}:  StateExtracting,
	{StateReady, EventRotate}:   StateRotating,
	{StateReady, EventDelete}:   StateDeleting,
	{StateReady, EventMerge}:    StateMerging,
	{StateReady, EventSplit}:    StateSplitting,
	{StateReady, EventPickFile}: StatePickFile,
	{StateReady, EventQuit}:     StateExit,

	{StateExtracting, EventDone}:   StateReady,
	{StateExtracting, EventFailed}: StateReady,
	{StateRotating, EventDone}:     StateReady,
	{StateRotating, EventFailed}:   StateReady,
	{StateDeleting, EventDone}:     StateReady,
	{StateDeleting, EventFailed}:   StateReady,
	{StateMerging, EventDone}:      StateReady,
	{StateMerging, EventFailed}:    StateReady,
	{StateSplitting, EventDone}:    StateReady,
	{StateSplitting, EventFailed}:  StateReady,
}

// Next returns the state reached from `from` on event `on`. Events with no
// transition leave the state unchanged, so unknown menu input re-prompts.
func Next(from State, on Event) State {
	if to, ok := transitions[transition{from, on}]; ok {
		return to
	}
	return from
}

// holdsDocument reports whether the source document stays open in s.
func (s State) holdsDocument() bool {
	return s != StatePickFile && s != StateExit
}
