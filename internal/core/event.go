package core

// Event is a notable thing that happened during a tick.
// Games report events; the platform turns them into sound and log lines.
type Event int

const (
	EventNone         Event = iota
	EventMatch              // One scored 3-in-a-row
	EventSwapRejected       // A swap was attempted and reverted
	EventCascade            // Refilled tiles produced further matches
	EventGameOver           // The game just ended
)

// String returns a human-readable name for the event.
func (e Event) String() string {
	switch e {
	case EventNone:
		return "none"
	case EventMatch:
		return "match"
	case EventSwapRejected:
		return "swap_rejected"
	case EventCascade:
		return "cascade"
	case EventGameOver:
		return "game_over"
	default:
		return "unknown"
	}
}

// CountEvents returns how many times e occurs in events.
func CountEvents(events []Event, e Event) int {
	n := 0
	for _, ev := range events {
		if ev == e {
			n++
		}
	}
	return n
}
