package combat

import "fmt"

// EventKind classifies what happened.
type EventKind int

const (
	EventSpawn EventKind = iota
	EventLeave
	EventEnter
	EventPlace
	EventAttack
	EventSkill
	EventDamage
	EventHeal
	EventKill
	EventXP
	EventLevelUp
	EventWave
	EventTurnEnd
)

var eventKindNames = [...]string{
	EventSpawn:   "spawn",
	EventLeave:   "leave",
	EventEnter:   "enter",
	EventPlace:   "place",
	EventAttack:  "attack",
	EventSkill:   "skill",
	EventDamage:  "damage",
	EventHeal:    "heal",
	EventKill:    "kill",
	EventXP:      "xp",
	EventLevelUp: "level_up",
	EventWave:    "wave",
	EventTurnEnd: "turn_end",
}

// String returns the snake-case kind name.
func (k EventKind) String() string {
	if k < 0 || int(k) >= len(eventKindNames) {
		return fmt.Sprintf("event(%d)", int(k))
	}
	return eventKindNames[k]
}

// Event records one thing that happened during a match.
type Event struct {
	Turn int
	Kind EventKind
	// Node is where it happened, or "" for match-wide events.
	Node string
	// Global events concern the player wherever they stand.
	Global    bool
	Narrative string
}

// Listener receives events synchronously, in the order they happen.
type Listener func(Event)

// VisibleFrom reports whether a viewer standing on nodeID witnesses ev.
func (ev Event) VisibleFrom(nodeID string) bool {
	return ev.Global || (ev.Node != "" && ev.Node == nodeID)
}

func (e *Engine) emit(kind EventKind, node string, global bool, format string, args ...any) {
	ev := Event{
		Turn:      e.turn,
		Kind:      kind,
		Node:      node,
		Global:    global,
		Narrative: fmt.Sprintf(format, args...),
	}
	for _, l := range e.listeners {
		l(ev)
	}
}
