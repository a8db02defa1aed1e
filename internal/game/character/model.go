// Package character defines teams, lane rows, character classes, live characters,
// their learned skills and buffs, and the registry that owns them.
package character

import (
	"fmt"
	"strings"
)

// Team is the side a character fights for.
type Team int

const (
	Blue Team = iota
	Red
	Neutral
)

// Teams lists the two playable teams in lane order.
var Teams = []Team{Blue, Red}

// String returns the lower-case team name, which doubles as a path label.
func (t Team) String() string {
	switch t {
	case Blue:
		return "blue"
	case Red:
		return "red"
	default:
		return "neutral"
	}
}

// Enemy returns the opposing team. Neutral has no opponent and returns itself.
func (t Team) Enemy() Team {
	switch t {
	case Blue:
		return Red
	case Red:
		return Blue
	default:
		return Neutral
	}
}

// ParseTeam parses "blue", "red" or "neutral".
//
// Postcondition: Returns (team, true) for a known name, or (Neutral, false).
func ParseTeam(s string) (Team, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "blue":
		return Blue, true
	case "red":
		return Red, true
	case "neutral":
		return Neutral, true
	}
	return Neutral, false
}

// Row is the position of a character inside its team's half of a node.
type Row int

const (
	Back Row = iota
	Front
)

// String returns "back" or "front".
func (r Row) String() string {
	if r == Front {
		return "front"
	}
	return "back"
}

// ParseRow parses "front" or "back".
func ParseRow(s string) (Row, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "back":
		return Back, true
	case "front":
		return Front, true
	}
	return Back, false
}

// Type is the broad category of a class.
type Type int

const (
	Hero Type = iota
	Redshirt
	Building
)

// String returns the content-file spelling of the type.
func (t Type) String() string {
	switch t {
	case Hero:
		return "hero"
	case Redshirt:
		return "redshirt"
	default:
		return "building"
	}
}

// ParseType parses "hero", "redshirt" or "building".
func ParseType(s string) (Type, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "hero":
		return Hero, true
	case "redshirt":
		return Redshirt, true
	case "building":
		return Building, true
	}
	return Building, false
}

// Lane is the route a minion or AI hero follows when no team label applies.
type Lane int

const (
	Top Lane = iota
	Bot
)

// Lanes lists every lane in spawn order.
var Lanes = []Lane{Top, Bot}

// String returns the lane's path label.
func (l Lane) String() string {
	if l == Bot {
		return "bot"
	}
	return "top"
}

// ParseLane parses "top" or "bot".
func ParseLane(s string) (Lane, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "top":
		return Top, true
	case "bot":
		return Bot, true
	}
	return Top, false
}

// Lane slots on a node, from the blue base to the red base.
const (
	SlotBlueBack = iota
	SlotBlueFront
	SlotRedFront
	SlotRedBack
	SlotCount
)

// PlaceIndex returns the lane slot of (team, row): BLUE·BACK=0, BLUE·FRONT=1,
// RED·FRONT=2, RED·BACK=3. Neutral characters are off the lane and get -1.
func PlaceIndex(team Team, row Row) int {
	switch team {
	case Blue:
		return int(row)
	case Red:
		return SlotRedBack - int(row)
	default:
		return -1
	}
}

// SlotPlace is the inverse of PlaceIndex.
//
// Precondition: 0 <= slot < SlotCount.
func SlotPlace(slot int) (Team, Row) {
	if slot < 0 || slot >= SlotCount {
		panic(fmt.Sprintf("character: lane slot %d out of range", slot))
	}
	team := Team(slot / 2)
	r := slot & 1
	if team == Red {
		r = 1 - r
	}
	return team, Row(r)
}
