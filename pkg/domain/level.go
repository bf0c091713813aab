package domain

import "fmt"

// Level identifies one tier of the content hierarchy.
// Levels nest in a fixed order under the form: card > set > group > field > input.
type Level string

const (
	LevelCard  Level = "card"
	LevelSet   Level = "set"
	LevelGroup Level = "group"
	LevelField Level = "field"
	LevelInput Level = "input"
)

// Levels lists all hierarchy levels, broadest first.
var Levels = []Level{LevelCard, LevelSet, LevelGroup, LevelField, LevelInput}

// depth is the position of each level in Levels (card = 0).
var depth = map[Level]int{
	LevelCard:  0,
	LevelSet:   1,
	LevelGroup: 2,
	LevelField: 3,
	LevelInput: 4,
}

// Depth returns the nesting depth of the level (card = 0, input = 4).
func (l Level) Depth() int {
	return depth[l]
}

// Broader returns the next level up the hierarchy, or false for card.
func (l Level) Broader() (Level, bool) {
	d := depth[l]
	if d == 0 {
		return "", false
	}
	return Levels[d-1], true
}

// Narrower returns the next level down the hierarchy, or false for input.
func (l Level) Narrower() (Level, bool) {
	d := depth[l]
	if d == len(Levels)-1 {
		return "", false
	}
	return Levels[d+1], true
}

// Behavior is the configured movement granularity: the level at which a
// single next/prev step operates.
type Behavior string

const (
	ByField Behavior = "field"
	ByGroup Behavior = "group"
	BySet   Behavior = "set"
	ByCard  Behavior = "card"
)

// ParseBehavior validates a raw granularity value from the form definition.
func ParseBehavior(raw string) (Behavior, error) {
	switch Behavior(raw) {
	case ByField, ByGroup, BySet, ByCard:
		return Behavior(raw), nil
	case "":
		return ByField, nil
	}
	return "", fmt.Errorf("invalid behavior %q (expected field, group, set or card)", raw)
}

// Level returns the hierarchy level a behavior moves at.
func (b Behavior) Level() Level {
	switch b {
	case ByGroup:
		return LevelGroup
	case BySet:
		return LevelSet
	case ByCard:
		return LevelCard
	default:
		return LevelField
	}
}

// firstChildOnly is the activation restriction table keyed by behavior and
// level. A restricted level activates only the first child of an active
// parent; an unrestricted level activates all of them.
var firstChildOnly = map[Behavior]map[Level]bool{
	ByField: {LevelCard: true, LevelSet: true, LevelGroup: true},
	ByGroup: {LevelCard: true, LevelSet: true},
	BySet:   {LevelCard: true},
	ByCard:  {LevelCard: true},
}

// FirstChildOnly reports whether activation at the given level is restricted
// to the first child of an active parent under the given behavior.
func FirstChildOnly(b Behavior, l Level) bool {
	return firstChildOnly[b][l]
}
