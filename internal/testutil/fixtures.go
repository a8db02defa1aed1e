// Package testutil provides fixtures shared by the game package tests: classes,
// skill models and pre-placed characters.
package testutil

import (
	"github.com/cory-johannsen/textmoba/internal/game/character"
	"github.com/cory-johannsen/textmoba/internal/game/skill"
)

func fill(n, v int) []int {
	out := make([]int, n)
	for i := range out {
		out[i] = v
	}
	return out
}

// NewClass returns a class whose stats are the same at every level.
func NewClass(id string, typ character.Type, hp, mana, damage, rng int) *character.Class {
	return &character.Class{
		ID:         id,
		Name:       id,
		SortIndex:  character.DefaultSortIndex,
		Type:       typ,
		DefaultRow: character.Back,
		MaxHP:      fill(character.StatLevels, hp),
		MaxMana:    fill(character.StatLevels, mana),
		Damage:     fill(character.StatLevels, damage),
		Range:      fill(character.StatLevels, rng),
	}
}

// Hero returns a hero class with 100 hp, 50 mana, 10 damage and range rng.
func Hero(id string, rng int) *character.Class {
	return NewClass(id, character.Hero, 100, 50, 10, rng)
}

// Minion returns a redshirt class with 30 hp, 5 damage and range 1.
func Minion(id string) *character.Class {
	c := NewClass(id, character.Redshirt, 30, 0, 5, 1)
	c.DefaultRow = character.Front
	return c
}

// Tower returns a building class with 200 hp, 20 damage and range 3.
func Tower(id string) *character.Class {
	return NewClass(id, character.Building, 200, 0, 20, 3)
}

// NewSkill returns a skill model with identical values at both levels.
func NewSkill(id string, shape skill.Shape, rng, cooldown, cost int, effects ...skill.Applied) *skill.Model {
	m := &skill.Model{
		ID:        id,
		Name:      id,
		Shapes:    []skill.Shape{shape, shape},
		Ranges:    []int{rng, rng},
		Cooldowns: []int{cooldown, cooldown},
		ManaCosts: []int{cost, cost},
	}
	for _, e := range effects {
		m.Effects = append(m.Effects, skill.Effect{
			Kinds:  []skill.EffectKind{e.Kind, e.Kind},
			Powers: []int{e.Power, e.Power},
		})
	}
	return m
}

// Place spawns a character of class c into reg and stands it in row on node.
// It does not touch any graph occupancy; callers that need it attach separately.
func Place(reg *character.Registry, c *character.Class, team character.Team, row character.Row, node string) *character.Character {
	ch := reg.Spawn(c, team)
	ch.Row = row
	ch.Node = node
	return ch
}
