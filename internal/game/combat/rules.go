package combat

import "github.com/cory-johannsen/textmoba/internal/game/character"

// Rules are the match tunables, assembled once at content load.
type Rules struct {
	// FirstWaveTime is the number of turns before the first minion wave.
	FirstWaveTime int
	// WaveTime is the number of turns between later waves.
	WaveTime int
	// RedshirtsPerLane is the wave size per team and lane.
	RedshirtsPerLane int

	// HeroNextLevel[l] is the xp a hero needs to leave level l. Zero, or a level
	// past the end of the table, means l is the last level.
	HeroNextLevel []int
	// XP granted for killing a character, indexed by the victim's level.
	HeroXPWorth     []int
	RedshirtXPWorth []int
	TowerXPWorth    []int

	// MinionClass is the class spawned for each team's waves.
	MinionClass map[character.Team]string
	// FonxusClass and TowerClass are spawned on nodes carrying the matching marker.
	FonxusClass string
	TowerClass  string

	// PlayerInTurnLoop applies passive skills, regen and buffs to the player in
	// the per-character pass. Cooldowns and AI never run there for the player.
	PlayerInTurnLoop bool
	// LevelUpTeams lists the teams whose heroes gain levels from xp.
	LevelUpTeams []character.Team
}

// levelsUp reports whether heroes of team gain levels.
func (r Rules) levelsUp(team character.Team) bool {
	for _, t := range r.LevelUpTeams {
		if t == team {
			return true
		}
	}
	return false
}

// tableAt returns table[level], or 0 when level is outside the table.
func tableAt(table []int, level int) int {
	if level < 0 || level >= len(table) {
		return 0
	}
	return table[level]
}

// nextLevel returns the xp c needs to leave its level, or 0 if c cannot level.
func (r Rules) nextLevel(c *character.Character) int {
	if c.Type() != character.Hero {
		return 0
	}
	return tableAt(r.HeroNextLevel, c.Level)
}

// xpWorth returns the xp granted for killing c.
func (r Rules) xpWorth(c *character.Character) int {
	switch c.Type() {
	case character.Hero:
		return tableAt(r.HeroXPWorth, c.Level)
	case character.Redshirt:
		return tableAt(r.RedshirtXPWorth, c.Level)
	case character.Building:
		return tableAt(r.TowerXPWorth, c.Level)
	}
	return 0
}
