package command

import (
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"pgregory.net/rapid"

	"github.com/cory-johannsen/textmoba/internal/game/character"
)

func TestParse_Empty(t *testing.T) {
	result := Parse("")
	assert.Equal(t, "", result.Command)
	assert.Nil(t, result.Args)
}

func TestParse_SingleWord(t *testing.T) {
	result := Parse("look")
	assert.Equal(t, "look", result.Command)
	assert.Nil(t, result.Args)
	assert.Equal(t, "", result.RawArgs)
}

func TestParse_Lowercase(t *testing.T) {
	result := Parse("ATTACK 2")
	assert.Equal(t, "attack", result.Command)
	assert.Equal(t, []string{"2"}, result.Args)
}

func TestParse_ExtraWhitespace(t *testing.T) {
	result := Parse("  use   Bomb \t front  ")
	assert.Equal(t, "use", result.Command)
	assert.Equal(t, []string{"Bomb", "front"}, result.Args)
	assert.Equal(t, "Bomb \t front", result.RawArgs)
}

func TestParse_TabSeparated(t *testing.T) {
	result := Parse("go\tred")
	assert.Equal(t, "go", result.Command)
	assert.Equal(t, []string{"red"}, result.Args)
}

func TestParseIndex(t *testing.T) {
	tests := []struct {
		in   string
		want IndexResult
	}{
		{"0", IndexResult{Value: 0, OK: true}},
		{"12", IndexResult{Value: 12, OK: true}},
		{"-1", IndexResult{}},
		{"two", IndexResult{}},
		{"3x", IndexResult{}},
		{"", IndexResult{}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ParseIndex(tt.in), "input %q", tt.in)
	}
}

func TestParseRow(t *testing.T) {
	row, ok := ParseRow("FRONT")
	assert.True(t, ok)
	assert.Equal(t, character.Front, row)
	_, ok = ParseRow("middle")
	assert.False(t, ok)
}

func TestPropertyParseIndexRoundTrips(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		n := rapid.IntRange(0, 1<<20).Draw(t, "n")
		got := ParseIndex(strconv.Itoa(n))
		if !got.OK || got.Value != n {
			t.Fatalf("ParseIndex(%d) = %+v", n, got)
		}
	})
}

func TestPropertyParseAlwaysLowercasesCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[A-Za-z]{1,20}`).Draw(t, "word")
		result := Parse(word)
		for _, c := range result.Command {
			if c >= 'A' && c <= 'Z' {
				t.Fatalf("command %q contains uppercase char in Parse result %q", word, result.Command)
			}
		}
	})
}

func TestPropertyParseNonEmptyInputHasCommand(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		word := rapid.StringMatching(`[a-z]{1,10}`).Draw(t, "word")
		result := Parse(word)
		if result.Command == "" {
			t.Fatalf("non-empty input %q produced empty command", word)
		}
	})
}
