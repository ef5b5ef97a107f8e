package labels

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want []string
	}{
		{name: "empty", raw: "", want: nil},
		{name: "whitespace only", raw: "  \t ", want: nil},
		{name: "single", raw: "indie", want: []string{"Indie"}},
		{name: "trims and title cases", raw: " action , ADVENTURE,indie ", want: []string{"Action", "Adventure", "Indie"}},
		{name: "collapses inner whitespace", raw: "free   to  play", want: []string{"Free To Play"}},
		{name: "drops empty tokens", raw: "Action,,  ,Indie,", want: []string{"Action", "Indie"}},
		{name: "keeps duplicates", raw: "A,a, A ", want: []string{"A", "A", "A"}},
		{name: "only separators", raw: ",,,", want: []string{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Normalize(tt.raw)
			if len(tt.want) == 0 {
				assert.Empty(t, got)
				return
			}
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestNormalizeIsIdempotent(t *testing.T) {
	inputs := []string{
		"rpg, RPG Maker , open world",
		"Indie,indie,  INDIE",
		"Single-player,Steam Achievements",
		"",
	}
	for _, raw := range inputs {
		once := Normalize(raw)
		twice := Normalize(Join(once))
		assert.Equal(t, len(once), len(twice), "raw=%q", raw)
		for i := range once {
			assert.Equal(t, once[i], twice[i], "raw=%q", raw)
		}
	}
}

func TestDistinct(t *testing.T) {
	assert.Equal(t, []string{"A", "B"}, Distinct("A,a,B, b ,A"))
	assert.Empty(t, Distinct(""))
}

func TestHasUsesWholeTokens(t *testing.T) {
	assert.False(t, Has("RPG Maker,Indie", "RPG"))
	assert.True(t, Has("RPG Maker,Indie", "rpg maker"))
	assert.True(t, Has("RPG Maker, rpg", "RPG"))
	assert.False(t, Has("", "RPG"))
	assert.False(t, Has("RPG", "  "))
}

func TestSet(t *testing.T) {
	set := Set("Action, action ,Indie")
	assert.Len(t, set, 2)
	assert.Contains(t, set, "Action")
	assert.Contains(t, set, "Indie")
}

func TestToken(t *testing.T) {
	assert.Equal(t, "Open World", Token("  open   WORLD "))
	assert.Equal(t, "", Token("   "))
}
