package mines

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParamsValidate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		params GameParams
		ok     bool
	}{
		{"easy preset", Easy, true},
		{"medium preset", Medium, true},
		{"hard preset", Hard, true},
		{"custom default", DefaultCustom, true},
		{"smallest playable", GameParams{Width: 1, Height: 1, MineCount: 0}, true},
		{"almost full", GameParams{Width: 3, Height: 3, MineCount: 8}, true},
		{"zero width", GameParams{Width: 0, Height: 9, MineCount: 0}, false},
		{"zero height", GameParams{Width: 9, Height: 0, MineCount: 0}, false},
		{"negative mines", GameParams{Width: 9, Height: 9, MineCount: -1}, false},
		{"full of mines", GameParams{Width: 3, Height: 3, MineCount: 9}, false},
		{"more mines than cells", GameParams{Width: 3, Height: 3, MineCount: 10}, false},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			err := test.params.Validate()
			if test.ok {
				assert.NoError(t, err)
			} else {
				assert.ErrorIs(t, err, ErrInvalidParams)
			}
		})
	}
}

func TestPreset(t *testing.T) {
	t.Parallel()

	for name, want := range map[string]GameParams{
		"easy": Easy, "Medium": Medium, "HARD": Hard,
	} {
		got, ok := Preset(name)
		assert.True(t, ok)
		assert.Equal(t, want, got)
	}

	_, ok := Preset("nightmare")
	assert.False(t, ok)
}

func TestSeedRoundTrip(t *testing.T) {
	t.Parallel()

	for _, params := range []GameParams{Easy, Medium, Hard, DefaultCustom} {
		parsed, err := ParseSeed(params.Seed())
		require.NoError(t, err)
		assert.Equal(t, params, *parsed)
	}
}

func TestParseSeedRejectsGarbage(t *testing.T) {
	t.Parallel()

	for _, seed := range []string{"", "10", "10:10", "a:b:c", "3:3:9"} {
		_, err := ParseSeed(seed)
		assert.ErrorIs(t, err, ErrInvalidParams, "seed %q", seed)
	}
}
