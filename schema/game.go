package schema

import (
	"strconv"
	"strings"

	"github.com/wippyai/gameres/errors"
)

// Game is a format generation. Structs that differ between generations
// are selected through layout.Variants keyed by Game.
type Game uint8

const (
	GameUnknown Game = iota
	Gen1
	Gen2
	Gen3
)

// Games lists the supported generations in order.
var Games = [...]Game{Gen1, Gen2, Gen3}

func (g Game) String() string {
	switch g {
	case Gen1:
		return "gen1"
	case Gen2:
		return "gen2"
	case Gen3:
		return "gen3"
	default:
		return "game(" + strconv.Itoa(int(g)) + ")"
	}
}

// ParseGame accepts "gen1".."gen3" or the bare generation number.
func ParseGame(s string) (Game, error) {
	s = strings.TrimPrefix(strings.ToLower(strings.TrimSpace(s)), "gen")
	n, err := strconv.Atoi(s)
	if err != nil || n < int(Gen1) || n > int(Gen3) {
		return GameUnknown, errors.New(errors.PhaseConfig, errors.KindInvalidInput).
			Value(s).
			Detail("unknown game generation %q", s).
			Build()
	}
	return Game(n), nil
}
