// Package games is the registry of supported games.
package games

import (
	"fmt"
	"sort"
	"strings"

	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/games/tr4"
	"github.com/TombRunners/trvs/internal/games/tr5"
	"github.com/TombRunners/trvs/internal/swap"
)

// Game is one supported game
type Game struct {
	Definition func() game.Definition
	NewSwapper func(ops *swap.Operations, dirs game.Directories, ui swap.Chooser) swap.Swapper
}

var registry = map[string]Game{
	"tr4": {Definition: tr4.Definition, NewSwapper: tr4.NewSwapper},
	"tr5": {Definition: tr5.Definition, NewSwapper: tr5.NewSwapper},
}

// Lookup finds a game by abbreviation, ignoring case
func Lookup(abbreviation string) (Game, error) {
	g, ok := registry[strings.ToLower(abbreviation)]
	if !ok {
		return Game{}, fmt.Errorf("unknown game %q, expected one of: %s", abbreviation, strings.Join(Names(), ", "))
	}
	return g, nil
}

// Names lists the registered abbreviations in order
func Names() []string {
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
