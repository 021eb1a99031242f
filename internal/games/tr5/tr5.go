// Package tr5 defines Tomb Raider: Chronicles.
package tr5

import (
	_ "embed"

	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/integrity"
	"github.com/TombRunners/trvs/internal/swap"
)

//go:embed packaged.json
var packagedListing []byte

// PatchDir is the folder the patched version keeps its extra data in. It is
// removed before every swap so no stale patch data survives.
const PatchDir = "patch"

// Definition returns the TR5 game data
func Definition() game.Definition {
	packaged, err := integrity.ParseListing(packagedListing)
	if err != nil {
		panic(err)
	}

	return game.Definition{
		Abbreviation: "TR5",
		Title:        "Tomb Raider: Chronicles",
		Executable:   "PCTomb5.exe",
		AsciiArt: []string{
			`  _____ ____  ____   __     __            _             `,
			` |_   _|  _ \| ___|  \ \   / /__ _ __ ___(_) ___  _ __  `,
			`   | | | |_) |___ \   \ \ / / _ \ '__/ __| |/ _ \| '_ \ `,
			`   | | |  _ < ___) |   \ V /  __/ |  \__ \ | (_) | | | |`,
			`   |_| |_| \_\____/     \_/ \___|_|  |___/_|\___/|_| |_|`,
			`                     S W A P P E R                      `,
		},
		Files: []string{
			"PCTomb5.exe",
			"audio",
			"data",
		},
		Packaged: packaged,
		Versions: []game.Version{
			{
				Name:         "Original",
				Dir:          "Original",
				Description:  "The 2000 retail release",
				Obsolete:     []string{"dxwrapper.dll"},
				ObsoleteDirs: []string{PatchDir},
			},
			{
				Name:         "Patched",
				Dir:          "Patched",
				Description:  "Original with the community compatibility patch",
				ObsoleteDirs: []string{PatchDir},
			},
		},
	}
}

// NewSwapper creates the TR5 swapper
func NewSwapper(ops *swap.Operations, dirs game.Directories, ui swap.Chooser) swap.Swapper {
	return swap.NewVersionSwapper(ops, Definition(), dirs, ui)
}
