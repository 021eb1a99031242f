// Package tr4 defines Tomb Raider: The Last Revelation.
package tr4

import (
	_ "embed"

	"github.com/TombRunners/trvs/internal/game"
	"github.com/TombRunners/trvs/internal/integrity"
	"github.com/TombRunners/trvs/internal/swap"
)

// packaged.json is the audit listing of the shipped versions folder,
// regenerated with `trvs audit` for every release.
//
//go:embed packaged.json
var packagedListing []byte

// Definition returns the TR4 game data. It panics if the embedded listing is
// malformed, which is a build defect.
func Definition() game.Definition {
	packaged, err := integrity.ParseListing(packagedListing)
	if err != nil {
		panic(err)
	}

	return game.Definition{
		Abbreviation: "TR4",
		Title:        "Tomb Raider: The Last Revelation",
		Executable:   "tomb4.exe",
		AsciiArt: []string{
			`  _____ ____  _  _    __     __            _             `,
			` |_   _|  _ \| || |   \ \   / /__ _ __ ___(_) ___  _ __  `,
			`   | | | |_) | || |_   \ \ / / _ \ '__/ __| |/ _ \| '_ \ `,
			`   | | |  _ <|__   _|   \ V /  __/ |  \__ \ | (_) | | | |`,
			`   |_| |_| \_\  |_|      \_/ \___|_|  |___/_|\___/|_| |_|`,
			`                      S W A P P E R                      `,
		},
		Files: []string{
			"tomb4.exe",
			"audio",
			"data",
			"pix",
			"load.bmp",
		},
		Packaged: packaged,
		Versions: []game.Version{
			{
				Name:        "Original",
				Dir:         "Original",
				Description: "The 2000 retail release",
				Obsolete:    []string{"DDraw.dll", "bin/tomb4.cfg"},
			},
			{
				Name:        "Multipatch",
				Dir:         "Multipatch",
				Description: "Community patch with modern display fixes",
			},
			{
				Name:        "Steam/GOG",
				Dir:         "SteamGOG",
				Description: "The digital storefront build",
				Obsolete:    []string{"bin/tomb4.cfg"},
			},
		},
	}
}

// NewSwapper creates the TR4 swapper
func NewSwapper(ops *swap.Operations, dirs game.Directories, ui swap.Chooser) swap.Swapper {
	return swap.NewVersionSwapper(ops, Definition(), dirs, ui)
}
