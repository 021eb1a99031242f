package testing

import (
	"crypto/md5"
	"encoding/hex"
	"path/filepath"
	"testing"
)

// MD5Hex returns the lowercase MD5 digest of content
func MD5Hex(content string) string {
	sum := md5.Sum([]byte(content))
	return hex.EncodeToString(sum[:])
}

// GameInstall is an on-disk fake game installation with a program folder inside it
type GameInstall struct {
	GameDir    string
	ProgramDir string
}

// NewGameInstall creates gameFiles inside a temp game directory and
// packagedFiles inside its "TRVS" program folder
func NewGameInstall(t *testing.T, gameFiles, packagedFiles map[string]string) *GameInstall {
	t.Helper()

	gameDir := t.TempDir()
	programDir := filepath.Join(gameDir, "TRVS")
	MkdirAll(t, gameDir, "TRVS")

	WriteTree(t, gameDir, gameFiles)
	WriteTree(t, programDir, packagedFiles)

	return &GameInstall{
		GameDir:    gameDir,
		ProgramDir: programDir,
	}
}

// Game implements game.Directories
func (g *GameInstall) Game() string {
	return g.GameDir
}

// Packaged implements game.Directories
func (g *GameInstall) Packaged() string {
	return g.ProgramDir
}
