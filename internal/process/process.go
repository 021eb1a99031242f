// Package process finds a game running from an installation folder and walks
// the user through closing it before files in that folder are touched.
package process

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/shirou/gopsutil/v3/process"

	"github.com/TombRunners/trvs/internal/paths"
)

// Process is one OS process as seen by a Scanner
type Process interface {
	PID() int32
	Name() (string, error)
	Exe() (string, error)
	StartTime() (time.Time, error)
	Kill() error
	Running() (bool, error)
}

// Scanner lists the processes currently running
type Scanner interface {
	Processes() ([]Process, error)
}

// SystemScanner lists real OS processes
type SystemScanner struct{}

// Processes implements Scanner
func (SystemScanner) Processes() ([]Process, error) {
	procs, err := process.Processes()
	if err != nil {
		return nil, fmt.Errorf("failed to list processes: %w", err)
	}

	out := make([]Process, 0, len(procs))
	for _, p := range procs {
		out = append(out, systemProcess{p})
	}
	return out, nil
}

type systemProcess struct {
	p *process.Process
}

func (s systemProcess) PID() int32 {
	return s.p.Pid
}

func (s systemProcess) Name() (string, error) {
	return s.p.Name()
}

func (s systemProcess) Exe() (string, error) {
	return s.p.Exe()
}

func (s systemProcess) StartTime() (time.Time, error) {
	ms, err := s.p.CreateTime()
	if err != nil {
		return time.Time{}, err
	}
	return time.UnixMilli(ms), nil
}

func (s systemProcess) Kill() error {
	return s.p.Kill()
}

func (s systemProcess) Running() (bool, error) {
	return s.p.IsRunning()
}

// RunningGame is a game process found running from the target folder
type RunningGame struct {
	PID       int32
	Name      string
	ExePath   string
	StartTime time.Time

	proc Process
}

// String formats the identity shown to the user
func (g *RunningGame) String() string {
	start := "unknown"
	if !g.StartTime.IsZero() {
		start = g.StartTime.Format("15:04:05.000")
	}
	return fmt.Sprintf("Name: %s | ID: %d | Start time: %s", g.Name, g.PID, start)
}

// Kill forcibly terminates the process
func (g *RunningGame) Kill() error {
	return g.proc.Kill()
}

// Exited reports whether the process is gone. A failed check counts as gone.
func (g *RunningGame) Exited() bool {
	running, err := g.proc.Running()
	return err != nil || !running
}

// sameExecutable compares process names the way Windows reports them,
// with or without the ".exe" extension
func sameExecutable(a, b string) bool {
	trim := func(s string) string {
		return strings.TrimSuffix(strings.ToLower(s), ".exe")
	}
	return trim(a) == trim(b)
}

// FindRunning returns the first process named executable whose binary lives
// directly in dir, or nil. A name match whose path cannot be read is an error.
func FindRunning(scanner Scanner, executable, dir string) (*RunningGame, error) {
	procs, err := scanner.Processes()
	if err != nil {
		return nil, err
	}

	for _, p := range procs {
		name, err := p.Name()
		if err != nil || !sameExecutable(name, executable) {
			continue
		}

		exe, err := p.Exe()
		if err != nil {
			return nil, fmt.Errorf("failed to read executable path of process %d: %w", p.PID(), err)
		}
		if exe == "" {
			return nil, fmt.Errorf("process %d has no executable path", p.PID())
		}
		if !sameExecutable(filepath.Base(exe), executable) || !paths.SameDir(filepath.Dir(exe), dir) {
			continue
		}

		start, _ := p.StartTime()
		return &RunningGame{
			PID:       p.PID(),
			Name:      name,
			ExePath:   exe,
			StartTime: start,
			proc:      p,
		}, nil
	}

	return nil, nil
}
