// Package audio plays the short sound cues embedded in the program.
package audio

import (
	"bytes"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/effects"
	"github.com/gopxl/beep/speaker"
	"github.com/gopxl/beep/wav"
	"github.com/sirupsen/logrus"
)

//go:embed sounds/*.wav
var sounds embed.FS

// Cue names
const (
	Select  = "select"
	Success = "success"
	Error   = "error"
)

// Sound returns the embedded WAV data for a cue
func Sound(name string) ([]byte, error) {
	data, err := sounds.ReadFile("sounds/" + name + ".wav")
	if err != nil {
		return nil, fmt.Errorf("unknown sound %q: %w", name, err)
	}
	return data, nil
}

// Decode decodes WAV sound data into a streamer
func Decode(soundData []byte) (beep.StreamSeekCloser, beep.Format, error) {
	if len(soundData) == 0 {
		return nil, beep.Format{}, fmt.Errorf("no sound data")
	}

	streamer, format, err := wav.Decode(bytes.NewReader(soundData))
	if err != nil {
		return nil, beep.Format{}, fmt.Errorf("failed to decode sound: %w", err)
	}
	return streamer, format, nil
}

// Player plays cues through the default output device. A disabled player,
// or one whose device failed to open, stays silent.
type Player struct {
	enabled bool
	log     logrus.FieldLogger

	once  sync.Once
	ready bool
	// mu serializes playback so cues never overlap
	mu sync.Mutex
	// Volume is applied to asynchronous cues, in the same units as effects.Volume
	Volume float64
}

// NewPlayer creates a player; enabled comes from the PlaySounds setting
func NewPlayer(enabled bool, log logrus.FieldLogger) *Player {
	return &Player{enabled: enabled, log: log, Volume: -1}
}

func (p *Player) init(format beep.Format) bool {
	p.once.Do(func() {
		p.log.Debug("Setting up audio...")
		if err := speaker.Init(format.SampleRate, format.SampleRate.N(time.Second/10)); err != nil {
			p.log.WithError(err).Warn("Audio device unavailable; sounds disabled.")
			return
		}
		p.ready = true
	})
	return p.ready
}

func (p *Player) load(name string) (beep.StreamSeekCloser, bool) {
	if !p.enabled {
		return nil, false
	}

	data, err := Sound(name)
	if err == nil {
		var streamer beep.StreamSeekCloser
		var format beep.Format
		streamer, format, err = Decode(data)
		if err == nil {
			if !p.init(format) {
				streamer.Close()
				return nil, false
			}
			return streamer, true
		}
	}

	p.log.WithError(err).Debugf("Couldn't play sound %s.", name)
	return nil, false
}

// Play plays a cue and blocks until it finishes
func (p *Player) Play(name string) {
	streamer, ok := p.load(name)
	if !ok {
		return
	}
	defer streamer.Close()

	p.mu.Lock()
	defer p.mu.Unlock()

	done := make(chan struct{})
	speaker.Play(beep.Seq(streamer, beep.Callback(func() {
		close(done)
	})))
	<-done
}

// PlayAsync starts a cue at the player's volume and returns immediately
func (p *Player) PlayAsync(name string) {
	streamer, ok := p.load(name)
	if !ok {
		return
	}

	quieter := &effects.Volume{
		Streamer: streamer,
		Base:     2,
		Volume:   p.Volume,
	}
	speaker.Play(beep.Seq(quieter, beep.Callback(func() {
		streamer.Close()
	})))
}
