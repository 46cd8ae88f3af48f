// Package sound is the audio collaborator. Playback is fire-and-forget:
// each request runs in its own goroutine with its own timeout, and failures
// are logged, never propagated into the scheduling core.
package sound

import (
	"context"
	"log"
	"os/exec"
	"time"
)

// playTimeout caps a single playback so a wedged player process cannot
// accumulate goroutines.
const playTimeout = 30 * time.Second

// Breaker suppresses playback attempts for a command that keeps failing.
type Breaker interface {
	Allow(key string) error
	RecordSuccess(key string)
	RecordFailure(key string)
}

// Player plays a configured sound file through the platform's command-line
// audio player.
type Player struct {
	soundFile string
	breaker   Breaker
}

// NewPlayer creates a player for the given sound file.
func NewPlayer(soundFile string) *Player {
	return &Player{soundFile: soundFile}
}

// WithBreaker attaches a circuit breaker keyed by player command, so a
// missing or broken audio setup does not spawn a process per alert forever.
func (p *Player) WithBreaker(breaker Breaker) *Player {
	p.breaker = breaker
	return p
}

// PlayAsync starts playback and returns immediately.
func (p *Player) PlayAsync() {
	if p.soundFile == "" {
		return
	}

	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), playTimeout)
		defer cancel()

		name, args := playerCommand(p.soundFile)
		if name == "" {
			log.Printf("sound: no audio player available on this platform")
			return
		}

		if p.breaker != nil {
			if err := p.breaker.Allow(name); err != nil {
				log.Printf("sound: skipping playback, %s keeps failing", name)
				return
			}
		}

		err := exec.CommandContext(ctx, name, args...).Run()
		if p.breaker != nil {
			if err != nil {
				p.breaker.RecordFailure(name)
			} else {
				p.breaker.RecordSuccess(name)
			}
		}
		if err != nil {
			log.Printf("sound: playback of %s failed: %v", p.soundFile, err)
		}
	}()
}
