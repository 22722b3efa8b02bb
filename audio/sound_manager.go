// Package audio plays short synthesised cues for game events.
package audio

import (
	"sync"
	"time"

	"github.com/gopxl/beep"
	"github.com/gopxl/beep/speaker"

	"gridsnake/game"
)

const sampleRate = beep.SampleRate(44100)

// SoundManager turns game events into sounds. Every method is a no-op until
// Initialize succeeds, so a machine without an audio device just stays quiet.
type SoundManager struct {
	mu          sync.Mutex
	mixer       *beep.Mixer
	initialized bool
}

func NewSoundManager() *SoundManager {
	return &SoundManager{
		mixer: &beep.Mixer{},
	}
}

func (sm *SoundManager) Initialize() error {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if sm.initialized {
		return nil
	}

	if err := speaker.Init(sampleRate, sampleRate.N(50*time.Millisecond)); err != nil {
		return err
	}

	speaker.Play(sm.mixer)
	sm.initialized = true
	return nil
}

// Cleanup silences everything still queued
func (sm *SoundManager) Cleanup() {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Clear()
	speaker.Unlock()
	sm.initialized = false
}

func (sm *SoundManager) OnEvent(ev game.Event) {
	if s := Cue(ev.Kind); s != nil {
		sm.play(s)
	}
}

func (sm *SoundManager) play(s beep.Streamer) {
	sm.mu.Lock()
	defer sm.mu.Unlock()

	if !sm.initialized {
		return
	}

	speaker.Lock()
	sm.mixer.Add(s)
	speaker.Unlock()
}

// Cue returns the sound for an event kind, or nil when it has none
func Cue(kind game.EventKind) beep.Streamer {
	switch kind {
	case game.EventAppleEaten:
		return sequence(sampleRate, note{880, 60 * time.Millisecond, WaveSine})
	case game.EventLevelUp:
		return sequence(sampleRate,
			note{523.25, 80 * time.Millisecond, WaveSine},
			note{659.25, 80 * time.Millisecond, WaveSine},
			note{783.99, 120 * time.Millisecond, WaveSine},
		)
	case game.EventGameOver:
		return sequence(sampleRate,
			note{196, 150 * time.Millisecond, WaveSquare},
			note{147, 250 * time.Millisecond, WaveSquare},
		)
	}
	return nil
}
