package audio

import (
	"math"
	"time"

	"github.com/gopxl/beep"
)

type Wave int

const (
	WaveSine Wave = iota
	WaveSquare
)

// Tone is a single fixed-pitch note with a short linear attack and release
type Tone struct {
	sr    beep.SampleRate
	freq  float64
	wave  Wave
	gain  float64
	total int
	pos   int
}

func NewTone(freq float64, d time.Duration, wave Wave, sr beep.SampleRate) *Tone {
	return &Tone{
		sr:    sr,
		freq:  freq,
		wave:  wave,
		gain:  0.25,
		total: sr.N(d),
	}
}

func (t *Tone) Stream(samples [][2]float64) (n int, ok bool) {
	if t.pos >= t.total {
		return 0, false
	}

	ramp := t.sr.N(5 * time.Millisecond)
	for i := range samples {
		if t.pos >= t.total {
			break
		}
		phase := 2 * math.Pi * t.freq * float64(t.pos) / float64(t.sr)

		v := math.Sin(phase)
		if t.wave == WaveSquare && v != 0 {
			v = math.Copysign(0.6, v)
		}

		env := 1.0
		if ramp > 0 {
			env = math.Min(env, float64(t.pos)/float64(ramp))
			env = math.Min(env, float64(t.total-t.pos)/float64(ramp))
		}

		s := v * env * t.gain
		samples[i][0] = s
		samples[i][1] = s
		t.pos++
		n++
	}
	return n, true
}

func (t *Tone) Err() error {
	return nil
}

// Len is the tone length in samples
func (t *Tone) Len() int {
	return t.total
}

type note struct {
	freq float64
	d    time.Duration
	wave Wave
}

func sequence(sr beep.SampleRate, notes ...note) beep.Streamer {
	streamers := make([]beep.Streamer, 0, len(notes))
	for _, n := range notes {
		streamers = append(streamers, NewTone(n.freq, n.d, n.wave, sr))
	}
	return beep.Seq(streamers...)
}
