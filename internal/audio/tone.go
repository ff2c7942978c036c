// Package audio outputs the tone that is requested by the sound timer.
package audio

import (
	"encoding/binary"
	"sync/atomic"
)

const (
	// DefaultSampleRate is the sample rate of the audio output in Hz.
	DefaultSampleRate = 44100
	// DefaultFrequency is the frequency of the square wave tone in Hz.
	DefaultFrequency = 440

	amplitude  = 4000
	sampleSize = 2 // signed 16 bit mono
)

// Tone is an io.Reader that produces signed 16 bit little endian mono samples
// of a square wave while active and silence otherwise. SetActive can be called
// concurrently to Read.
type Tone struct {
	active atomic.Bool

	halfPeriod int // samples per half wave
	position   int
}

// NewTone returns an inactive tone generator.
func NewTone(sampleRate, frequency int) *Tone {
	halfPeriod := sampleRate / (2 * frequency)
	return &Tone{
		halfPeriod: max(halfPeriod, 1),
	}
}

// SetActive turns the tone on or off.
func (t *Tone) SetActive(active bool) {
	t.active.Store(active)
}

// Active returns whether the tone is on.
func (t *Tone) Active() bool {
	return t.active.Load()
}

// Read fills p with complete samples.
func (t *Tone) Read(p []byte) (int, error) {
	n := len(p) - len(p)%sampleSize
	active := t.active.Load()

	for offset := 0; offset < n; offset += sampleSize {
		var sample int16
		if active {
			sample = amplitude
			if t.position >= t.halfPeriod {
				sample = -amplitude
			}
		}
		binary.LittleEndian.PutUint16(p[offset:], uint16(sample))

		t.position++
		if t.position >= 2*t.halfPeriod {
			t.position = 0
		}
	}
	return n, nil
}
