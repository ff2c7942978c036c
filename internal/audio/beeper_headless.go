//go:build headless

package audio

// Beeper keeps the tone state without an audio device.
type Beeper struct {
	*Tone
}

// NewBeeper returns a beeper that produces no output.
func NewBeeper(sampleRate int) (*Beeper, error) {
	return &Beeper{
		Tone: NewTone(sampleRate, DefaultFrequency),
	}, nil
}

// Close does nothing.
func (b *Beeper) Close() error {
	return nil
}
