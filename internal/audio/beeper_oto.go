//go:build !headless

package audio

import (
	"fmt"
	"sync"

	"github.com/ebitengine/oto/v3"
)

// Beeper plays a tone through the audio device of the host.
type Beeper struct {
	*Tone

	ctx    *oto.Context
	player *oto.Player
	mutex  sync.Mutex
}

// NewBeeper opens the audio device and starts playing a silent tone.
func NewBeeper(sampleRate int) (*Beeper, error) {
	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, ready, err := oto.NewContext(op)
	if err != nil {
		return nil, fmt.Errorf("creating audio context: %w", err)
	}
	<-ready

	b := &Beeper{
		Tone: NewTone(sampleRate, DefaultFrequency),
		ctx:  ctx,
	}
	b.player = ctx.NewPlayer(b.Tone)
	b.player.Play()
	return b, nil
}

// Close stops the playback.
func (b *Beeper) Close() error {
	b.mutex.Lock()
	defer b.mutex.Unlock()

	if b.player == nil {
		return nil
	}
	err := b.player.Close()
	b.player = nil
	if err != nil {
		return fmt.Errorf("closing audio player: %w", err)
	}
	return nil
}
