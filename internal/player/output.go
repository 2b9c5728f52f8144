// ABOUTME: Audio output using oto library
// ABOUTME: Plays normalized mono buffers with software volume control
package player

import (
	"bytes"
	"context"
	"encoding/binary"
	"fmt"
	"log"

	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
	"github.com/ebitengine/oto/v3"
)

// Output manages the audio output device. It owns the single
// process-wide oto context; create one Output, reuse it for every
// narration, and Close it on teardown.
type Output struct {
	ctx        context.Context
	cancel     context.CancelFunc
	otoCtx     *oto.Context
	sampleRate int
	volume     int
	muted      bool
	ready      bool
}

// NewOutput creates an audio output
func NewOutput() *Output {
	ctx, cancel := context.WithCancel(context.Background())

	return &Output{
		ctx:    ctx,
		cancel: cancel,
		volume: 100,
		muted:  false,
	}
}

// Open initializes oto at the given sample rate
func (o *Output) Open(sampleRate int) error {
	// oto allows one context per process; reuse when the rate matches
	if o.otoCtx != nil {
		if o.sampleRate != sampleRate {
			log.Printf("Warning: output already open at %dHz, ignoring requested %dHz", o.sampleRate, sampleRate)
		}
		o.ready = true
		return nil
	}

	op := &oto.NewContextOptions{
		SampleRate:   sampleRate,
		ChannelCount: 1,
		Format:       oto.FormatSignedInt16LE,
	}

	ctx, readyChan, err := oto.NewContext(op)
	if err != nil {
		return fmt.Errorf("failed to create oto context: %w", err)
	}

	<-readyChan

	o.otoCtx = ctx
	o.sampleRate = sampleRate
	o.ready = true

	log.Printf("Audio output initialized: %dHz mono", sampleRate)

	return nil
}

// SampleRate returns the rate the device was opened at, or 0 if closed.
func (o *Output) SampleRate() int {
	return o.sampleRate
}

// Play starts playback of a buffer and returns immediately. The caller
// can use the buffer's Duration to track completion.
func (o *Output) Play(buf *audio.PlaybackBuffer) error {
	if !o.ready {
		return fmt.Errorf("output not initialized")
	}

	pcm := renderInt16(buf.Samples, getVolumeMultiplier(o.volume, o.muted))

	player := o.otoCtx.NewPlayer(bytes.NewReader(pcm))
	player.Play()

	return nil
}

// SetVolume sets the volume (0-100)
func (o *Output) SetVolume(volume int) {
	if volume < 0 {
		volume = 0
	}
	if volume > 100 {
		volume = 100
	}
	o.volume = volume
	log.Printf("Volume set to %d", volume)
}

// SetMuted sets mute state
func (o *Output) SetMuted(muted bool) {
	o.muted = muted
	log.Printf("Muted: %v", muted)
}

// GetVolume returns current volume
func (o *Output) GetVolume() int {
	return o.volume
}

// IsMuted returns mute state
func (o *Output) IsMuted() bool {
	return o.muted
}

// Close closes the audio output
func (o *Output) Close() {
	if o.otoCtx != nil {
		o.otoCtx.Suspend()
		o.ready = false
	}
	o.cancel()
}

// renderInt16 converts normalized float frames back to 16-bit LE bytes,
// applying the volume multiplier and clamping to the int16 range.
func renderInt16(samples []float32, multiplier float64) []byte {
	out := make([]byte, len(samples)*2)
	for i, sample := range samples {
		scaled := float64(sample) * multiplier * 32768.0
		if scaled > 32767 {
			scaled = 32767
		}
		if scaled < -32768 {
			scaled = -32768
		}
		binary.LittleEndian.PutUint16(out[i*2:], uint16(int16(scaled)))
	}
	return out
}

// getVolumeMultiplier calculates volume multiplier
func getVolumeMultiplier(volume int, muted bool) float64 {
	if muted {
		return 0.0
	}
	return float64(volume) / 100.0
}
