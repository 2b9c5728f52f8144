// ABOUTME: Audio type definitions
// ABOUTME: Defines playback buffers and named binary files
package audio

import "time"

// Fixed encoding parameters for narration audio as delivered by the
// backend: mono 16-bit signed little-endian PCM at 24 kHz.
const (
	WAVSampleRate = 24000
	WAVChannels   = 1
	WAVBitDepth   = 16
)

// WAVMimeType is the MIME type of encoded WAV containers.
const WAVMimeType = "audio/wav"

// PlaybackBuffer holds decoded mono audio ready for playback. Samples
// are normalized to [-1.0, 1.0) using the two's-complement int16 range.
type PlaybackBuffer struct {
	SampleRate int
	Samples    []float32
}

// Frames returns the number of frames (one sample per frame, mono).
func (b *PlaybackBuffer) Frames() int {
	return len(b.Samples)
}

// Duration returns the playback duration at the buffer's sample rate.
func (b *PlaybackBuffer) Duration() time.Duration {
	if b.SampleRate <= 0 {
		return 0
	}
	return time.Duration(float64(len(b.Samples)) / float64(b.SampleRate) * float64(time.Second))
}

// NamedFile is a binary blob tagged with a filename and MIME type for
// handoff to save/share collaborators.
type NamedFile struct {
	Name string
	MIME string
	Data []byte
}
