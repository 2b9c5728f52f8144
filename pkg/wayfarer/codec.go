// ABOUTME: Public codec API
// ABOUTME: Thin wrappers over the internal audio codec
package wayfarer

import (
	"github.com/Wayfarer-Audio/wayfarer-go/internal/audio"
)

// SampleRate is the fixed narration sample rate declared in WAV exports.
const SampleRate = audio.WAVSampleRate

// PlaybackBuffer holds decoded mono audio ready for playback
type PlaybackBuffer = audio.PlaybackBuffer

// NamedFile is a binary blob tagged with a filename and MIME type
type NamedFile = audio.NamedFile

// DecodeForPlayback decodes a base64 PCM payload into a normalized
// buffer at the output device's sample rate
func DecodeForPlayback(payload string, sampleRate int) (*PlaybackBuffer, error) {
	return audio.DecodePCM(payload, sampleRate)
}

// EncodeToWAV wraps a base64 PCM payload in a WAV container
func EncodeToWAV(payload string) ([]byte, error) {
	return audio.EncodeWAV(payload)
}

// DecodeToFile decodes a base64 payload into a named, typed file
func DecodeToFile(payload, filename, mimeType string) (*NamedFile, error) {
	return audio.DecodeToFile(payload, filename, mimeType)
}
