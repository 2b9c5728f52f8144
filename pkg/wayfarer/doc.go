// ABOUTME: High-level Wayfarer audio codec API
// ABOUTME: Public entry points for decoding and exporting narration audio
// Package wayfarer exposes the narration audio codec for library users.
//
// The backend delivers narration as a base64 string of mono 16-bit
// little-endian PCM samples at 24 kHz. This package provides the three
// operations built on that payload:
//   - DecodeForPlayback: produce a normalized float buffer for an output device
//   - EncodeToWAV: wrap the payload in a canonical RIFF/WAVE container
//   - DecodeToFile: turn any base64 payload into a named, typed file
//
// Example:
//
//	wav, err := wayfarer.EncodeToWAV(payload)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	os.WriteFile("narration.wav", wav, 0644)
package wayfarer
