// ABOUTME: Base64 and PCM decoding primitives
// ABOUTME: Converts backend payloads into playback buffers and named files
package audio

import (
	"encoding/base64"
	"encoding/binary"
)

// DecodeBase64 decodes a standard-alphabet base64 string into raw bytes.
// The platform decoder's failure is surfaced as a *DecodeError; nothing
// is truncated or zero-filled on bad input.
func DecodeBase64(encoded string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(encoded)
	if err != nil {
		return nil, &DecodeError{Err: err}
	}
	return data, nil
}

// DecodePCM decodes a base64 payload of mono 16-bit little-endian PCM
// into a playback buffer at the caller's output sample rate. The rate
// describes the device the buffer is destined for and is independent of
// the 24 kHz rate baked into WAV export.
//
// Each frame is int16/32768.0, so output spans [-1.0, 0.999969...].
// Payloads with an odd byte count are rejected rather than truncated.
func DecodePCM(encoded string, sampleRate int) (*PlaybackBuffer, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return nil, &InvalidAudioDataError{Reason: "payload is not valid base64", Err: err}
	}

	if len(data)%2 != 0 {
		return nil, &InvalidAudioDataError{Reason: "byte length is not a multiple of 2"}
	}

	samples := make([]float32, len(data)/2)
	for i := range samples {
		s := int16(binary.LittleEndian.Uint16(data[i*2:]))
		samples[i] = float32(s) / 32768.0
	}

	return &PlaybackBuffer{
		SampleRate: sampleRate,
		Samples:    samples,
	}, nil
}

// ConcatPayloads joins streamed base64 PCM chunks into one payload.
// Chunk boundaries fall on sample boundaries, so each chunk must hold
// whole 16-bit samples; a chunk that does not is rejected the same way
// DecodePCM rejects it.
func ConcatPayloads(chunks []string) (string, error) {
	if len(chunks) == 0 {
		return "", nil
	}

	var all []byte
	for _, chunk := range chunks {
		data, err := DecodeBase64(chunk)
		if err != nil {
			return "", &InvalidAudioDataError{Reason: "chunk is not valid base64", Err: err}
		}
		if len(data)%2 != 0 {
			return "", &InvalidAudioDataError{Reason: "chunk byte length is not a multiple of 2"}
		}
		all = append(all, data...)
	}

	return base64.StdEncoding.EncodeToString(all), nil
}

// DecodeToFile decodes a base64 payload and tags the bytes with a
// filename and MIME type for save/share handoff. The MIME type is not
// inspected; callers are responsible for matching it to the content.
func DecodeToFile(encoded, filename, mimeType string) (*NamedFile, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return nil, err
	}
	return &NamedFile{
		Name: filename,
		MIME: mimeType,
		Data: data,
	}, nil
}
