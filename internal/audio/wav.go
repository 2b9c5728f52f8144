// ABOUTME: PCM to WAV container encoder
// ABOUTME: Wraps raw PCM bytes in a canonical 44-byte RIFF/WAVE header
package audio

import "encoding/binary"

const wavHeaderSize = 44

// EncodeWAV wraps a base64 PCM payload in a minimal RIFF/WAVE container.
// The header always declares 24 kHz mono 16-bit linear PCM, matching the
// backend's fixed output format regardless of any playback device rate.
// An empty payload yields a valid 44-byte silent file.
func EncodeWAV(encoded string) ([]byte, error) {
	data, err := DecodeBase64(encoded)
	if err != nil {
		return nil, &InvalidAudioDataError{Reason: "payload is not valid base64", Err: err}
	}
	return encodeWAVBytes(data), nil
}

// EncodeWAVFile encodes a base64 PCM payload into a NamedFile carrying
// the audio/wav MIME type, ready for save/share handoff.
func EncodeWAVFile(encoded, filename string) (*NamedFile, error) {
	wav, err := EncodeWAV(encoded)
	if err != nil {
		return nil, err
	}
	return &NamedFile{
		Name: filename,
		MIME: WAVMimeType,
		Data: wav,
	}, nil
}

func encodeWAVBytes(pcm []byte) []byte {
	const (
		bytesPerSample = WAVBitDepth / 8
		byteRate       = WAVSampleRate * WAVChannels * bytesPerSample
		blockAlign     = WAVChannels * bytesPerSample
	)

	dataSize := len(pcm)
	out := make([]byte, wavHeaderSize+dataSize)

	// RIFF chunk descriptor
	copy(out[0:4], "RIFF")
	binary.LittleEndian.PutUint32(out[4:8], uint32(36+dataSize))
	copy(out[8:12], "WAVE")

	// fmt subchunk
	copy(out[12:16], "fmt ")
	binary.LittleEndian.PutUint32(out[16:20], 16)
	binary.LittleEndian.PutUint16(out[20:22], 1) // linear PCM
	binary.LittleEndian.PutUint16(out[22:24], WAVChannels)
	binary.LittleEndian.PutUint32(out[24:28], WAVSampleRate)
	binary.LittleEndian.PutUint32(out[28:32], byteRate)
	binary.LittleEndian.PutUint16(out[32:34], blockAlign)
	binary.LittleEndian.PutUint16(out[34:36], WAVBitDepth)

	// data subchunk
	copy(out[36:40], "data")
	binary.LittleEndian.PutUint32(out[40:44], uint32(dataSize))
	copy(out[44:], pcm)

	return out
}
