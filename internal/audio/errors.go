// ABOUTME: Error types for the audio codec
// ABOUTME: Distinguishes base64 decode failures from bad PCM payloads
package audio

import "fmt"

// DecodeError indicates the input string was not valid base64.
type DecodeError struct {
	Err error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("base64 decode failed: %v", e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

// InvalidAudioDataError indicates the payload could not be interpreted
// as 16-bit PCM audio, either because the base64 decode failed or
// because the decoded bytes do not form whole samples.
type InvalidAudioDataError struct {
	Reason string
	Err    error
}

func (e *InvalidAudioDataError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("invalid audio data: %s: %v", e.Reason, e.Err)
	}
	return fmt.Sprintf("invalid audio data: %s", e.Reason)
}

func (e *InvalidAudioDataError) Unwrap() error {
	return e.Err
}
