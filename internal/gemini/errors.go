// ABOUTME: Error types for the Gemini client
// ABOUTME: Wraps non-2xx API responses with status details
package gemini

import "fmt"

// APIError is a non-2xx response from the Generative Language API
type APIError struct {
	HTTPStatus int
	Status     string
	Message    string
}

func (e *APIError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("gemini api error %d (%s): %s", e.HTTPStatus, e.Status, e.Message)
	}
	return fmt.Sprintf("gemini api error %d: %s", e.HTTPStatus, e.Message)
}
