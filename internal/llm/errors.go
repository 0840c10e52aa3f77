package llm

import (
	"errors"
	"fmt"
	"net/http"
)

// Classifier error categories. Callers branch on these with errors.Is to
// offer differentiated guidance (auth vs. rate limit vs. generic API error
// vs. network vs. undecodable response).
var (
	// ErrAuthentication indicates an invalid or missing API key.
	ErrAuthentication = errors.New("authentication failed")
	// ErrRateLimited indicates the provider rejected the call for rate limiting.
	ErrRateLimited = errors.New("rate limit exceeded")
	// ErrAPI indicates a non-success response outside the categories above.
	ErrAPI = errors.New("api request failed")
	// ErrNetwork indicates a transport-level failure before any response.
	ErrNetwork = errors.New("network request failed")
	// ErrDecode indicates the provider responded but the payload could not
	// be parsed into a usable analysis.
	ErrDecode = errors.New("undecodable response")
)

// categorizeStatus maps an HTTP status code to the matching error category.
func categorizeStatus(status int, body string) error {
	switch {
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return fmt.Errorf("%w (status %d): %s", ErrAuthentication, status, body)
	case status == http.StatusTooManyRequests:
		return fmt.Errorf("%w (status %d): %s", ErrRateLimited, status, body)
	default:
		return fmt.Errorf("%w (status %d): %s", ErrAPI, status, body)
	}
}
