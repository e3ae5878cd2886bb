package gemini

import (
	"errors"
	"fmt"
	"strings"
)

// Generation failures are normalized to a small set of user-facing errors
// at this boundary; nothing from the underlying SDK propagates uncleaned.
var (
	// ErrNotConfigured means the client was built without an API key.
	ErrNotConfigured = errors.New("the Gemini client is not configured; check your API key configuration")
	// ErrInvalidAPIKey means the service rejected the supplied credential.
	ErrInvalidAPIKey = errors.New("the API key is invalid or missing; please check your application configuration")
	// ErrRateLimited means quota was exhausted or requests were throttled.
	ErrRateLimited = errors.New("API quota exceeded or rate limit reached; please try again later")
)

// translateError maps an SDK/transport error onto the error taxonomy.
// The service's error wording is an external contract; keep all substring
// matching here so it can change without touching callers.
func translateError(err error) error {
	msg := err.Error()
	lower := strings.ToLower(msg)
	switch {
	case strings.Contains(msg, "API_KEY_INVALID") || strings.Contains(lower, "api key not valid"):
		return ErrInvalidAPIKey
	case strings.Contains(lower, "quota") || strings.Contains(lower, "rate limit"):
		return ErrRateLimited
	default:
		return fmt.Errorf("could not generate prompt: %w", err)
	}
}

// IsConfigError reports whether err is a configuration or credential
// problem that no retry can fix without operator action.
func IsConfigError(err error) bool {
	return errors.Is(err, ErrNotConfigured) || errors.Is(err, ErrInvalidAPIKey)
}
