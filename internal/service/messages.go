package service

import (
	"errors"
	"net/http"

	"github.com/yourusername/sports-companion/internal/datasource"
)

// User-facing notification messages.
const (
	MsgNetworkError    = "Network error. Please check your connection."
	MsgInvalidAPIKey   = "Invalid API key. Please check your configuration."
	MsgRateLimited     = "Rate limit exceeded. Please wait before making more requests."
	MsgFetchFailed     = "Failed to fetch data. Please try again later."
	MsgUsingCachedData = "Using cached data"
	MsgUsingSampleData = "Live data unavailable. Showing sample matches."
	MsgDetailsFailed   = "Failed to load match details"
)

// UserMessage maps a fetch failure onto the message shown to the user.
func UserMessage(err error) string {
	switch {
	case errors.Is(err, datasource.ErrNetwork), errors.Is(err, datasource.ErrTimeout):
		return MsgNetworkError
	case errors.Is(err, datasource.ErrMissingCredential):
		return MsgInvalidAPIKey
	}

	switch datasource.StatusCode(err) {
	case http.StatusUnauthorized, http.StatusForbidden:
		return MsgInvalidAPIKey
	case http.StatusTooManyRequests:
		return MsgRateLimited
	}

	return MsgFetchFailed
}
