package service

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/yourusername/sports-companion/internal/datasource"
)

func TestUserMessage(t *testing.T) {
	tests := []struct {
		name string
		err  error
		want string
	}{
		{"network", datasource.NewDataSourceError("x", datasource.ErrCodeNetworkError, "refused", nil), MsgNetworkError},
		{"timeout", datasource.NewDataSourceError("x", datasource.ErrCodeTimeout, "slow", context.DeadlineExceeded), MsgNetworkError},
		{"missing key", datasource.NewDataSourceError("cricapi", datasource.ErrCodeMissingCredential, "no key", nil), MsgInvalidAPIKey},
		{"unauthorized", datasource.NewHTTPStatusError("x", http.StatusUnauthorized, ""), MsgInvalidAPIKey},
		{"forbidden", datasource.NewHTTPStatusError("x", http.StatusForbidden, ""), MsgInvalidAPIKey},
		{"rate limited", datasource.NewHTTPStatusError("x", http.StatusTooManyRequests, ""), MsgRateLimited},
		{"server error", datasource.NewHTTPStatusError("x", http.StatusInternalServerError, ""), MsgFetchFailed},
		{"malformed", datasource.NewDataSourceError("x", datasource.ErrCodeMalformedResponse, "bad json", nil), MsgFetchFailed},
		{"disabled", datasource.NewDataSourceError("x", datasource.ErrCodeProviderDisabled, "off", nil), MsgFetchFailed},
		{"wrapped status", fmt.Errorf("fetch: %w", datasource.NewHTTPStatusError("x", http.StatusTooManyRequests, "")), MsgRateLimited},
		{"no matches", ErrNoMatches, MsgFetchFailed},
		{"foreign", errors.New("boom"), MsgFetchFailed},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, UserMessage(tt.err))
		})
	}
}
