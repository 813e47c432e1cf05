package splunk

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
)

// Login authenticates with username and password and stores the returned
// session key for subsequent requests.
func (c *Client) Login(ctx context.Context, username, password string) error {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	var resp struct {
		SessionKey string `json:"sessionKey"`
	}
	if err := c.post(ctx, "/services/auth/login", form, &resp); err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) && (apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusBadRequest) {
			return fmt.Errorf("%w: %w", ErrAuthenticationFailed, err)
		}
		return fmt.Errorf("logging in as %q: %w", username, err)
	}
	if resp.SessionKey == "" {
		return fmt.Errorf("%w: no session key in login response", ErrAuthenticationFailed)
	}

	c.setSessionKey(resp.SessionKey)
	return nil
}
