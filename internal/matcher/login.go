package matcher

import (
	"errors"
	"net/url"

	"go.uber.org/zap"
)

// Login exchanges the username and password for a bearer credential. Storing
// the credential is the caller's responsibility. Any non-success status is an
// AuthError carrying the service's detail message when present.
func (c *Client) Login(username, password string) (string, error) {
	data := url.Values{}
	data.Set("username", username)
	data.Set("password", password)

	var payload struct {
		AccessToken string `json:"access_token"`
	}

	if err := c.postForm(tokenPath, data, &payload); err != nil {
		var terr *TransportError
		if errors.As(err, &terr) {
			return "", err
		}

		return "", &AuthError{Detail: errorDetail(err)}
	}

	if payload.AccessToken == "" {
		return "", &ServerError{Detail: "service response is missing the access token"}
	}

	c.logger.Debug("login succeeded", zap.String("username", username))

	return payload.AccessToken, nil
}
