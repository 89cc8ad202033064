package http

import (
	"context"
	"errors"
	"net/http"

	"github.com/bft-labs/distclient/internal/domain"
)

const (
	loginPath  = "/auth/login/json"
	mePath     = "/auth/me"
	logoutPath = "/auth/logout"
)

// Login posts credentials and returns the issued token. A 403 maps to
// AuthError(AccountDisabled); any other non-2xx to AuthError(InvalidCredentials),
// wrapping the HTTPError.
func (c *Client) Login(ctx context.Context, creds domain.Credentials) (domain.Token, error) {
	var tok domain.Token
	req := c.r.R().
		SetContext(withoutAuth(ctx)).
		SetHeader("Content-Type", "application/json").
		SetBody(creds)

	err := c.do(req, http.MethodPost, loginPath, &tok)
	var herr *domain.HTTPError
	if errors.As(err, &herr) {
		if herr.StatusCode == http.StatusForbidden {
			return domain.Token{}, &domain.AuthError{Reason: domain.AccountDisabled, Err: herr}
		}
		return domain.Token{}, &domain.AuthError{Reason: domain.InvalidCredentials, Err: herr}
	}
	if err != nil {
		return domain.Token{}, err
	}
	if tok.AccessToken == "" {
		return domain.Token{}, &domain.TransportError{
			Op:  http.MethodPost + " " + loginPath,
			Err: errors.New("response carries no access_token"),
		}
	}
	return tok, nil
}

// Me returns the account behind the current token.
func (c *Client) Me(ctx context.Context) (domain.User, error) {
	var u domain.User
	if err := c.get(ctx, mePath, nil, &u); err != nil {
		return domain.User{}, err
	}
	return u, nil
}

// Logout revokes the current token on the server.
func (c *Client) Logout(ctx context.Context) error {
	return c.do(c.r.R().SetContext(ctx), http.MethodPost, logoutPath, nil)
}
