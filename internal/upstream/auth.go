package upstream

import (
	"context"
	"net/url"

	"github.com/chronic-risk-manager/community-health-frontend/internal/model"
)

// Register creates a new user account. No auth required.
func (c *Client) Register(ctx context.Context, req *model.RegisterRequest) (*model.User, error) {
	var user model.User
	err := c.do(ctx, "register", "POST", pathRegister, nil, req, &user)
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// Login submits the password grant as URL-encoded form data, per the
// backend's token endpoint convention.
func (c *Client) Login(ctx context.Context, username, password string) (*model.TokenResponse, error) {
	form := url.Values{}
	form.Set("grant_type", "password")
	form.Set("username", username)
	form.Set("password", password)
	form.Set("scope", "")
	form.Set("client_id", "")
	form.Set("client_secret", "")

	var token model.TokenResponse
	if err := c.do(ctx, "login", "POST", pathLogin, nil, form, &token); err != nil {
		return nil, err
	}
	return &token, nil
}

// CurrentUser fetches the authenticated profile. Issued only after a login
// has yielded a token.
func (c *Client) CurrentUser(ctx context.Context) (*model.User, error) {
	var user model.User
	if err := c.do(ctx, "current_user", "GET", pathMe, nil, nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
