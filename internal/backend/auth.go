package backend

import (
	"context"
	"net/http"

	"github.com/jwalitptl/hospital-console/internal/model"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

// Login exchanges credentials for a bearer token and the caller's profile.
// A 401 comes back as KindUnauthorized.
func (c *Client) Login(ctx context.Context, req model.LoginRequest) (*model.LoginResponse, error) {
	var resp model.LoginResponse
	if err := c.do(ctx, "login", http.MethodPost, "/login", nil, "", req, &resp); err != nil {
		return nil, err
	}
	if resp.AccessToken == "" {
		return nil, apperrors.Validation(http.StatusBadGateway, "login response did not contain a token")
	}
	return &resp, nil
}
