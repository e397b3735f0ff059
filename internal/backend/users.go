package backend

import (
	"context"
	"net/http"
	"net/url"
	"strconv"

	"github.com/jwalitptl/hospital-console/internal/model"
)

// ListUsers fetches the accounts of one role, in server order.
func (c *Client) ListUsers(ctx context.Context, token string, role model.Role) ([]model.Account, error) {
	var accounts []model.Account
	q := url.Values{"role": []string{string(role)}}
	if err := c.do(ctx, "list_users", http.MethodGet, "/users/", q, token, nil, &accounts); err != nil {
		return nil, err
	}
	return accounts, nil
}

func (c *Client) CreateUser(ctx context.Context, token string, req model.CreateAccountRequest) (model.Account, error) {
	var created model.Account
	if err := c.do(ctx, "create_user", http.MethodPost, "/users/", nil, token, req, &created); err != nil {
		return model.Account{}, err
	}
	return created, nil
}

func (c *Client) UpdateUser(ctx context.Context, token string, id int64, req model.UpdateAccountRequest) (model.Account, error) {
	var updated model.Account
	if err := c.do(ctx, "update_user", http.MethodPut, userPath(id), nil, token, req, &updated); err != nil {
		return model.Account{}, err
	}
	return updated, nil
}

func (c *Client) DeleteUser(ctx context.Context, token string, id int64) error {
	return c.do(ctx, "delete_user", http.MethodDelete, userPath(id), nil, token, nil, nil)
}

func userPath(id int64) string {
	return "/users/" + strconv.FormatInt(id, 10)
}
