package remote

import (
	"context"
	"strings"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/repository"
)

// UserAPI is the slice of the backend client the account repository uses.
type UserAPI interface {
	ListUsers(ctx context.Context, token string, role model.Role) ([]model.Account, error)
	CreateUser(ctx context.Context, token string, req model.CreateAccountRequest) (model.Account, error)
	UpdateUser(ctx context.Context, token string, id int64, req model.UpdateAccountRequest) (model.Account, error)
	DeleteUser(ctx context.Context, token string, id int64) error
}

// AccountRepository manages the accounts of a single role through the
// backend's /users endpoints.
type AccountRepository struct {
	api    UserAPI
	tokens repository.TokenSource
	role   model.Role
}

var _ repository.Repository[model.Account, model.AccountInput] = (*AccountRepository)(nil)

func NewAccountRepository(api UserAPI, tokens repository.TokenSource, role model.Role) *AccountRepository {
	return &AccountRepository{api: api, tokens: tokens, role: role}
}

func (r *AccountRepository) Role() model.Role {
	return r.role
}

func (r *AccountRepository) List(ctx context.Context) ([]model.Account, error) {
	accounts, err := r.api.ListUsers(ctx, r.tokens.Token(), r.role)
	if err != nil {
		return nil, err
	}

	// The role query is a hint some backends ignore; keep only this screen's role.
	out := accounts[:0:0]
	for _, a := range accounts {
		if a.Role == r.role {
			out = append(out, a)
		}
	}
	return out, nil
}

func (r *AccountRepository) Create(ctx context.Context, in model.AccountInput) (model.Account, error) {
	return r.api.CreateUser(ctx, r.tokens.Token(), model.CreateAccountRequest{
		Username: strings.TrimSpace(in.Username),
		Password: in.Password,
		Role:     r.role,
		Branch:   in.Branch,
	})
}

// Update sends a partial update. A blank password is left out of the request
// entirely so the stored password stays as it is.
func (r *AccountRepository) Update(ctx context.Context, id int64, in model.AccountInput) (model.Account, error) {
	req := model.UpdateAccountRequest{
		Role:     r.role,
		Branch:   in.Branch,
		Username: strings.TrimSpace(in.Username),
	}
	if strings.TrimSpace(in.Password) != "" {
		req.Password = in.Password
	}
	return r.api.UpdateUser(ctx, r.tokens.Token(), id, req)
}

func (r *AccountRepository) Delete(ctx context.Context, id int64) error {
	return r.api.DeleteUser(ctx, r.tokens.Token(), id)
}
