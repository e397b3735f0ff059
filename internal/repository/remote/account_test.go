package remote

import (
	"context"
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/repository"
)

type MockUserAPI struct {
	mock.Mock
}

func (m *MockUserAPI) ListUsers(ctx context.Context, token string, role model.Role) ([]model.Account, error) {
	args := m.Called(ctx, token, role)
	return args.Get(0).([]model.Account), args.Error(1)
}

func (m *MockUserAPI) CreateUser(ctx context.Context, token string, req model.CreateAccountRequest) (model.Account, error) {
	args := m.Called(ctx, token, req)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockUserAPI) UpdateUser(ctx context.Context, token string, id int64, req model.UpdateAccountRequest) (model.Account, error) {
	args := m.Called(ctx, token, id, req)
	return args.Get(0).(model.Account), args.Error(1)
}

func (m *MockUserAPI) DeleteUser(ctx context.Context, token string, id int64) error {
	args := m.Called(ctx, token, id)
	return args.Error(0)
}

func TestListKeepsOnlyRole(t *testing.T) {
	api := &MockUserAPI{}
	repo := NewAccountRepository(api, repository.StaticToken("tok"), model.RoleDoctor)

	api.On("ListUsers", mock.Anything, "tok", model.RoleDoctor).Return([]model.Account{
		{ID: 1, Username: "dr.a", Role: model.RoleDoctor},
		{ID: 2, Username: "admin", Role: model.RoleAdmin},
		{ID: 3, Username: "dr.b", Role: model.RoleDoctor},
	}, nil)

	got, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []model.Account{
		{ID: 1, Username: "dr.a", Role: model.RoleDoctor},
		{ID: 3, Username: "dr.b", Role: model.RoleDoctor},
	}, got)
	api.AssertExpectations(t)
}

func TestCreateFixesRole(t *testing.T) {
	api := &MockUserAPI{}
	repo := NewAccountRepository(api, repository.StaticToken("tok"), model.RoleStaff)

	want := model.CreateAccountRequest{Username: "nurse", Password: "pw", Role: model.RoleStaff, Branch: model.BranchA}
	api.On("CreateUser", mock.Anything, "tok", want).Return(model.Account{ID: 9, Username: "nurse", Role: model.RoleStaff, Branch: model.BranchA}, nil)

	got, err := repo.Create(context.Background(), model.AccountInput{Username: " nurse ", Password: "pw", Branch: model.BranchA})
	require.NoError(t, err)
	assert.Equal(t, int64(9), got.ID)
	api.AssertExpectations(t)
}

func TestUpdateOmitsBlankPassword(t *testing.T) {
	api := &MockUserAPI{}
	repo := NewAccountRepository(api, repository.StaticToken("tok"), model.RoleDoctor)

	api.On("UpdateUser", mock.Anything, "tok", int64(4), mock.MatchedBy(func(req model.UpdateAccountRequest) bool {
		body, err := json.Marshal(req)
		if err != nil {
			return false
		}
		var fields map[string]any
		if err := json.Unmarshal(body, &fields); err != nil {
			return false
		}
		_, hasPassword := fields["password"]
		return !hasPassword && fields["role"] == "doctor" && fields["branch"] == "branch_b"
	})).Return(model.Account{ID: 4}, nil)

	_, err := repo.Update(context.Background(), 4, model.AccountInput{Username: "dr.a", Password: "   ", Branch: model.BranchB})
	require.NoError(t, err)
	api.AssertExpectations(t)
}

func TestUpdateSendsNewPassword(t *testing.T) {
	api := &MockUserAPI{}
	repo := NewAccountRepository(api, repository.StaticToken("tok"), model.RoleDoctor)

	api.On("UpdateUser", mock.Anything, "tok", int64(4), model.UpdateAccountRequest{
		Role: model.RoleDoctor, Branch: model.BranchA, Username: "dr.a", Password: "new-secret",
	}).Return(model.Account{ID: 4}, nil)

	_, err := repo.Update(context.Background(), 4, model.AccountInput{Username: "dr.a", Password: "new-secret", Branch: model.BranchA})
	require.NoError(t, err)
	api.AssertExpectations(t)
}
