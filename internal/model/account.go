package model

type Role string

const (
	RoleDoctor Role = "doctor"
	RoleStaff  Role = "staff"
	RoleAdmin  Role = "admin"
)

type Branch string

const (
	BranchCentral Branch = "central"
	BranchA       Branch = "branch_a"
	BranchB       Branch = "branch_b"
)

// Branches lists the selectable branches in display order.
var Branches = []Branch{BranchCentral, BranchA, BranchB}

func (b Branch) Valid() bool {
	for _, v := range Branches {
		if b == v {
			return true
		}
	}
	return false
}

// Account is a doctor or staff login managed through the backend's /users
// endpoints. The password is write-only and never appears here.
type Account struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
	Branch   Branch `json:"branch"`
}

func (a Account) EntityID() int64 { return a.ID }

func (a Account) WithID(id int64) Account {
	a.ID = id
	return a
}

// AccountInput is what the account form hands to the controller. The role
// is not part of it: each screen manages exactly one role.
type AccountInput struct {
	Username string
	Password string
	Branch   Branch
}

type CreateAccountRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
	Role     Role   `json:"role" binding:"required"`
	Branch   Branch `json:"branch" binding:"required"`
}

// UpdateAccountRequest is a partial update: a blank password is omitted
// from the JSON body, which the backend reads as "unchanged".
type UpdateAccountRequest struct {
	Role     Role   `json:"role" binding:"required"`
	Branch   Branch `json:"branch" binding:"required"`
	Username string `json:"username,omitempty"`
	Password string `json:"password,omitempty"`
}
