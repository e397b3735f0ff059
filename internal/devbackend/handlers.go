package devbackend

import (
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/jwalitptl/hospital-console/internal/model"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
	"github.com/jwalitptl/hospital-console/pkg/httputil"
)

const ctxAccount = "account"

func (s *Server) login(c *gin.Context) {
	var req model.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, bindingDetail(err))
		return
	}

	s.mu.RLock()
	a := s.findByUsername(req.Username)
	s.mu.RUnlock()
	if a == nil || s.hasher.Compare(a.passwordHash, req.Password) != nil {
		detail(c, http.StatusUnauthorized, "Incorrect username or password")
		return
	}

	token, err := s.sign(a.Account)
	if err != nil {
		detail(c, http.StatusInternalServerError, "could not issue token")
		return
	}

	c.JSON(http.StatusOK, model.LoginResponse{
		AccessToken: token,
		TokenType:   "bearer",
		Role:        a.Role,
		Branch:      a.Branch,
	})
}

func (s *Server) authenticate() gin.HandlerFunc {
	return func(c *gin.Context) {
		raw, ok := strings.CutPrefix(c.GetHeader("Authorization"), "Bearer ")
		if !ok || raw == "" {
			detail(c, http.StatusUnauthorized, "Not authenticated")
			return
		}

		claims, err := s.tokens.ValidateToken(raw)
		if err != nil {
			detail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		id, err := claims.AccountID()
		if err != nil {
			detail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		s.mu.RLock()
		a := s.findByID(id)
		s.mu.RUnlock()
		if a == nil {
			detail(c, http.StatusUnauthorized, "Could not validate credentials")
			return
		}

		c.Set(ctxAccount, a.Account)
		c.Next()
	}
}

func (s *Server) requireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		a := c.MustGet(ctxAccount).(model.Account)
		if a.Role != model.RoleAdmin {
			detail(c, http.StatusForbidden, "Only admins can manage users")
			return
		}
		c.Next()
	}
}

func (s *Server) listUsers(c *gin.Context) {
	c.JSON(http.StatusOK, s.Accounts(model.Role(c.Query("role"))))
}

func (s *Server) createUser(c *gin.Context) {
	var req model.CreateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, bindingDetail(err))
		return
	}
	if msg := checkRoleBranch(req.Role, req.Branch); msg != "" {
		detail(c, http.StatusUnprocessableEntity, msg)
		return
	}

	created, err := s.AddAccount(req.Username, req.Password, req.Role, req.Branch)
	if err != nil {
		detail(c, http.StatusBadRequest, "Username already registered")
		return
	}
	c.JSON(http.StatusOK, created)
}

func (s *Server) updateUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid user id")
		return
	}

	var req model.UpdateAccountRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		detail(c, http.StatusUnprocessableEntity, bindingDetail(err))
		return
	}
	if msg := checkRoleBranch(req.Role, req.Branch); msg != "" {
		detail(c, http.StatusUnprocessableEntity, msg)
		return
	}

	var hash string
	if req.Password != "" {
		if hash, err = s.hasher.Hash(req.Password); err != nil {
			detail(c, http.StatusInternalServerError, "could not hash password")
			return
		}
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	a := s.findByID(id)
	if a == nil {
		httputil.RespondWithError(c, apperrors.NotFound("User", nil))
		return
	}
	if req.Username != "" && req.Username != a.Username {
		if s.findByUsername(req.Username) != nil {
			detail(c, http.StatusBadRequest, "Username already registered")
			return
		}
		a.Username = req.Username
	}
	a.Role = req.Role
	a.Branch = req.Branch
	if hash != "" {
		a.passwordHash = hash
	}

	c.JSON(http.StatusOK, a.Account)
}

func (s *Server) deleteUser(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		detail(c, http.StatusUnprocessableEntity, "invalid user id")
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		httputil.RespondWithError(c, apperrors.NotFound("User", nil))
		return
	}
	s.accounts = append(s.accounts[:i], s.accounts[i+1:]...)
	c.JSON(http.StatusOK, gin.H{"message": "User deleted"})
}

func checkRoleBranch(role model.Role, branch model.Branch) string {
	switch role {
	case model.RoleDoctor, model.RoleStaff, model.RoleAdmin:
	default:
		return "role must be one of doctor, staff, admin"
	}
	if !branch.Valid() {
		return "branch must be one of central, branch_a, branch_b"
	}
	return ""
}

func detail(c *gin.Context, status int, msg string) {
	httputil.AbortWithDetail(c, status, msg)
}

func bindingDetail(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		msgs := make([]string, 0, len(verrs))
		for _, fe := range verrs {
			msgs = append(msgs, strings.ToLower(fe.Field())+" is "+fe.Tag())
		}
		return strings.Join(msgs, "; ")
	}
	return "invalid request body"
}
