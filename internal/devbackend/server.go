// Package devbackend is an in-memory stand-in for the hospital REST backend.
// It implements the /login and /users contract the console consumes so the
// console can run locally and be tested end to end.
package devbackend

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/pkg/auth"
	"github.com/jwalitptl/hospital-console/pkg/security"
)

type Config struct {
	JWTSecret     string
	TokenTTL      time.Duration
	AdminUsername string
	AdminPassword string
	AdminBranch   model.Branch
	BcryptCost    int
}

type account struct {
	model.Account
	passwordHash string
}

type Server struct {
	mu       sync.RWMutex
	accounts []*account
	nextID   int64
	hits     map[string]int

	tokens auth.JWTService
	hasher security.PasswordHasher
	engine *gin.Engine
}

func New(cfg Config) (*Server, error) {
	if cfg.JWTSecret == "" {
		return nil, errors.New("devbackend: jwt secret is required")
	}
	if cfg.AdminUsername == "" || cfg.AdminPassword == "" {
		return nil, errors.New("devbackend: admin credentials are required")
	}
	if cfg.TokenTTL <= 0 {
		cfg.TokenTTL = 24 * time.Hour
	}
	if cfg.BcryptCost == 0 {
		cfg.BcryptCost = bcrypt.DefaultCost
	}
	if !cfg.AdminBranch.Valid() {
		cfg.AdminBranch = model.BranchCentral
	}

	s := &Server{
		hits:   make(map[string]int),
		tokens: auth.NewJWTService(cfg.JWTSecret, cfg.TokenTTL),
		hasher: security.NewBcryptHasher(cfg.BcryptCost),
	}
	if _, err := s.AddAccount(cfg.AdminUsername, cfg.AdminPassword, model.RoleAdmin, cfg.AdminBranch); err != nil {
		return nil, err
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), s.countHits())
	engine.POST("/login", s.login)

	users := engine.Group("/users", s.authenticate(), s.requireAdmin())
	{
		users.GET("/", s.listUsers)
		users.POST("/", s.createUser)
		users.PUT("/:id", s.updateUser)
		users.DELETE("/:id", s.deleteUser)
	}
	s.engine = engine
	return s, nil
}

func (s *Server) Handler() http.Handler {
	return s.engine
}

// AddAccount seeds an account directly, bypassing the HTTP API.
func (s *Server) AddAccount(username, password string, role model.Role, branch model.Branch) (model.Account, error) {
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return model.Account{}, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.findByUsername(username) != nil {
		return model.Account{}, fmt.Errorf("username %q already registered", username)
	}
	s.nextID++
	a := &account{
		Account:      model.Account{ID: s.nextID, Username: username, Role: role, Branch: branch},
		passwordHash: hash,
	}
	s.accounts = append(s.accounts, a)
	return a.Account, nil
}

// Accounts returns what GET /users/?role= would return.
func (s *Server) Accounts(role model.Role) []model.Account {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]model.Account, 0, len(s.accounts))
	for _, a := range s.accounts {
		if role == "" || a.Role == role {
			out = append(out, a.Account)
		}
	}
	return out
}

// CheckPassword reports whether password is the stored password of username.
func (s *Server) CheckPassword(username, password string) bool {
	s.mu.RLock()
	a := s.findByUsername(username)
	s.mu.RUnlock()
	if a == nil {
		return false
	}
	return s.hasher.Compare(a.passwordHash, password) == nil
}

// Hits counts requests per "METHOD route", e.g. "DELETE /users/:id".
func (s *Server) Hits(method, route string) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.hits[method+" "+route]
}

// IssueToken signs an access token for an existing account.
func (s *Server) IssueToken(id int64) (string, error) {
	s.mu.RLock()
	a := s.findByID(id)
	s.mu.RUnlock()
	if a == nil {
		return "", fmt.Errorf("account %d not found", id)
	}
	return s.sign(a.Account)
}

func (s *Server) sign(a model.Account) (string, error) {
	return s.tokens.GenerateAccessToken(a.ID, string(a.Role), string(a.Branch))
}

func (s *Server) countHits() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()
		route := c.FullPath()
		if route == "" {
			return
		}
		s.mu.Lock()
		s.hits[c.Request.Method+" "+route]++
		s.mu.Unlock()
	}
}

// callers hold s.mu
func (s *Server) findByUsername(username string) *account {
	for _, a := range s.accounts {
		if a.Username == username {
			return a
		}
	}
	return nil
}

func (s *Server) findByID(id int64) *account {
	for _, a := range s.accounts {
		if a.ID == id {
			return a
		}
	}
	return nil
}

func (s *Server) indexOf(id int64) int {
	return slices.IndexFunc(s.accounts, func(a *account) bool { return a.ID == id })
}
