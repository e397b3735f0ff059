// Package session is the single place the console reads and writes the
// signed-in user's token and profile.
package session

import (
	"context"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-console/internal/config"
	"github.com/jwalitptl/hospital-console/internal/model"
)

// Session is what the console knows about the signed-in user. The token is
// opaque; only the backend can tell whether it is still valid.
type Session struct {
	Token   string
	Profile model.Profile
}

type Store struct {
	cfg      config.SessionConfig
	profiles ProfileStore
}

func NewStore(cfg config.SessionConfig, profiles ProfileStore) *Store {
	return &Store{cfg: cfg, profiles: profiles}
}

// NewProfileStore builds the profile store named in cfg.
func NewProfileStore(ctx context.Context, cfg config.SessionConfig) (ProfileStore, error) {
	switch cfg.ProfileStore {
	case "", "memory":
		return NewMemoryProfiles(cfg.TTL), nil
	case "redis":
		return NewRedisProfiles(ctx, cfg.RedisURL)
	default:
		return nil, fmt.Errorf("unknown profile store %q", cfg.ProfileStore)
	}
}

// Token returns the bearer token from the request cookie.
func (s *Store) Token(c *gin.Context) (string, bool) {
	token, err := c.Cookie(s.cfg.CookieName)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Get returns the current session. A token without a stored profile still
// counts; the profile is then empty.
func (s *Store) Get(c *gin.Context) (Session, bool) {
	token, ok := s.Token(c)
	if !ok {
		return Session{}, false
	}
	sess := Session{Token: token}
	p, found, err := s.profiles.Get(c.Request.Context(), token)
	if err != nil {
		log.Ctx(c.Request.Context()).Warn().Err(err).Msg("profile lookup failed")
	}
	if found {
		sess.Profile = p
	}
	return sess, true
}

// Set stores the token cookie and the profile for the session lifetime.
func (s *Store) Set(c *gin.Context, sess Session) error {
	if err := s.profiles.Set(c.Request.Context(), sess.Token, sess.Profile, s.cfg.TTL); err != nil {
		return fmt.Errorf("store profile: %w", err)
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, sess.Token, int(s.cfg.TTL.Seconds()), "/", "", s.cfg.Secure, true)
	return nil
}

// Clear expires the cookie and forgets the profile.
func (s *Store) Clear(c *gin.Context) {
	if token, ok := s.Token(c); ok {
		if err := s.profiles.Delete(c.Request.Context(), token); err != nil {
			log.Ctx(c.Request.Context()).Warn().Err(err).Msg("profile delete failed")
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(s.cfg.CookieName, "", -1, "/", "", s.cfg.Secure, true)
}
