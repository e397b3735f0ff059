package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jwalitptl/hospital-console/internal/config"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/pkg/circuitbreaker"
)

func testConfig() config.SessionConfig {
	return config.SessionConfig{CookieName: "access_token", TTL: 24 * time.Hour}
}

func newContext(cookie *http.Cookie) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != nil {
		c.Request.AddCookie(cookie)
	}
	return c, w
}

func TestSetWritesCookieAndProfile(t *testing.T) {
	profiles := NewMemoryProfiles(time.Hour)
	store := NewStore(testConfig(), profiles)

	c, w := newContext(nil)
	profile := model.Profile{Username: "admin", Role: model.RoleAdmin, Branch: model.BranchCentral}
	require.NoError(t, store.Set(c, Session{Token: "tok", Profile: profile}))

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "access_token", cookies[0].Name)
	assert.Equal(t, "tok", cookies[0].Value)
	assert.Equal(t, 86400, cookies[0].MaxAge)
	assert.True(t, cookies[0].HttpOnly)

	got, ok, err := profiles.Get(context.Background(), "tok")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, profile, got)
}

func TestGetReadsCookie(t *testing.T) {
	profiles := NewMemoryProfiles(time.Hour)
	store := NewStore(testConfig(), profiles)
	require.NoError(t, profiles.Set(context.Background(), "tok", model.Profile{Role: model.RoleAdmin}, time.Hour))

	c, _ := newContext(&http.Cookie{Name: "access_token", Value: "tok"})
	sess, ok := store.Get(c)
	require.True(t, ok)
	assert.Equal(t, "tok", sess.Token)
	assert.Equal(t, model.RoleAdmin, sess.Profile.Role)

	c, _ = newContext(nil)
	_, ok = store.Get(c)
	assert.False(t, ok)

	// a token without a stored profile is still a session
	c, _ = newContext(&http.Cookie{Name: "access_token", Value: "other"})
	sess, ok = store.Get(c)
	require.True(t, ok)
	assert.Empty(t, sess.Profile.Role)
}

func TestClear(t *testing.T) {
	profiles := NewMemoryProfiles(time.Hour)
	store := NewStore(testConfig(), profiles)
	require.NoError(t, profiles.Set(context.Background(), "tok", model.Profile{Role: model.RoleAdmin}, time.Hour))

	c, w := newContext(&http.Cookie{Name: "access_token", Value: "tok"})
	store.Clear(c)

	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "", cookies[0].Value)
	assert.Less(t, cookies[0].MaxAge, 0)

	_, ok, err := profiles.Get(context.Background(), "tok")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestNewProfileStore(t *testing.T) {
	ps, err := NewProfileStore(context.Background(), config.SessionConfig{ProfileStore: "memory", TTL: time.Hour})
	require.NoError(t, err)
	assert.IsType(t, &MemoryProfiles{}, ps)

	_, err = NewProfileStore(context.Background(), config.SessionConfig{ProfileStore: "disk"})
	assert.Error(t, err)

	_, err = NewProfileStore(context.Background(), config.SessionConfig{ProfileStore: "redis", RedisURL: "not a url"})
	assert.ErrorContains(t, err, "parse Redis URL")
}

func TestRedisProfilesBreakerOpens(t *testing.T) {
	client := redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", DialTimeout: 100 * time.Millisecond, MaxRetries: -1})
	t.Cleanup(func() { client.Close() })
	r := newRedisProfiles(client)
	ctx := context.Background()

	for range 5 {
		_, _, err := r.Get(ctx, "tok")
		require.Error(t, err)
		assert.NotErrorIs(t, err, circuitbreaker.ErrOpen)
	}
	_, _, err := r.Get(ctx, "tok")
	assert.ErrorIs(t, err, circuitbreaker.ErrOpen)
	assert.ErrorIs(t, r.Set(ctx, "tok", model.Profile{}, time.Hour), circuitbreaker.ErrOpen)
	assert.Equal(t, "profile:tok", r.key("tok"))
}
