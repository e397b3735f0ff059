// Package handler holds what the console's gin handlers share.
package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/jwalitptl/hospital-console/internal/screen"
	"github.com/jwalitptl/hospital-console/internal/session"
)

// Sessions is the part of the session store the handlers use.
type Sessions interface {
	Get(c *gin.Context) (session.Session, bool)
	Set(c *gin.Context, sess session.Session) error
	Clear(c *gin.Context)
}

// Workspaces hands out the screens that belong to one token.
type Workspaces interface {
	Get(token string) *screen.Set
	Drop(token string)
}

// EndSession forgets everything held for the caller's session and sends
// them to the login page.
func EndSession(c *gin.Context, sessions Sessions, workspaces Workspaces, loginPath string) {
	if sess, ok := sessions.Get(c); ok {
		workspaces.Drop(sess.Token)
	}
	sessions.Clear(c)
	c.Redirect(http.StatusFound, loginPath)
	c.Abort()
}
