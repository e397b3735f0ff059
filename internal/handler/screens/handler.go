// Package screens serves the dashboard and every entity screen. The state
// behind each page lives in the caller's workspace; these handlers only
// translate requests into screen operations and render the result.
package screens

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/rs/zerolog/log"

	"github.com/jwalitptl/hospital-console/internal/form"
	"github.com/jwalitptl/hospital-console/internal/handler"
	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/screen"
	"github.com/jwalitptl/hospital-console/internal/session"
	"github.com/jwalitptl/hospital-console/internal/view"
	apperrors "github.com/jwalitptl/hospital-console/pkg/errors"
)

type Handler struct {
	sessions   handler.Sessions
	workspaces handler.Workspaces
	loginPath  string
	catalog    []screen.Meta
}

func NewHandler(sessions handler.Sessions, workspaces handler.Workspaces, loginPath string, catalog []screen.Meta) *Handler {
	return &Handler{sessions: sessions, workspaces: workspaces, loginPath: loginPath, catalog: catalog}
}

// request is one call's view of the caller's workspace.
type request struct {
	sess   session.Session
	set    *screen.Set
	screen screen.Screen
}

type action func(c *gin.Context, r request)

func (h *Handler) RegisterRoutes(r gin.IRoutes) {
	r.GET("/", h.Dashboard)
	for _, m := range h.catalog {
		r.GET(m.Path, h.on(m.Name, h.List))
		r.POST(m.Path, h.on(m.Name, h.Create))
		r.POST(m.Path+"/refresh", h.on(m.Name, h.Refresh))
		r.GET(m.Path+"/new", h.on(m.Name, h.New))
		r.POST(m.Path+"/cancel", h.on(m.Name, h.Cancel))
		r.POST(m.Path+"/:id", h.on(m.Name, h.Update))
		r.GET(m.Path+"/:id/edit", h.on(m.Name, h.Edit))
		r.GET(m.Path+"/:id/delete", h.on(m.Name, h.ConfirmDelete))
		r.POST(m.Path+"/:id/delete", h.on(m.Name, h.Delete))
		r.GET(m.Path+"/:id/pay", h.on(m.Name, h.PaymentForm))
		r.POST(m.Path+"/:id/pay", h.on(m.Name, h.Pay))
	}
}

func (h *Handler) on(name string, fn action) gin.HandlerFunc {
	return func(c *gin.Context) {
		sess, ok := h.sessions.Get(c)
		if !ok {
			c.Redirect(http.StatusFound, h.loginPath)
			return
		}
		set := h.workspaces.Get(sess.Token)
		sc, ok := set.Get(name)
		if !ok {
			c.Status(http.StatusNotFound)
			return
		}
		fn(c, request{sess: sess, set: set, screen: sc})
	}
}

// expired ends the session when err says the backend no longer accepts
// the token.
func (h *Handler) expired(c *gin.Context, err error) bool {
	if !apperrors.Is(err, apperrors.KindUnauthorized) {
		return false
	}
	log.Ctx(c.Request.Context()).Info().Msg("backend rejected the session token")
	handler.EndSession(c, h.sessions, h.workspaces, h.loginPath)
	return true
}

func (h *Handler) render(c *gin.Context, r request, status int, opts screen.Options, notice string) {
	page := r.screen.Page(opts)
	if notice != "" {
		page.Notice = notice
	}
	m := r.screen.Meta()
	c.HTML(status, "list.html", view.ListPage{
		Shell: view.NewShell(m.Title, m.Path, r.sess.Profile, r.set.All()),
		Page:  page,
	})
}

func (h *Handler) back(c *gin.Context, r request) {
	c.Redirect(http.StatusSeeOther, r.screen.Meta().Path)
}

// mount loads the screen on its first visit. A failed load is shown on
// the page itself, so only an expired session stops the request.
func (h *Handler) mount(c *gin.Context, r request) bool {
	if err := r.screen.Mount(c.Request.Context()); err != nil {
		return !h.expired(c, err)
	}
	return true
}

func (h *Handler) List(c *gin.Context, r request) {
	if q, ok := c.GetQuery("q"); ok {
		r.screen.SetFilter(q)
	}
	if !h.mount(c, r) {
		return
	}
	h.render(c, r, http.StatusOK, screen.Options{}, "")
}

func (h *Handler) Refresh(c *gin.Context, r request) {
	if err := r.screen.Refresh(c.Request.Context()); err != nil && h.expired(c, err) {
		return
	}
	h.back(c, r)
}

func (h *Handler) New(c *gin.Context, r request) {
	if !h.mount(c, r) {
		return
	}
	r.screen.OpenCreate()
	h.render(c, r, http.StatusOK, screen.Options{}, "")
}

func (h *Handler) Edit(c *gin.Context, r request) {
	id, ok := h.id(c, r)
	if !ok || !h.mount(c, r) {
		return
	}
	if err := r.screen.OpenEdit(id); err != nil {
		h.render(c, r, apperrors.StatusOf(err), screen.Options{}, apperrors.UserMessage(err))
		return
	}
	h.render(c, r, http.StatusOK, screen.Options{}, "")
}

func (h *Handler) Cancel(c *gin.Context, r request) {
	r.screen.Cancel()
	h.back(c, r)
}

func (h *Handler) Create(c *gin.Context, r request) {
	h.submit(c, r, 0)
}

func (h *Handler) Update(c *gin.Context, r request) {
	if id, ok := h.id(c, r); ok {
		h.submit(c, r, id)
	}
}

func (h *Handler) submit(c *gin.Context, r request, id int64) {
	act, arg := c.PostForm("action"), ""
	if v, ok := c.GetPostForm("remove"); ok {
		act, arg = form.ActionRemoveService, v
	}

	saved, err := r.screen.Submit(c.Request.Context(), id, bindForm(c), act, arg)
	switch {
	case saved:
		h.back(c, r)
	case err == nil:
		h.render(c, r, http.StatusOK, screen.Options{}, "")
	case h.expired(c, err):
	case errors.Is(err, listing.ErrInFlight):
		h.back(c, r)
	default:
		h.render(c, r, http.StatusUnprocessableEntity, screen.Options{}, "")
	}
}

func (h *Handler) ConfirmDelete(c *gin.Context, r request) {
	id, ok := h.id(c, r)
	if !ok || !h.mount(c, r) {
		return
	}
	h.render(c, r, http.StatusOK, screen.Options{ConfirmID: id}, "")
}

// Delete needs confirm=yes; anything else leaves the row alone.
func (h *Handler) Delete(c *gin.Context, r request) {
	id, ok := h.id(c, r)
	if !ok {
		return
	}
	err := r.screen.Delete(c.Request.Context(), id, c.PostForm("confirm") == "yes")
	if err != nil && h.expired(c, err) {
		return
	}
	h.back(c, r)
}

func (h *Handler) PaymentForm(c *gin.Context, r request) {
	p, id, ok := h.payable(c, r)
	if !ok || !h.mount(c, r) {
		return
	}
	if err := p.OpenPayment(id); err != nil {
		h.render(c, r, apperrors.StatusOf(err), screen.Options{}, apperrors.UserMessage(err))
		return
	}
	h.render(c, r, http.StatusOK, screen.Options{}, "")
}

func (h *Handler) Pay(c *gin.Context, r request) {
	p, id, ok := h.payable(c, r)
	if !ok {
		return
	}
	err := p.Pay(c.Request.Context(), id, bindForm(c))
	switch {
	case err == nil, errors.Is(err, listing.ErrInFlight):
		h.back(c, r)
	case h.expired(c, err):
	case apperrors.Is(err, apperrors.KindNotFound):
		h.render(c, r, http.StatusNotFound, screen.Options{}, apperrors.UserMessage(err))
	default:
		h.render(c, r, http.StatusUnprocessableEntity, screen.Options{}, "")
	}
}

func (h *Handler) payable(c *gin.Context, r request) (screen.Payable, int64, bool) {
	p, ok := r.screen.(screen.Payable)
	if !ok {
		c.Status(http.StatusNotFound)
		return nil, 0, false
	}
	id, ok := h.id(c, r)
	return p, id, ok
}

func (h *Handler) id(c *gin.Context, r request) (int64, bool) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil || id <= 0 {
		h.render(c, r, http.StatusNotFound, screen.Options{}, "That record does not exist.")
		return 0, false
	}
	return id, true
}

func bindForm(c *gin.Context) screen.Binder {
	return func(ptr any) error {
		return c.ShouldBindWith(ptr, binding.Form)
	}
}

// Dashboard mounts every screen and shows their headline figures.
func (h *Handler) Dashboard(c *gin.Context) {
	sess, ok := h.sessions.Get(c)
	if !ok {
		c.Redirect(http.StatusFound, h.loginPath)
		return
	}
	set := h.workspaces.Get(sess.Token)

	page := view.DashboardPage{Shell: view.NewShell("Dashboard", "/", sess.Profile, set.All())}
	if err := set.MountAll(c.Request.Context()); err != nil {
		if h.expired(c, err) {
			return
		}
		page.Error = apperrors.UserMessage(err)
	}
	for _, sc := range set.All() {
		m := sc.Meta()
		page.Sections = append(page.Sections, view.Section{Title: m.Title, Path: m.Path, Stats: sc.Stats()})
	}
	c.HTML(http.StatusOK, "dashboard.html", page)
}
