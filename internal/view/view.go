// Package view holds the console's embedded templates and stylesheet and
// the view models they render.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io/fs"
	"strings"

	"github.com/jwalitptl/hospital-console/internal/listing"
	"github.com/jwalitptl/hospital-console/internal/model"
	"github.com/jwalitptl/hospital-console/internal/screen"
)

//go:embed templates/*.html
var templateFS embed.FS

//go:embed static
var staticFS embed.FS

// Templates parses every page template with the shared partials.
func Templates() (*template.Template, error) {
	t, err := template.New("").Funcs(funcs).ParseFS(templateFS, "templates/*.html")
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}
	return t, nil
}

// MustTemplates is Templates for program start.
func MustTemplates() *template.Template {
	return template.Must(Templates())
}

// Static is the stylesheet tree, rooted so that "console.css" is at the top.
func Static() fs.FS {
	sub, err := fs.Sub(staticFS, "static")
	if err != nil {
		panic(err)
	}
	return sub
}

var funcs = template.FuncMap{
	"lower": strings.ToLower,
	"initial": func(s string) string {
		if s == "" {
			return "?"
		}
		return strings.ToUpper(s[:1])
	},
	"title": func(s string) string {
		if s == "" {
			return s
		}
		return strings.ToUpper(s[:1]) + s[1:]
	},
}

// NavItem is one navigation entry.
type NavItem struct {
	Label  string
	Path   string
	Active bool
}

// Shell is what every signed-in page shares.
type Shell struct {
	Title   string
	Nav     []NavItem
	Profile model.Profile
}

// NewShell builds the navigation with the entry at active highlighted.
func NewShell(title, active string, profile model.Profile, screens []screen.Screen) Shell {
	nav := make([]NavItem, 0, len(screens)+1)
	nav = append(nav, NavItem{Label: "Dashboard", Path: "/", Active: active == "/"})
	for _, sc := range screens {
		m := sc.Meta()
		nav = append(nav, NavItem{Label: m.Title, Path: m.Path, Active: active == m.Path})
	}
	return Shell{Title: title, Nav: nav, Profile: profile}
}

type LoginPage struct {
	Title    string
	Username string
	Error    string
}

type DashboardPage struct {
	Shell
	Sections []Section
	Error    string
}

type Section struct {
	Title string
	Path  string
	Stats []listing.Stat
}

type ListPage struct {
	Shell
	screen.Page
}
