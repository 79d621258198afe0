package controllers

import (
	"html/template"
	"path/filepath"

	"miniblog/app/models"
)

// viewData is the data passed to every rendered page. CurrentUser drives
// the layout's navigation; the other fields are per-page.
type viewData struct {
	CurrentUser *models.Session
	Error       string
	Message     string
	Post        *models.Post
	Posts       []*models.Post
}

// loadTemplates loads and parses all templates
func loadTemplates(basePath string) map[string]*template.Template {
	templates := make(map[string]*template.Template)
	pages := map[string]string{
		"index":    "app/views/posts/index.html",
		"show":     "app/views/posts/show.html",
		"new":      "app/views/posts/new.html",
		"edit":     "app/views/posts/edit.html",
		"register": "app/views/auth/register.html",
		"login":    "app/views/auth/login.html",
	}
	for name, page := range pages {
		templates[name] = template.Must(template.ParseFiles(
			filepath.Join(basePath, "app/views/layout.html"),
			filepath.Join(basePath, page),
		))
	}
	return templates
}
