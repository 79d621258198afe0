package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"miniblog/app/middleware"
	"miniblog/app/models"
	"miniblog/app/services"
	"miniblog/app/sessions"

	"go.uber.org/zap"
)

// AuthController handles the registration, login and logout flows of the
// web surface.
type AuthController struct {
	auth      *services.AuthService
	store     *sessions.Store
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewAuthController creates a new AuthController with templates loaded
// relative to basePath.
func NewAuthController(auth *services.AuthService, store *sessions.Store, basePath string, log *zap.Logger) *AuthController {
	return &AuthController{
		auth:      auth,
		store:     store,
		templates: loadTemplates(basePath),
		log:       log,
	}
}

// RegisterForm displays the registration form
func (ac *AuthController) RegisterForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "register", viewData{})
}

// Register handles a registration submission. On success the user gets a
// session immediately; on failure the form is re-rendered with a message
// and nothing is persisted.
func (ac *AuthController) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.render(w, r, "register", viewData{Error: "Server error"})
		return
	}

	user, err := ac.auth.Register(
		r.FormValue("username"),
		r.FormValue("email"),
		r.FormValue("password"),
	)
	switch {
	case errors.Is(err, services.ErrValidation):
		ac.render(w, r, "register", viewData{Error: "All fields required"})
	case errors.Is(err, services.ErrConflict):
		ac.render(w, r, "register", viewData{Error: "User exists"})
	case err != nil:
		ac.log.Error("registration failed", zap.Error(err))
		ac.render(w, r, "register", viewData{Error: "Server error"})
	default:
		ac.establishSession(w, r, user, "register")
	}
}

// LoginForm displays the login form
func (ac *AuthController) LoginForm(w http.ResponseWriter, r *http.Request) {
	ac.render(w, r, "login", viewData{})
}

// Login handles a login submission. Unknown email and wrong password
// surface the same message.
func (ac *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		ac.render(w, r, "login", viewData{Error: "Server error"})
		return
	}

	user, err := ac.auth.Login(r.FormValue("email"), r.FormValue("password"))
	switch {
	case errors.Is(err, services.ErrValidation):
		ac.render(w, r, "login", viewData{Error: "All fields required"})
	case errors.Is(err, services.ErrInvalidCredentials):
		ac.render(w, r, "login", viewData{Error: "Invalid credentials"})
	case err != nil:
		ac.log.Error("login failed", zap.Error(err))
		ac.render(w, r, "login", viewData{Error: "Server error"})
	default:
		ac.establishSession(w, r, user, "login")
	}
}

// Logout destroys the current session and clears the cookie. Logging out
// without a session is not an error.
func (ac *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.SessionToken(r); token != "" {
		ac.store.Destroy(token)
	}
	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    "",
		Path:     "/",
		HttpOnly: true,
		MaxAge:   -1,
	})
	http.Redirect(w, r, "/login", http.StatusSeeOther)
}

// establishSession snapshots the user into a new session and redirects to
// the post listing. The user already exists at this point; only the
// session can still fail.
func (ac *AuthController) establishSession(w http.ResponseWriter, r *http.Request, user *models.User, page string) {
	token, err := ac.store.Create(models.Session{
		UserID:   user.ID,
		Username: user.Username,
		Email:    user.Email,
	})
	if err != nil {
		ac.log.Error("session creation failed", zap.Error(err))
		ac.render(w, r, page, viewData{Error: "Server error"})
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     middleware.SessionCookieName,
		Value:    token,
		Path:     "/",
		HttpOnly: true,
	})
	http.Redirect(w, r, "/posts", http.StatusSeeOther)
}

func (ac *AuthController) render(w http.ResponseWriter, r *http.Request, name string, data viewData) {
	data.CurrentUser = middleware.CurrentSession(r)
	if err := ac.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		ac.log.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
