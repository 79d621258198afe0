package controllers

import (
	"errors"
	"html/template"
	"net/http"

	"miniblog/app/middleware"
	"miniblog/app/repositories"
	"miniblog/app/services"
	"miniblog/app/sessions"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// listLimit caps how many posts the web listing shows.
const listLimit = 50

// PostController handles the web (HTML) surface for blog posts. Routes
// that mutate state are mounted behind the session guard; ownership is
// enforced here and in the service.
type PostController struct {
	posts     *services.PostService
	store     *sessions.Store
	templates map[string]*template.Template
	log       *zap.Logger
}

// NewPostController creates a new PostController with templates loaded
// relative to basePath.
func NewPostController(posts *services.PostService, store *sessions.Store, basePath string, log *zap.Logger) *PostController {
	return &PostController{
		posts:     posts,
		store:     store,
		templates: loadTemplates(basePath),
		log:       log,
	}
}

// Index lists the newest posts. A pending flash message left by a prior
// delete is drained here: reading it clears it.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	posts, err := pc.posts.ListPosts(listLimit)
	if err != nil {
		pc.log.Error("list posts failed", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	var message string
	if token := middleware.SessionToken(r); token != "" {
		message = pc.store.PopFlash(token)
	}

	pc.render(w, r, "index", viewData{Posts: posts, Message: message})
}

// New displays the form for creating a new post
func (pc *PostController) New(w http.ResponseWriter, r *http.Request) {
	pc.render(w, r, "new", viewData{})
}

// Create handles the new-post form submission. Any failure re-renders the
// form with a generic message; success redirects to the post's detail
// view.
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		pc.render(w, r, "new", viewData{Error: "Error creating post"})
		return
	}

	session := middleware.CurrentSession(r)
	post, err := pc.posts.CreatePost(r.FormValue("title"), r.FormValue("body"), session.UserID)
	if err != nil {
		if !errors.Is(err, services.ErrValidation) {
			pc.log.Error("create post failed", zap.Error(err))
		}
		pc.render(w, r, "new", viewData{Error: "Error creating post"})
		return
	}

	http.Redirect(w, r, "/posts/"+post.ID, http.StatusSeeOther)
}

// Show displays a single post. A missing post is a hard 404, unlike the
// edit/update/delete flows which redirect back to the listing.
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := pc.posts.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Error(w, "Not found", http.StatusNotFound)
		return
	}
	if err != nil {
		pc.log.Error("get post failed", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	pc.render(w, r, "show", viewData{Post: post})
}

// Edit displays the edit form for a post the current user owns.
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	post, err := pc.posts.GetPost(id)
	if errors.Is(err, repositories.ErrNotFound) {
		http.Redirect(w, r, "/posts", http.StatusFound)
		return
	}
	if err != nil {
		pc.log.Error("get post failed", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
		return
	}

	session := middleware.CurrentSession(r)
	if services.CheckOwner(post, session.UserID) != nil {
		http.Error(w, "Forbidden", http.StatusForbidden)
		return
	}

	pc.render(w, r, "edit", viewData{Post: post})
}

// Update overwrites the post's title and body from the form. Submitted
// fields replace the stored values unconditionally, blanks included.
func (pc *PostController) Update(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	session := middleware.CurrentSession(r)

	post, err := pc.posts.UpdatePost(id, session.UserID, r.FormValue("title"), r.FormValue("body"))
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.Redirect(w, r, "/posts", http.StatusFound)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case err != nil:
		pc.log.Error("update post failed", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
	default:
		http.Redirect(w, r, "/posts/"+post.ID, http.StatusSeeOther)
	}
}

// Delete removes the post and leaves a one-shot flash message for the
// listing page.
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]
	session := middleware.CurrentSession(r)

	err := pc.posts.DeletePost(id, session.UserID)
	switch {
	case errors.Is(err, repositories.ErrNotFound):
		http.Redirect(w, r, "/posts", http.StatusFound)
	case errors.Is(err, services.ErrForbidden):
		http.Error(w, "Forbidden", http.StatusForbidden)
	case err != nil:
		pc.log.Error("delete post failed", zap.Error(err))
		http.Error(w, "Server error", http.StatusInternalServerError)
	default:
		if token := middleware.SessionToken(r); token != "" {
			pc.store.SetFlash(token, "Post deleted successfully.")
		}
		http.Redirect(w, r, "/posts", http.StatusSeeOther)
	}
}

func (pc *PostController) render(w http.ResponseWriter, r *http.Request, name string, data viewData) {
	data.CurrentUser = middleware.CurrentSession(r)
	if err := pc.templates[name].ExecuteTemplate(w, "layout", data); err != nil {
		pc.log.Error("template error", zap.String("template", name), zap.Error(err))
		http.Error(w, "Internal Server Error", http.StatusInternalServerError)
	}
}
