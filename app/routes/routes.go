package routes

import (
	"net/http"

	"miniblog/app/controllers"
	"miniblog/app/middleware"
	"miniblog/app/repositories"
	"miniblog/app/services"
	"miniblog/app/sessions"

	"github.com/dgraph-io/badger/v4"
	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

// SetupRoutes wires both the web and the JSON API surface onto a single
// router, backed by the given Badger DB and session store. basePath is
// where templates are resolved from; empty means the working directory.
func SetupRoutes(db *badger.DB, store *sessions.Store, basePath string, log *zap.Logger) http.Handler {
	userRepo := repositories.NewBadgerUserRepository(db)
	postRepo := repositories.NewBadgerPostRepository(db)

	authService := services.NewAuthService(userRepo)
	postService := services.NewPostService(postRepo, userRepo)

	authController := controllers.NewAuthController(authService, store, basePath, log)
	postController := controllers.NewPostController(postService, store, basePath, log)
	apiController := controllers.NewAPIPostController(postService, log)

	router := mux.NewRouter()
	router.Use(middleware.LoadSession(store))

	// API routes
	api := router.PathPrefix("/api").Subrouter()
	apiPosts := api.PathPrefix("/posts").Subrouter()
	apiPosts.HandleFunc("", apiController.Index).Methods("GET")
	apiPosts.HandleFunc("/{id}", apiController.Show).Methods("GET")
	apiPosts.Handle("", middleware.RequireSessionJSON(http.HandlerFunc(apiController.Create))).Methods("POST")
	apiPosts.Handle("/{id}", middleware.RequireSessionJSON(http.HandlerFunc(apiController.Update))).Methods("PUT")
	apiPosts.Handle("/{id}", middleware.RequireSessionJSON(http.HandlerFunc(apiController.Delete))).Methods("DELETE")

	// Auth flows
	router.HandleFunc("/register", authController.RegisterForm).Methods("GET")
	router.HandleFunc("/register", authController.Register).Methods("POST")
	router.HandleFunc("/login", authController.LoginForm).Methods("GET")
	router.HandleFunc("/login", authController.Login).Methods("POST")
	router.HandleFunc("/logout", authController.Logout).Methods("POST")

	// Web routes
	router.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/posts", http.StatusFound)
	}).Methods("GET")

	posts := router.PathPrefix("/posts").Subrouter()
	posts.HandleFunc("", postController.Index).Methods("GET")
	posts.Handle("/new", middleware.RequireSession(http.HandlerFunc(postController.New))).Methods("GET")
	posts.Handle("", middleware.RequireSession(http.HandlerFunc(postController.Create))).Methods("POST")
	posts.HandleFunc("/{id}", postController.Show).Methods("GET")
	posts.Handle("/{id}/edit", middleware.RequireSession(http.HandlerFunc(postController.Edit))).Methods("GET")
	posts.Handle("/{id}", middleware.RequireSession(http.HandlerFunc(postController.Update))).Methods("PUT")
	posts.Handle("/{id}", middleware.RequireSession(http.HandlerFunc(postController.Delete))).Methods("DELETE")

	// Mux dispatches Use middleware only after a route matches, and it
	// matches on the original method. The override has to rewrite the verb
	// before matching or form-driven PUT/DELETE requests die with a 405,
	// so it wraps the router from outside along with the logger and the
	// recoverer.
	handler := middleware.MethodOverride(router)
	handler = middleware.Recoverer(log)(handler)
	handler = middleware.RequestLogger(log)(handler)
	return handler
}

// StartServer starts the HTTP server on the specified address with the given router.
func StartServer(addr string, router http.Handler) error {
	return http.ListenAndServe(addr, router)
}
