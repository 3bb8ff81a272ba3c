// Package httpapi exposes the admin REST API over HTTP: session cookie
// handling, the auth middleware, and handlers for users, posts, images, and
// the sitemap. It maps service outcomes to the JSON shapes the admin
// frontend expects and never leaks which internal step failed.
package httpapi

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/ppandzharov/blogadmin/internal/logging"
	"github.com/ppandzharov/blogadmin/internal/server/config"
	"github.com/ppandzharov/blogadmin/internal/server/models"
	"github.com/ppandzharov/blogadmin/internal/server/services"
)

// AuthService is the slice of the auth service the HTTP layer needs.
type AuthService interface {
	Login(ctx context.Context, email, password string) (*services.LoginResult, error)
	Authenticate(ctx context.Context, adminID, token string) error
	Logout(ctx context.Context, adminID string) error
	ChangePassword(ctx context.Context, adminID, currentPassword, newPassword string) error
}

// PostService is the slice of the post service the HTTP layer needs.
type PostService interface {
	Create(ctx context.Context, in services.PostInput) (*models.Post, error)
	Get(ctx context.Context, id string) (*models.Post, error)
	List(ctx context.Context, publishedOnly bool) ([]*models.Post, error)
	Update(ctx context.Context, id string, in services.PostInput) (*models.Post, error)
	Delete(ctx context.Context, id string) error
	PreviewToken(ctx context.Context, postID string) (string, error)
	FromPreviewToken(ctx context.Context, token string) (*models.Post, error)
}

// ImageService is the slice of the image service the HTTP layer needs.
type ImageService interface {
	PresignUpload(ctx context.Context, filename string) (string, string, error)
	ImageURL(key string) string
}

type Server struct {
	addr          string
	adminOrigin   string
	siteURL       string
	secureCookies bool
	logger        logging.Logger
	auth          AuthService
	posts         PostService
	images        ImageService
}

func NewServer(cfg *config.Config, l logging.Logger, as AuthService, ps PostService, is ImageService) *Server {
	return &Server{
		addr:          cfg.EndpointAddr,
		adminOrigin:   cfg.AdminOrigin,
		siteURL:       cfg.SiteURL,
		secureCookies: cfg.SecureCookies,
		logger:        l.With("module", "http_server"),
		auth:          as,
		posts:         ps,
		images:        is,
	}
}

// Router builds the chi router with CORS for the admin origin and the
// session middleware on protected routes.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(chimw.Recoverer)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{s.adminOrigin},
		AllowedMethods:   []string{"GET", "PUT", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Content-Type"},
		AllowCredentials: true,
	}))

	// Public routes.
	r.Put("/users/login", s.handleLogin)
	r.Get("/users/authenticate", s.handleAuthenticate)
	r.Put("/users/remove-admin-user-cookie", s.handleRemoveCookie)
	r.Get("/posts/preview", s.handlePreviewPost)
	r.Get("/sitemap.xml", s.handleSitemap)

	// Routes requiring a valid admin session.
	r.Group(func(r chi.Router) {
		r.Use(s.requireAdmin)

		r.Put("/users/logout", s.handleLogout)
		r.Put("/users/change-password", s.handleChangePassword)

		r.Get("/posts", s.handleListPosts)
		r.Post("/posts", s.handleCreatePost)
		r.Get("/posts/{id}", s.handleGetPost)
		r.Put("/posts/{id}", s.handleUpdatePost)
		r.Delete("/posts/{id}", s.handleDeletePost)
		r.Post("/posts/{id}/preview-token", s.handlePreviewToken)

		r.Post("/images/presign", s.handlePresignImage)
	})

	return r
}

// Run starts the HTTP server and shuts it down gracefully when ctx is
// cancelled.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:    s.addr,
		Handler: s.Router(),
	}

	go func() {
		<-ctx.Done()
		s.logger.Info(ctx, "Stopping HTTP server...")
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	s.logger.Info(ctx, "Starting HTTP server", "address", s.addr)

	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}
