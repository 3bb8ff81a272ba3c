package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/ppandzharov/blogadmin/internal/common"
	"github.com/ppandzharov/blogadmin/internal/logging"
	"github.com/ppandzharov/blogadmin/internal/server/auth"
	"github.com/ppandzharov/blogadmin/internal/server/config"
	"github.com/ppandzharov/blogadmin/internal/server/models"
	"github.com/ppandzharov/blogadmin/internal/server/repositories/repomanager"
)

// PostService manages blog posts and signed draft-preview links.
type PostService struct {
	db              *sql.DB
	repomanager     repomanager.RepositoryManager
	previewSecret   []byte
	previewLifetime time.Duration
	logger          logging.Logger
}

func NewPostService(db *sql.DB, m repomanager.RepositoryManager, cfg *config.Config, l logging.Logger) *PostService {
	return &PostService{
		db:              db,
		repomanager:     m,
		previewSecret:   []byte(cfg.PreviewSecret),
		previewLifetime: cfg.PreviewLifetime,
		logger:          l.With("module", "post_service"),
	}
}

// PostInput carries the writable fields of a post.
type PostInput struct {
	Title     string
	Slug      string
	Body      string
	Published bool
}

func (s *PostService) Create(ctx context.Context, in PostInput) (*models.Post, error) {
	now := time.Now()
	post := &models.Post{
		ID:        uuid.NewString(),
		Title:     in.Title,
		Slug:      in.Slug,
		Body:      in.Body,
		Published: in.Published,
		CreatedAt: now,
		UpdatedAt: now,
	}

	repo := s.repomanager.Posts(s.db)
	if err := repo.Create(ctx, post); err != nil {
		return nil, fmt.Errorf("error creating post: %v", err)
	}
	return post, nil
}

func (s *PostService) Get(ctx context.Context, id string) (*models.Post, error) {
	return s.repomanager.Posts(s.db).FindByID(ctx, id)
}

func (s *PostService) List(ctx context.Context, publishedOnly bool) ([]*models.Post, error) {
	return s.repomanager.Posts(s.db).List(ctx, publishedOnly)
}

func (s *PostService) Update(ctx context.Context, id string, in PostInput) (*models.Post, error) {
	repo := s.repomanager.Posts(s.db)

	post, err := repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}

	post.Title = in.Title
	post.Slug = in.Slug
	post.Body = in.Body
	post.Published = in.Published
	post.UpdatedAt = time.Now()

	if err := repo.Update(ctx, post); err != nil {
		return nil, err
	}
	return post, nil
}

func (s *PostService) Delete(ctx context.Context, id string) error {
	return s.repomanager.Posts(s.db).Delete(ctx, id)
}

// PreviewToken signs a short-lived token granting sessionless read access to
// a single post, so a draft can be shared before publishing.
func (s *PostService) PreviewToken(ctx context.Context, postID string) (string, error) {
	if _, err := s.repomanager.Posts(s.db).FindByID(ctx, postID); err != nil {
		return "", err
	}
	return auth.GeneratePreviewToken(postID, s.previewSecret, s.previewLifetime)
}

// FromPreviewToken resolves a preview token to the post it was issued for.
func (s *PostService) FromPreviewToken(ctx context.Context, token string) (*models.Post, error) {
	postID, err := auth.PostIDFromPreviewToken(token, s.previewSecret)
	if err != nil {
		return nil, common.ErrInvalidPreviewToken
	}

	post, err := s.repomanager.Posts(s.db).FindByID(ctx, postID)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			return nil, common.ErrInvalidPreviewToken
		}
		return nil, common.ErrorInternal
	}
	return post, nil
}
