// Package posts declares the repository contract for blog posts.
package posts

import (
	"context"

	"github.com/ppandzharov/blogadmin/internal/server/models"
)

// Repository defines CRUD operations over stored blog posts.
type Repository interface {
	// Create inserts a new post.
	Create(ctx context.Context, post *models.Post) error

	// FindByID returns the post with the given id, or common.ErrorNotFound.
	FindByID(ctx context.Context, id string) (*models.Post, error)

	// List returns all posts, newest first. When publishedOnly is true,
	// drafts are excluded.
	List(ctx context.Context, publishedOnly bool) ([]*models.Post, error)

	// Update replaces the post's mutable fields (title, slug, body,
	// published, updated_at).
	Update(ctx context.Context, post *models.Post) error

	// Delete removes a post by id. Deleting a missing post returns
	// common.ErrorNotFound.
	Delete(ctx context.Context, id string) error
}
