package models

import "time"

// Post is a blog post managed through the admin API. Unpublished posts are
// only reachable with an admin session or a signed preview token.
type Post struct {
	ID        string
	Title     string
	Slug      string
	Body      string
	Published bool
	CreatedAt time.Time
	UpdatedAt time.Time
}
