package domain

import (
	"time"

	userdomain "github.com/asafonov/blog-backend/internal/user/domain"
)

type ID string

type Post struct {
	ID      ID
	Title   string
	Content string
	// AuthorID is set at creation and never changes afterwards; it is an
	// ownership reference, not a managed foreign key.
	AuthorID  userdomain.ID
	CreatedAt time.Time
}
