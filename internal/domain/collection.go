package domain

import (
	"time"

	"linguista/internal/slug"

	"github.com/google/uuid"
)

const (
	MaxCollectionTitleLength       = 32
	MaxCollectionDescriptionLength = 128
)

// Collection is a named group of words owned by a user
type Collection struct {
	ID          uuid.UUID
	Author      *User
	Title       string
	Description string
	Slug        string
	Created     time.Time
	Modified    *time.Time
	WordsCount  int
}

func (c *Collection) SetSlug(s string) { c.Slug = s }

var CollectionSlug = slug.NewFiller(
	slug.Attr("title", func(c *Collection) string { return c.Title }),
	slug.Related("author.username",
		func(c *Collection) *User { return c.Author },
		func(u *User) string { return u.Username }),
)

// CollectionUpdate holds mutable collection fields
type CollectionUpdate struct {
	Description *string
}
