package service

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"linguista/internal/apperr"
	"linguista/internal/domain"
	"linguista/internal/permission"
	"linguista/internal/repository"

	"github.com/google/uuid"
)

// CollectionInput is the payload for a new collection
type CollectionInput struct {
	Title       string
	Description string
	Words       []string
}

// CollectionService manages word collections
type CollectionService struct {
	collections repository.CollectionRepository
	words       repository.WordRepository
	now         func() time.Time
}

// NewCollectionService creates a new collection service
func NewCollectionService(collections repository.CollectionRepository, words repository.WordRepository) *CollectionService {
	return &CollectionService{collections: collections, words: words, now: time.Now}
}

// Create makes a collection, optionally seeded with words by slug
func (s *CollectionService) Create(ctx context.Context, user *domain.User, in CollectionInput) (*domain.Collection, error) {
	in.Title = strings.TrimSpace(in.Title)

	var verr apperr.ValidationError
	checkLength(&verr, "title", in.Title, 1, domain.MaxCollectionTitleLength)
	checkLength(&verr, "description", in.Description, 0, domain.MaxCollectionDescriptionLength)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	wordIDs, err := s.resolveWords(ctx, user, in.Words)
	if err != nil {
		return nil, err
	}

	c := &domain.Collection{
		ID:          uuid.New(),
		Author:      user,
		Title:       in.Title,
		Description: in.Description,
		Created:     s.now(),
	}
	if _, err := domain.CollectionSlug.Fill(c); err != nil {
		return nil, err
	}
	if err := s.collections.Create(ctx, c); err != nil {
		return nil, err
	}

	if len(wordIDs) > 0 {
		if err := s.collections.AddWords(ctx, c.ID, wordIDs); err != nil {
			return nil, err
		}
		c.WordsCount = len(wordIDs)
	}
	return c, nil
}

// List returns one page of the user's collections
func (s *CollectionService) List(ctx context.Context, user *domain.User, page domain.PageRequest) ([]domain.Collection, int, error) {
	return s.collections.List(ctx, user.ID, page.Normalize())
}

// Get returns a collection of the user
func (s *CollectionService) Get(ctx context.Context, user *domain.User, slug string) (*domain.Collection, error) {
	return s.own(ctx, user, slug, http.MethodGet)
}

// Update changes the collection description
func (s *CollectionService) Update(ctx context.Context, user *domain.User, slug string, upd domain.CollectionUpdate) (*domain.Collection, error) {
	c, err := s.own(ctx, user, slug, http.MethodPatch)
	if err != nil {
		return nil, err
	}
	if upd.Description == nil {
		return c, nil
	}

	var verr apperr.ValidationError
	checkLength(&verr, "description", *upd.Description, 0, domain.MaxCollectionDescriptionLength)
	if err := verr.OrNil(); err != nil {
		return nil, err
	}

	c.Description = *upd.Description
	now := s.now()
	c.Modified = &now
	if err := s.collections.Update(ctx, c); err != nil {
		return nil, err
	}
	return c, nil
}

// Delete removes a collection
func (s *CollectionService) Delete(ctx context.Context, user *domain.User, slug string) error {
	c, err := s.own(ctx, user, slug, http.MethodDelete)
	if err != nil {
		return err
	}
	return s.collections.Delete(ctx, c.ID)
}

// AddWords puts the user's words into a collection
func (s *CollectionService) AddWords(ctx context.Context, user *domain.User, slug string, words []string) (*domain.Collection, error) {
	c, err := s.own(ctx, user, slug, http.MethodPost)
	if err != nil {
		return nil, err
	}
	if len(words) == 0 {
		return nil, apperr.Invalid("words", "This field is required.")
	}

	ids, err := s.resolveWords(ctx, user, words)
	if err != nil {
		return nil, err
	}
	if err := s.collections.AddWords(ctx, c.ID, ids); err != nil {
		return nil, err
	}
	return s.collections.GetBySlug(ctx, slug)
}

func (s *CollectionService) own(ctx context.Context, user *domain.User, slug, method string) (*domain.Collection, error) {
	c, err := s.collections.GetBySlug(ctx, slug)
	if err != nil {
		return nil, err
	}
	if c.Author == nil || c.Author.ID != user.ID {
		return nil, apperr.ErrNotFound
	}
	req := permission.Request{Method: method, User: user, AuthorID: c.Author.ID}
	if err := (permission.IsAuthorOrReadOnly{}).Allow(ctx, req); err != nil {
		return nil, err
	}
	return c, nil
}

func (s *CollectionService) resolveWords(ctx context.Context, user *domain.User, slugs []string) ([]uuid.UUID, error) {
	ids := make([]uuid.UUID, 0, len(slugs))
	for _, slug := range slugs {
		w, err := s.words.GetBySlug(ctx, slug)
		if err != nil && !isNotFound(err) {
			return nil, err
		}
		if err != nil || w.Author == nil || w.Author.ID != user.ID {
			return nil, apperr.Invalid("words", "Object with slug="+slug+" does not exist.")
		}
		ids = append(ids, w.ID)
	}
	return ids, nil
}

func isNotFound(err error) bool {
	return errors.Is(err, apperr.ErrNotFound)
}
