package service

import (
	"context"

	"linguista/internal/apperr"
	"linguista/internal/domain"
	"linguista/internal/repository"
)

// FavoriteService bookmarks words, collections and exercises for a user
type FavoriteService struct {
	favorites   repository.FavoriteRepository
	words       repository.WordRepository
	collections repository.CollectionRepository
	exercises   repository.ExerciseRepository
}

// NewFavoriteService creates a new favorites service
func NewFavoriteService(
	favorites repository.FavoriteRepository,
	words repository.WordRepository,
	collections repository.CollectionRepository,
	exercises repository.ExerciseRepository,
) *FavoriteService {
	return &FavoriteService{
		favorites:   favorites,
		words:       words,
		collections: collections,
		exercises:   exercises,
	}
}

// AddWord bookmarks one of the user's words
func (s *FavoriteService) AddWord(ctx context.Context, user *domain.User, slug string) error {
	w, err := s.words.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !ownedBy(w.Author, user) {
		return apperr.ErrNotFound
	}
	return s.favorites.Add(ctx, domain.FavoriteWord, user.ID, w.ID)
}

// RemoveWord drops a word bookmark
func (s *FavoriteService) RemoveWord(ctx context.Context, user *domain.User, slug string) error {
	w, err := s.words.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !ownedBy(w.Author, user) {
		return apperr.ErrNotFound
	}
	return s.favorites.Remove(ctx, domain.FavoriteWord, user.ID, w.ID)
}

// Words returns one page of the user's favorite words
func (s *FavoriteService) Words(ctx context.Context, user *domain.User, page domain.PageRequest) ([]domain.Word, int, error) {
	f := repository.WordFilter{AuthorID: user.ID, Favorite: true}
	return s.words.List(ctx, f, page.Normalize())
}

// AddCollection bookmarks one of the user's collections
func (s *FavoriteService) AddCollection(ctx context.Context, user *domain.User, slug string) error {
	c, err := s.collections.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !ownedBy(c.Author, user) {
		return apperr.ErrNotFound
	}
	return s.favorites.Add(ctx, domain.FavoriteCollection, user.ID, c.ID)
}

// RemoveCollection drops a collection bookmark
func (s *FavoriteService) RemoveCollection(ctx context.Context, user *domain.User, slug string) error {
	c, err := s.collections.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	if !ownedBy(c.Author, user) {
		return apperr.ErrNotFound
	}
	return s.favorites.Remove(ctx, domain.FavoriteCollection, user.ID, c.ID)
}

// Collections returns one page of the user's favorite collections
func (s *FavoriteService) Collections(ctx context.Context, user *domain.User, page domain.PageRequest) ([]domain.Collection, int, error) {
	return s.favorites.Collections(ctx, user.ID, page.Normalize())
}

// AddExercise bookmarks an exercise
func (s *FavoriteService) AddExercise(ctx context.Context, user *domain.User, slug string) error {
	e, err := s.exercises.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.favorites.Add(ctx, domain.FavoriteExercise, user.ID, e.ID)
}

// RemoveExercise drops an exercise bookmark
func (s *FavoriteService) RemoveExercise(ctx context.Context, user *domain.User, slug string) error {
	e, err := s.exercises.GetBySlug(ctx, slug)
	if err != nil {
		return err
	}
	return s.favorites.Remove(ctx, domain.FavoriteExercise, user.ID, e.ID)
}

// Exercises returns the user's favorite exercises
func (s *FavoriteService) Exercises(ctx context.Context, user *domain.User) ([]domain.Exercise, error) {
	return s.favorites.Exercises(ctx, user.ID)
}

func ownedBy(author *domain.User, user *domain.User) bool {
	return author != nil && author.ID == user.ID
}
