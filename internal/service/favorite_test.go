package service

import (
	"context"
	"testing"

	"linguista/internal/apperr"
	"linguista/internal/domain"
	"linguista/internal/repository"
	"linguista/internal/testutil"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type favoriteMocks struct {
	favorites   *testutil.MockFavoriteRepository
	words       *testutil.MockWordRepository
	collections *testutil.MockCollectionRepository
	exercises   *testutil.MockExerciseRepository
}

func newFavoriteService() (*FavoriteService, favoriteMocks) {
	m := favoriteMocks{
		favorites:   new(testutil.MockFavoriteRepository),
		words:       new(testutil.MockWordRepository),
		collections: new(testutil.MockCollectionRepository),
		exercises:   new(testutil.MockExerciseRepository),
	}
	return NewFavoriteService(m.favorites, m.words, m.collections, m.exercises), m
}

func TestFavoriteService_AddWord(t *testing.T) {
	s, m := newFavoriteService()
	user := testutil.NewTestUser("alice")
	word := testutil.NewTestWord(user, "apple", testutil.NewTestLanguage("en", "English"))

	m.words.On("GetBySlug", mock.Anything, word.Slug).Return(word, nil)
	m.favorites.On("Add", mock.Anything, domain.FavoriteWord, user.ID, word.ID).Return(nil)

	require.NoError(t, s.AddWord(context.Background(), user, word.Slug))
	m.favorites.AssertExpectations(t)
}

func TestFavoriteService_AddWord_Twice(t *testing.T) {
	s, m := newFavoriteService()
	user := testutil.NewTestUser("alice")
	word := testutil.NewTestWord(user, "apple", testutil.NewTestLanguage("en", "English"))

	m.words.On("GetBySlug", mock.Anything, word.Slug).Return(word, nil)
	m.favorites.On("Add", mock.Anything, domain.FavoriteWord, user.ID, word.ID).Return(apperr.ErrAlreadyExists)

	err := s.AddWord(context.Background(), user, word.Slug)

	assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
}

func TestFavoriteService_ForeignObjectsAreHidden(t *testing.T) {
	s, m := newFavoriteService()
	user := testutil.NewTestUser("alice")
	bob := testutil.NewTestUser("bob")
	word := testutil.NewTestWord(bob, "apple", testutil.NewTestLanguage("en", "English"))
	coll := &domain.Collection{ID: uuid.New(), Author: bob, Slug: "fruit-bob"}

	m.words.On("GetBySlug", mock.Anything, word.Slug).Return(word, nil)
	m.collections.On("GetBySlug", mock.Anything, coll.Slug).Return(coll, nil)

	assert.ErrorIs(t, s.AddWord(context.Background(), user, word.Slug), apperr.ErrNotFound)
	assert.ErrorIs(t, s.RemoveWord(context.Background(), user, word.Slug), apperr.ErrNotFound)
	assert.ErrorIs(t, s.AddCollection(context.Background(), user, coll.Slug), apperr.ErrNotFound)
	m.favorites.AssertNotCalled(t, "Add", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	m.favorites.AssertNotCalled(t, "Remove", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestFavoriteService_Words(t *testing.T) {
	s, m := newFavoriteService()
	user := testutil.NewTestUser("alice")

	m.words.On("List", mock.Anything, repository.WordFilter{AuthorID: user.ID, Favorite: true},
		domain.PageRequest{Page: 1, Limit: domain.DefaultPageSize}).Return([]domain.Word{}, 0, nil)

	_, _, err := s.Words(context.Background(), user, domain.PageRequest{})

	require.NoError(t, err)
	m.words.AssertExpectations(t)
}

func TestFavoriteService_Exercises(t *testing.T) {
	s, m := newFavoriteService()
	user := testutil.NewTestUser("alice")
	ex := &domain.Exercise{ID: uuid.New(), Name: "Translator", Slug: "translator"}

	m.exercises.On("GetBySlug", mock.Anything, "translator").Return(ex, nil)
	m.favorites.On("Add", mock.Anything, domain.FavoriteExercise, user.ID, ex.ID).Return(nil)
	m.favorites.On("Remove", mock.Anything, domain.FavoriteExercise, user.ID, ex.ID).Return(apperr.ErrNotFound)
	m.favorites.On("Exercises", mock.Anything, user.ID).Return([]domain.Exercise{*ex}, nil)

	require.NoError(t, s.AddExercise(context.Background(), user, "translator"))
	list, err := s.Exercises(context.Background(), user)
	require.NoError(t, err)
	assert.Len(t, list, 1)
	assert.ErrorIs(t, s.RemoveExercise(context.Background(), user, "translator"), apperr.ErrNotFound)
}
