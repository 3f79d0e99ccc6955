package service

import (
	"context"
	"errors"
	"testing"

	"linguista/internal/domain"
	"linguista/internal/testutil"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestWordTypeService_Import(t *testing.T) {
	types := new(testutil.MockWordTypeRepository)
	s := NewWordTypeService(types)

	types.On("Upsert", mock.Anything, mock.MatchedBy(func(wt *domain.WordType) bool {
		return wt.Slug != "" && !wt.Created.IsZero()
	})).Return(nil)

	n, err := s.Import(context.Background(), []domain.WordType{{Name: "Noun", Sorting: 3}, {Name: "Phrasal verb"}})

	require.NoError(t, err)
	assert.Equal(t, 2, n)
	types.AssertNumberOfCalls(t, "Upsert", 2)
}

func TestWordTypeService_Import_StopsOnError(t *testing.T) {
	types := new(testutil.MockWordTypeRepository)
	s := NewWordTypeService(types)

	types.On("Upsert", mock.Anything, mock.Anything).Return(errors.New("db down")).Once()

	n, err := s.Import(context.Background(), []domain.WordType{{Name: "Noun"}, {Name: "Verb"}})

	assert.Error(t, err)
	assert.Equal(t, 0, n)
	types.AssertNumberOfCalls(t, "Upsert", 1)
}
