package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"linguista/internal/apperr"
	"linguista/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestWordTypeRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("FROM word_types ty ORDER BY words_count DESC, ty.sorting DESC, ty.name").
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "sorting", "created", "words_count"}).
			AddRow(uuid.NewString(), "Noun", "noun", 1000, time.Now(), 4).
			AddRow(uuid.NewString(), "Idiom", "idiom", 0, time.Now(), 0))

	types, err := NewWordTypeRepo(db).List(context.Background())

	require.NoError(t, err)
	require.Len(t, types, 2)
	assert.Equal(t, "noun", types[0].Slug)
	assert.Equal(t, 4, types[0].WordsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordTypeRepo_FindByNames(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery("WHERE LOWER\\(name\\) = ANY\\(\\$1\\)").
		WithArgs(sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "slug", "sorting", "created"}).
			AddRow(uuid.NewString(), "Noun", "noun", 1000, time.Now()))

	types, err := NewWordTypeRepo(db).FindByNames(context.Background(), []string{"NOUN"})

	require.NoError(t, err)
	require.Len(t, types, 1)
	assert.Equal(t, "Noun", types[0].Name)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordTypeRepo_Set(t *testing.T) {
	t.Run("replaces types", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		wordID, noun, verb := uuid.New(), uuid.New(), uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM word_types_words WHERE word_id = \\$1").
			WithArgs(wordID).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO word_types_words").
			WithArgs(wordID, noun).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec("INSERT INTO word_types_words").
			WithArgs(wordID, verb).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err = NewWordTypeRepo(db).Set(context.Background(), wordID, []uuid.UUID{noun, verb})

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("rolls back on failure", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		wordID := uuid.New()
		mock.ExpectBegin()
		mock.ExpectExec("DELETE FROM word_types_words").
			WillReturnResult(sqlmock.NewResult(0, 0))
		mock.ExpectExec("INSERT INTO word_types_words").
			WillReturnError(errors.New("connection reset"))
		mock.ExpectRollback()

		err = NewWordTypeRepo(db).Set(context.Background(), wordID, []uuid.UUID{uuid.New()})

		require.Error(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestWordTypeRepo_Upsert(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	existing := uuid.New()
	wt := &domain.WordType{ID: uuid.New(), Name: "Noun", Slug: "noun", Sorting: 1000, Created: time.Now()}
	mock.ExpectQuery("INSERT INTO word_types .+ ON CONFLICT \\(name\\) DO UPDATE").
		WithArgs(wt.ID, "Noun", "noun", 1000, sqlmock.AnyArg()).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(existing.String()))

	err = NewWordTypeRepo(db).Upsert(context.Background(), wt)

	require.NoError(t, err)
	assert.Equal(t, existing, wt.ID)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordLinkRepo_Create(t *testing.T) {
	t.Run("saves", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		l := &domain.WordLink{ID: uuid.New(), Kind: domain.LinkAntonym, ToWordID: uuid.New(),
			Word: &domain.Word{ID: uuid.New()}, Note: "", Created: time.Now()}
		mock.ExpectExec("INSERT INTO word_links").
			WithArgs(l.ID, "antonym", l.ToWordID, l.Word.ID, "", sqlmock.AnyArg()).
			WillReturnResult(sqlmock.NewResult(0, 1))

		require.NoError(t, NewWordLinkRepo(db).Create(context.Background(), l))
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate link", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectExec("INSERT INTO word_links").
			WillReturnError(&pq.Error{Code: "23505"})

		err = NewWordLinkRepo(db).Create(context.Background(), &domain.WordLink{Kind: domain.LinkSynonym, Word: &domain.Word{}})

		assert.ErrorIs(t, err, apperr.ErrAlreadyExists)
	})
}

func TestWordLinkRepo_List(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	toWord := uuid.New()
	columns := append([]string{"link_id", "kind", "to_word_id", "link_note", "link_created"}, wordRowColumns...)
	mock.ExpectQuery("FROM word_links wl JOIN words w ON w.id = wl.from_word_id .+ WHERE wl.kind = \\$1 AND wl.to_word_id = \\$2").
		WithArgs("synonym", toWord).
		WillReturnRows(sqlmock.NewRows(columns).
			AddRow(uuid.NewString(), "synonym", toWord.String(), "formal", time.Now(),
				uuid.NewString(), uuid.NewString(), "alice", uuid.NewString(), "English", "en",
				"large", "I", "", "large-alice-en", time.Now(), nil, 0, 0, 0, "{}", "{Adjective}"))

	links, err := NewWordLinkRepo(db).List(context.Background(), domain.LinkSynonym, toWord)

	require.NoError(t, err)
	require.Len(t, links, 1)
	assert.Equal(t, domain.LinkSynonym, links[0].Kind)
	assert.Equal(t, "formal", links[0].Note)
	require.NotNil(t, links[0].Word)
	assert.Equal(t, "large", links[0].Word.Text)
	assert.Equal(t, []string{"Adjective"}, links[0].Word.Types)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestWordLinkRepo_DeleteMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM word_links WHERE kind = \\$1 AND to_word_id = \\$2 AND from_word_id = \\$3").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewWordLinkRepo(db).Delete(context.Background(), domain.LinkSimilar, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFavoriteRepo_Add(t *testing.T) {
	tests := []struct {
		name    string
		kind    domain.FavoriteKind
		table   string
		execErr error
		wantErr error
	}{
		{name: "word", kind: domain.FavoriteWord, table: "favorite_words \\(user_id, word_id\\)"},
		{name: "collection", kind: domain.FavoriteCollection, table: "favorite_collections \\(user_id, collection_id\\)"},
		{
			name:    "exercise twice",
			kind:    domain.FavoriteExercise,
			table:   "favorite_exercises \\(user_id, exercise_id\\)",
			execErr: &pq.Error{Code: "23505"},
			wantErr: apperr.ErrAlreadyExists,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			db, mock, err := sqlmock.New()
			require.NoError(t, err)
			defer db.Close()

			user, object := uuid.New(), uuid.New()
			exp := mock.ExpectExec("INSERT INTO " + tt.table).WithArgs(user, object)
			if tt.execErr != nil {
				exp.WillReturnError(tt.execErr)
			} else {
				exp.WillReturnResult(sqlmock.NewResult(0, 1))
			}

			err = NewFavoriteRepo(db).Add(context.Background(), tt.kind, user, object)

			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
			} else {
				assert.NoError(t, err)
			}
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestFavoriteRepo_UnknownKind(t *testing.T) {
	db, _, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	err = NewFavoriteRepo(db).Add(context.Background(), domain.FavoriteKind("tag"), uuid.New(), uuid.New())

	assert.Error(t, err)
}

func TestFavoriteRepo_RemoveMissing(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec("DELETE FROM favorite_words WHERE user_id = \\$1 AND word_id = \\$2").
		WillReturnResult(sqlmock.NewResult(0, 0))

	err = NewFavoriteRepo(db).Remove(context.Background(), domain.FavoriteWord, uuid.New(), uuid.New())

	assert.ErrorIs(t, err, apperr.ErrNotFound)
}

func TestFavoriteRepo_Collections(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	user := uuid.New()
	mock.ExpectQuery("SELECT COUNT\\(\\*\\) FROM favorite_collections WHERE user_id = \\$1").
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery("JOIN favorite_collections fc ON fc.collection_id = c.id WHERE fc.user_id = \\$1 ORDER BY fc.created DESC LIMIT \\$2 OFFSET \\$3").
		WithArgs(user, 10, 0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "author_id", "username", "title", "description", "slug",
			"created", "modified", "words"}).
			AddRow(uuid.NewString(), user.String(), "alice", "Fruits", "", "fruits-alice", time.Now(), nil, 3))

	cols, count, err := NewFavoriteRepo(db).Collections(context.Background(), user, domain.PageRequest{Page: 1, Limit: 10})

	require.NoError(t, err)
	assert.Equal(t, 1, count)
	require.Len(t, cols, 1)
	assert.Equal(t, "Fruits", cols[0].Title)
	assert.Equal(t, 3, cols[0].WordsCount)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFavoriteRepo_Exercises(t *testing.T) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	user := uuid.New()
	mock.ExpectQuery("FROM exercises WHERE id IN \\(SELECT exercise_id FROM favorite_exercises WHERE user_id = \\$1\\)").
		WithArgs(user).
		WillReturnRows(sqlmock.NewRows([]string{"id", "name", "description", "constraint_description",
			"available", "slug", "created", "modified"}).
			AddRow(uuid.NewString(), "Translator", "", "", true, "translator", time.Now(), nil))

	exs, err := NewFavoriteRepo(db).Exercises(context.Background(), user)

	require.NoError(t, err)
	require.Len(t, exs, 1)
	assert.Equal(t, "translator", exs[0].Slug)
	assert.NoError(t, mock.ExpectationsWereMet())
}
