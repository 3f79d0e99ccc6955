package domain

// FavoriteKind is the type of object a user can bookmark
type FavoriteKind string

const (
	FavoriteWord       FavoriteKind = "word"
	FavoriteCollection FavoriteKind = "collection"
	FavoriteExercise   FavoriteKind = "exercise"
)
