package domain

import (
	"time"

	"github.com/google/uuid"
)

// Gender values accepted for a user profile
const (
	GenderMale   = "M"
	GenderFemale = "F"
)

// FirstNameMaxLength limits the profile first name
const FirstNameMaxLength = 32

// Users amount limits
const (
	MaxNativeLanguages   = 2
	MaxLearningLanguages = 5
)

// User represents an API account
type User struct {
	ID           uuid.UUID
	Username     string
	Email        string
	PasswordHash string
	FirstName    string
	Gender       *string
	Image        *string
	IsActive     bool
	IsStaff      bool
	Created      time.Time
	Modified     *time.Time
}

// ProfileUpdate holds the fields a user may change on their profile.
// Nil fields are left untouched.
type ProfileUpdate struct {
	FirstName       *string
	Gender          *string
	Image           *string
	NativeLanguages []string
}

// Profile is a user with its language associations
type Profile struct {
	User
	NativeLanguages   []UserLanguage
	LearningLanguages []UserLanguage
	WordsCount        int
}

// AuthToken is an issued login token. Logout deletes it.
type AuthToken struct {
	ID        uuid.UUID
	UserID    uuid.UUID
	Created   time.Time
	ExpiresAt time.Time
}

// EmailConfirmation holds a pending registration confirmation key
type EmailConfirmation struct {
	Key       string
	UserID    uuid.UUID
	Created   time.Time
	ExpiresAt time.Time
}
