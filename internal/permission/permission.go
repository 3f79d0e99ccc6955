// Package permission implements per-request access checks for API objects.
package permission

import (
	"context"
	"fmt"
	"net/http"

	"linguista/internal/apperr"
	"linguista/internal/domain"

	"github.com/google/uuid"
)

// Messages returned with 403 responses
const (
	MsgDefinitionLimit = "You can add no more than 10 definitions to a word"
	MsgAuthorOnly      = "Only author has permission to perform this action"
	MsgStaffOnly       = "You do not have permission to perform this action."
)

// Request describes the action being authorized
type Request struct {
	Method   string
	User     *domain.User
	AuthorID uuid.UUID
	WordID   uuid.UUID
}

// Checker allows or denies a request
type Checker interface {
	Allow(ctx context.Context, req Request) error
}

// IsSafe reports whether method only reads
func IsSafe(method string) bool {
	switch method {
	case http.MethodGet, http.MethodHead, http.MethodOptions:
		return true
	}
	return false
}

// DefinitionCounter counts existing definitions of a word
type DefinitionCounter interface {
	CountByWord(ctx context.Context, wordID uuid.UUID) (int, error)
}

// CanAddDefinition denies POST once a word holds the maximum number of definitions
type CanAddDefinition struct {
	counter DefinitionCounter
}

// NewCanAddDefinition creates the definition cap check
func NewCanAddDefinition(counter DefinitionCounter) *CanAddDefinition {
	return &CanAddDefinition{counter: counter}
}

// Allow implements Checker
func (p *CanAddDefinition) Allow(ctx context.Context, req Request) error {
	if req.Method != http.MethodPost {
		return nil
	}

	count, err := p.counter.CountByWord(ctx, req.WordID)
	if err != nil {
		return fmt.Errorf("count definitions: %w", err)
	}
	if count >= domain.MaxDefinitions {
		return apperr.Forbidden(MsgDefinitionLimit)
	}
	return nil
}

// IsAuthorOrReadOnly lets anyone read and only the author write.
// Vocabulary and collection services report foreign objects as missing
// before calling it, so there it is a second line of defence.
type IsAuthorOrReadOnly struct{}

// Allow implements Checker
func (IsAuthorOrReadOnly) Allow(_ context.Context, req Request) error {
	if IsSafe(req.Method) {
		return nil
	}
	if req.User == nil || req.User.ID != req.AuthorID {
		return apperr.Forbidden(MsgAuthorOnly)
	}
	return nil
}

// IsStaff admits staff users only
type IsStaff struct{}

// Allow implements Checker
func (IsStaff) Allow(_ context.Context, req Request) error {
	if req.User == nil || !req.User.IsStaff {
		return apperr.Forbidden(MsgStaffOnly)
	}
	return nil
}

// All runs checkers in order and returns the first denial
func All(ctx context.Context, req Request, checkers ...Checker) error {
	for _, c := range checkers {
		if err := c.Allow(ctx, req); err != nil {
			return err
		}
	}
	return nil
}
