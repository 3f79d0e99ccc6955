package apperr

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		expected int
	}{
		{name: "nil", err: nil, expected: http.StatusOK},
		{name: "validation", err: Invalid("username", "required"), expected: http.StatusBadRequest},
		{name: "unauthorized", err: ErrUnauthorized, expected: http.StatusUnauthorized},
		{name: "forbidden", err: Forbidden("no"), expected: http.StatusForbidden},
		{name: "wrapped not found", err: fmt.Errorf("get word: %w", ErrNotFound), expected: http.StatusNotFound},
		{name: "limit", err: LimitExceeded(5, "too many"), expected: http.StatusConflict},
		{name: "already exists", err: ErrAlreadyExists, expected: http.StatusConflict},
		{name: "unknown", err: fmt.Errorf("boom"), expected: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HTTPStatus(tt.err))
		})
	}
}

func TestBody(t *testing.T) {
	limit := Body(LimitExceeded(2, "Превышено максимальное кол-во родных языков"))
	assert.Equal(t, CodeAmountLimitExceeded, limit["exception_code"])
	assert.Equal(t, 2, limit["amount_limit"])

	denied := Body(Forbidden("You can add no more than 10 definitions to a word"))
	assert.Equal(t, "You can add no more than 10 definitions to a word", denied["detail"])

	v := &ValidationError{}
	v.Add("email", "Enter a valid email address.")
	v.Add("email", "This field may not be blank.")
	body := Body(v)
	assert.Equal(t, []string{"Enter a valid email address.", "This field may not be blank."}, body["email"])

	assert.Equal(t, "A server error occurred.", Body(fmt.Errorf("db down"))["detail"])
}

func TestValidationError_OrNil(t *testing.T) {
	var v ValidationError
	assert.NoError(t, v.OrNil())

	v.Add("text", "required")
	assert.Error(t, v.OrNil())
	assert.Contains(t, v.Error(), "text: required")
}
