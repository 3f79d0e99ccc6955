package api

import (
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"reflect"
	"strconv"
	"strings"
	"sync"

	"linguista/internal/apperr"
	"linguista/internal/domain"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

// Page is the paginated list envelope
type Page[T any] struct {
	Count    int     `json:"count"`
	Next     *string `json:"next"`
	Previous *string `json:"previous"`
	Results  []T     `json:"results"`
}

func pageRequest(c *gin.Context) (domain.PageRequest, error) {
	var p domain.PageRequest
	if v := c.Query("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return p, apperr.ErrNotFound
		}
		p.Page = n
	}
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return p, apperr.Invalid("limit", "A valid integer is required.")
		}
		p.Limit = n
	}
	return p.Normalize(), nil
}

func newPage[T any](c *gin.Context, p domain.PageRequest, count int, results []T) Page[T] {
	if results == nil {
		results = []T{}
	}
	page := Page[T]{Count: count, Results: results}
	if p.Page < p.TotalPages(count) {
		page.Next = pageURL(c, p.Page+1, p.Limit)
	}
	if p.Page > 1 {
		page.Previous = pageURL(c, p.Page-1, p.Limit)
	}
	return page
}

func pageURL(c *gin.Context, page, limit int) *string {
	scheme := "http"
	if c.Request.TLS != nil {
		scheme = "https"
	}
	if fwd := c.GetHeader("X-Forwarded-Proto"); fwd != "" {
		scheme = fwd
	}

	q := c.Request.URL.Query()
	q.Set("page", strconv.Itoa(page))
	q.Set("limit", strconv.Itoa(limit))
	u := url.URL{Scheme: scheme, Host: c.Request.Host, Path: c.Request.URL.Path, RawQuery: q.Encode()}
	s := u.String()
	return &s
}

type handler struct {
	logger *zap.Logger
}

// fail writes the error response for err and logs unexpected failures
func (h *handler) fail(c *gin.Context, err error) {
	status := apperr.HTTPStatus(err)
	if status >= http.StatusInternalServerError {
		h.logger.Error("Request failed",
			zap.String("path", c.Request.URL.Path),
			zap.Error(err),
		)
	}
	_ = c.Error(err)
	c.AbortWithStatusJSON(status, apperr.Body(err))
}

var registerTagNames sync.Once

// useJSONFieldNames makes validator report fields by their json names
func useJSONFieldNames() {
	registerTagNames.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(f reflect.StructField) string {
			name, _, _ := strings.Cut(f.Tag.Get("json"), ",")
			if name == "-" {
				return ""
			}
			if name == "" {
				return f.Name
			}
			return name
		})
	})
}

// bind decodes the JSON body into dst and runs its binding rules
func bind(c *gin.Context, dst any) error {
	return bindingError(c.ShouldBindJSON(dst))
}

// validate runs the binding rules of an already decoded request
func validate(obj any) error {
	return bindingError(binding.Validator.ValidateStruct(obj))
}

func bindingError(err error) error {
	if err == nil {
		return nil
	}
	var fields validator.ValidationErrors
	if !errors.As(err, &fields) {
		return apperr.Invalid("non_field_errors", "Invalid data. "+err.Error())
	}

	var verr apperr.ValidationError
	for _, fe := range fields {
		verr.Add(fe.Field(), fieldMessage(fe))
	}
	return verr.OrNil()
}

func fieldMessage(fe validator.FieldError) string {
	kind := fe.Kind()
	if kind == reflect.Ptr {
		kind = fe.Type().Elem().Kind()
	}
	text := kind == reflect.String

	switch fe.Tag() {
	case "required":
		return "This field is required."
	case "max":
		if text {
			return fmt.Sprintf("Ensure this field has no more than %s characters.", fe.Param())
		}
		if kind == reflect.Slice {
			return fmt.Sprintf("Ensure this field has no more than %s elements.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is less than or equal to %s.", fe.Param())
	case "min":
		if text {
			return fmt.Sprintf("Ensure this field has at least %s characters.", fe.Param())
		}
		return fmt.Sprintf("Ensure this value is greater than or equal to %s.", fe.Param())
	case "oneof":
		return fmt.Sprintf("%q is not a valid choice.", fmt.Sprint(fe.Value()))
	}
	return "Invalid value."
}
