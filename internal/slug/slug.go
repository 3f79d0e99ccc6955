// Package slug derives URL-safe, Unicode-preserving identifiers from record fields.
package slug

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"
)

// ErrUnresolvedField is returned when a configured field path cannot be resolved
// on the record, e.g. a related object is nil.
var ErrUnresolvedField = errors.New("slug field does not resolve")

// ErrEmpty is returned when every token of the slug is empty.
var ErrEmpty = errors.New("slug is empty")

// Slugify converts text into a slug token. Letters of any script are kept.
func Slugify(text string) string {
	// Casers are stateful, so each call gets its own.
	text = cases.Lower(language.Und).String(norm.NFKC.String(text))

	var b strings.Builder
	b.Grow(len(text))
	pendingDash := false
	for _, r := range text {
		switch {
		case unicode.IsSpace(r) || r == '-':
			pendingDash = true
		case unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r) || r == '_':
			if pendingDash && b.Len() > 0 {
				b.WriteByte('-')
			}
			pendingDash = false
			b.WriteRune(r)
		}
	}
	return strings.Trim(b.String(), "-_")
}

// Join slugifies every value and joins the tokens with a hyphen.
func Join(values ...string) string {
	tokens := make([]string, len(values))
	for i, v := range values {
		tokens[i] = Slugify(v)
	}
	return strings.Join(tokens, "-")
}

// Target is a record that carries a slug.
type Target interface {
	SetSlug(string)
}

// Field resolves one slug source on a record of type T.
type Field[T any] struct {
	Path    string
	resolve func(T) (string, bool)
}

// Attr is a plain field of the record.
func Attr[T any](name string, get func(T) string) Field[T] {
	return Field[T]{
		Path: name,
		resolve: func(rec T) (string, bool) {
			return get(rec), true
		},
	}
}

// Related is a field of a related object, e.g. "author.username".
// It does not resolve while the relation is nil.
func Related[T, R any](path string, rel func(T) *R, get func(*R) string) Field[T] {
	return Field[T]{
		Path: path,
		resolve: func(rec T) (string, bool) {
			r := rel(rec)
			if r == nil {
				return "", false
			}
			return get(r), true
		},
	}
}

// Filler computes slugs for records of type T from an ordered field list.
type Filler[T Target] struct {
	fields []Field[T]
}

// NewFiller panics on an empty field list.
func NewFiller[T Target](fields ...Field[T]) Filler[T] {
	if len(fields) == 0 {
		panic("slug: filler needs at least one field")
	}
	return Filler[T]{fields: fields}
}

// Paths returns the configured field paths in order.
func (f Filler[T]) Paths() []string {
	paths := make([]string, len(f.fields))
	for i, fld := range f.fields {
		paths[i] = fld.Path
	}
	return paths
}

// Generate returns the slug for rec without modifying it.
func (f Filler[T]) Generate(rec T) (string, error) {
	values := make([]string, len(f.fields))
	for i, fld := range f.fields {
		v, ok := fld.resolve(rec)
		if !ok {
			return "", fmt.Errorf("%w: %s", ErrUnresolvedField, fld.Path)
		}
		values[i] = v
	}

	s := Join(values...)
	if strings.Trim(s, "-") == "" {
		return "", fmt.Errorf("%w: fields %s", ErrEmpty, strings.Join(f.Paths(), ", "))
	}
	return s, nil
}

// Fill generates the slug and assigns it to rec.
func (f Filler[T]) Fill(rec T) (string, error) {
	s, err := f.Generate(rec)
	if err != nil {
		return "", err
	}
	rec.SetSlug(s)
	return s, nil
}
