// Package validator holds the stateless input checks that sit between raw
// requests and the repository: identifier validation, required fields, string
// constraints, field sanitation and pagination parsing.
package validator

import (
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"bookings-rest-api/internal/model"
)

// Pagination bounds. Values outside them reset to the defaults.
const (
	DefaultPage    = 1
	DefaultPerPage = 10
	MaxPerPage     = 100
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// IsObjectID reports whether s parses as a store identifier (24 hex chars).
func IsObjectID(s string) bool {
	_, err := primitive.ObjectIDFromHex(s)
	return err == nil
}

// RequireFields returns a ValidationError listing every named field that is
// absent or null in data.
func RequireFields(data map[string]any, names ...string) error {
	var missing []string
	for _, name := range names {
		if v, ok := data[name]; !ok || v == nil {
			missing = append(missing, name)
		}
	}
	if len(missing) > 0 {
		return model.MissingFieldsError(missing)
	}
	return nil
}

// ValidStringLength reports whether v is a string whose trimmed length is
// within [min, max]. Non-strings are rejected.
func ValidStringLength(v any, min, max int) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	n := len(strings.TrimSpace(s))
	return n >= min && n <= max
}

// ValidEmail reports whether v is a string in local@domain.tld form.
func ValidEmail(v any) bool {
	s, ok := v.(string)
	if !ok {
		return false
	}
	return validate.Var(s, "required,email") == nil
}

// Sanitize strips null values, trims strings and drops strings that are empty
// after trimming. Keys are never renamed; non-string values pass through.
func Sanitize(data map[string]any) map[string]any {
	clean := make(map[string]any, len(data))
	for key, value := range data {
		switch v := value.(type) {
		case nil:
		case string:
			v = strings.TrimSpace(v)
			if v != "" {
				clean[key] = v
			}
		default:
			clean[key] = value
		}
	}
	return clean
}

// Pagination parses page and per_page query values. A parse failure on either
// resets both to the defaults; page clamps to 1 and an out-of-range per_page
// resets to the default rather than clamping.
func Pagination(page, perPage string) (int, int) {
	p, pp := DefaultPage, DefaultPerPage
	if page != "" {
		n, err := strconv.Atoi(page)
		if err != nil {
			return DefaultPage, DefaultPerPage
		}
		p = n
	}
	if perPage != "" {
		n, err := strconv.Atoi(perPage)
		if err != nil {
			return DefaultPage, DefaultPerPage
		}
		pp = n
	}
	if p < DefaultPage {
		p = DefaultPage
	}
	if pp < 1 || pp > MaxPerPage {
		pp = DefaultPerPage
	}
	return p, pp
}
