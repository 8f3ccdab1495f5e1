// Package validation checks caller input with a shared go-playground validator.
// It registers the ghusername tag and converts failures into validation errors
// from the errors package.
package validation

import (
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"sync"

	"github.com/go-playground/validator/v10"

	custom_errors "github-profile-analyzer/internal/errors"
)

const (
	MaxUsernameLength = 39
	DefaultPage       = 1
	DefaultLimit      = 10
	MaxLimit          = 100
	// MaxPage keeps (page-1)*MaxLimit inside the int32 OFFSET parameter.
	MaxPage = 1_000_000
)

// Alphanumerics separated by single hyphens, no leading or trailing hyphen.
var usernamePattern = regexp.MustCompile(`^[a-zA-Z0-9]+(-[a-zA-Z0-9]+)*$`)

var (
	validate     *validator.Validate
	validateOnce sync.Once
)

// GetValidator returns the singleton validator instance.
func GetValidator() *validator.Validate {
	validateOnce.Do(func() {
		validate = validator.New(validator.WithRequiredStructEnabled())
		// Registration only fails for an empty tag or a nil func.
		_ = validate.RegisterValidation("ghusername", func(fl validator.FieldLevel) bool {
			return IsUsername(fl.Field().String())
		})
	})
	return validate
}

// IsUsername reports whether s is a syntactically valid GitHub login.
func IsUsername(s string) bool {
	return len(s) <= MaxUsernameLength && usernamePattern.MatchString(s)
}

type usernameInput struct {
	Username string `validate:"required,ghusername"`
}

// Username validates a path username.
func Username(username string) error {
	err := GetValidator().Struct(usernameInput{Username: username})
	if err == nil {
		return nil
	}
	if username == "" {
		return custom_errors.Validation("Username is required", &custom_errors.ErrInvalidUsername{Username: username})
	}
	return custom_errors.Validation("Invalid GitHub username format", &custom_errors.ErrInvalidUsername{Username: username})
}

// Pagination is a validated page request.
type Pagination struct {
	Page  int `validate:"min=1,max=1000000"`
	Limit int `validate:"min=1,max=100"`
}

// ParsePagination reads page and limit query values. Missing, unparsable or zero values fall
// back to the defaults; anything else out of range is a validation error.
func ParsePagination(page, limit string) (Pagination, error) {
	p := Pagination{
		Page:  atoiOr(page, DefaultPage),
		Limit: atoiOr(limit, DefaultLimit),
	}

	err := GetValidator().Struct(p)
	if err == nil {
		return p, nil
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		return p, custom_errors.Validation(translate(fieldErrs[0]), err)
	}
	return p, custom_errors.Validation("Invalid pagination parameters", err)
}

func atoiOr(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n == 0 {
		return def
	}
	return n
}

func translate(fe validator.FieldError) string {
	field := map[string]string{"Page": "page", "Limit": "limit"}[fe.Field()]
	if field == "" {
		field = fe.Field()
	}
	switch fe.Tag() {
	case "min":
		return fmt.Sprintf("%s must be at least %s", field, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be at most %s", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
