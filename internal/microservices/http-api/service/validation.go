package service

import (
	"strings"
	"time"
	"unicode/utf8"

	"github.com/go-playground/validator/v10"
)

// same engine gin uses for binding tags, so both layers agree on formats
var validate = validator.New()

func validateUsername(username string) error {
	n := utf8.RuneCountInString(username)
	if n < 3 || n > 50 {
		return invalid("username", "must be between 3 and 50 characters")
	}
	return nil
}

func validateEmail(email string) error {
	if err := validate.Var(email, "required,email,max=100"); err != nil {
		return invalid("email", "must be a valid email address")
	}
	return nil
}

func validatePassword(password string) error {
	if utf8.RuneCountInString(password) < 6 {
		return invalid("password", "must be at least 6 characters")
	}
	return nil
}

func validateTitle(title string) error {
	n := utf8.RuneCountInString(strings.TrimSpace(title))
	if n < 1 || n > 200 {
		return invalid("title", "must be between 1 and 200 characters")
	}
	return nil
}

// release years run from 1970 to next year (announced titles)
func validateReleaseYear(year *int) error {
	if year == nil {
		return nil
	}
	latest := time.Now().Year() + 1
	if *year < 1970 || *year > latest {
		return invalid("release_year", "must be between 1970 and %d", latest)
	}
	return nil
}

func validateOptionalLength(field string, value *string, max int) error {
	if value != nil && utf8.RuneCountInString(*value) > max {
		return invalid(field, "must be at most %d characters", max)
	}
	return nil
}

func validateReviewContent(content string) error {
	if utf8.RuneCountInString(content) < 10 {
		return invalid("content", "must be at least 10 characters")
	}
	return nil
}

func validateRating(rating int) error {
	if rating < 1 || rating > 10 {
		return invalid("rating", "must be between 1 and 10")
	}
	return nil
}

func validateCommentContent(content string) error {
	if utf8.RuneCountInString(content) < 1 {
		return invalid("content", "must not be empty")
	}
	return nil
}

func firstError(errs ...error) error {
	for _, err := range errs {
		if err != nil {
			return err
		}
	}
	return nil
}
