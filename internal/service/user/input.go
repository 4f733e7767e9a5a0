package user

import (
	"net/mail"
	"strings"

	"github.com/heartmarshall/conduit-backend/internal/domain"
)

// RegisterInput holds parameters for account creation.
type RegisterInput struct {
	Username string
	Email    string
	Password string
}

// Validate validates the registration input.
func (i RegisterInput) Validate() error {
	var errs []domain.FieldError

	if i.Username == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "can't be blank"})
	} else if len(i.Username) > 64 {
		errs = append(errs, domain.FieldError{Field: "username", Message: "too long"})
	}

	errs = append(errs, validateEmail(i.Email)...)

	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "can't be blank"})
	} else if len(i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// LoginInput holds parameters for the login operation.
type LoginInput struct {
	Email    string
	Password string
}

// Validate validates the login input.
func (i LoginInput) Validate() error {
	var errs []domain.FieldError

	if i.Email == "" {
		errs = append(errs, domain.FieldError{Field: "email", Message: "can't be blank"})
	}
	if i.Password == "" {
		errs = append(errs, domain.FieldError{Field: "password", Message: "can't be blank"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

// UpdateInput holds the fields of a partial self-update. Nil means leave
// unchanged.
type UpdateInput struct {
	Email    *string
	Username *string
	Password *string
	Bio      *string
	Image    *string
}

// Validate rejects invalid values for fields that are present.
func (i UpdateInput) Validate() error {
	var errs []domain.FieldError

	if i.Email != nil {
		errs = append(errs, validateEmail(*i.Email)...)
	}
	if i.Username != nil && strings.TrimSpace(*i.Username) == "" {
		errs = append(errs, domain.FieldError{Field: "username", Message: "can't be blank"})
	}
	if i.Password != nil && len(*i.Password) < 8 {
		errs = append(errs, domain.FieldError{Field: "password", Message: "must be at least 8 characters"})
	}

	if len(errs) > 0 {
		return &domain.ValidationError{Errors: errs}
	}
	return nil
}

func validateEmail(email string) []domain.FieldError {
	if email == "" {
		return []domain.FieldError{{Field: "email", Message: "can't be blank"}}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return []domain.FieldError{{Field: "email", Message: "is invalid"}}
	}
	return nil
}
