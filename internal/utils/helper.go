package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"unicode"

	"github.com/go-playground/validator/v10"
)

// NewValidator builds the validator used by every handler, with the
// "password" tag registered for the registration complexity policy.
func NewValidator() *validator.Validate {
	validate := validator.New()

	validate.RegisterValidation("password", func(fl validator.FieldLevel) bool {
		return PasswordMeetsPolicy(fl.Field().String())
	})

	return validate
}

// PasswordMeetsPolicy reports whether the password is at least 8
// characters long with at least one uppercase letter and one
// non-alphanumeric character. RE2 has no lookahead, so the policy is
// checked predicate by predicate rather than with a single regex.
func PasswordMeetsPolicy(password string) bool {

	runes := []rune(password)
	if len(runes) < 8 {
		return false
	}

	var hasUpper, hasSymbol bool

	for _, r := range runes {
		switch {
		case unicode.IsUpper(r):
			hasUpper = true
		case !unicode.IsLetter(r) && !unicode.IsDigit(r):
			hasSymbol = true
		}
	}

	return hasUpper && hasSymbol
}

func DecodeJSONBody(r *http.Request, dest any) error {

	body, err := io.ReadAll(r.Body)

	if err != nil {
		slog.Error("Failed to read request body",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("failed to read request body: %w", err)
	}

	defer r.Body.Close()

	if len(body) == 0 {
		slog.Warn("Empty request body", slog.String("endpoint", r.URL.Path))
		return errors.New("request body cannot be empty")
	}

	if err := json.Unmarshal(body, dest); err != nil {
		slog.Error("Failed to parse request JSON",
			slog.String("error", err.Error()),
			slog.String("endpoint", r.URL.Path),
		)
		return fmt.Errorf("invalid JSON format: %w", err)
	}

	return nil
}
