package utils

import (
	"log/slog"
	"net/http"

	appErrors "github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	"github.com/adityanarayanofficial/marketplace-platform/internal/utils/response"
	"github.com/go-playground/validator/v10"
)

// ParseAndValidate decodes the JSON body into dest and runs struct
// validation, writing the envelope error response itself when either step
// fails.
func ParseAndValidate(r *http.Request, w http.ResponseWriter, dest any, validate *validator.Validate) bool {

	if err := DecodeJSONBody(r, dest); err != nil {
		slog.Warn("Invalid request", slog.String("error", err.Error()))
		response.Error(w, appErrors.BadRequestError("Invalid request body").WithError(err).WithDetail(err.Error()))
		return false
	}

	if err := validate.Struct(dest); err != nil {

		if validationErrs, ok := err.(validator.ValidationErrors); ok {
			slog.Warn("Validation failed", slog.String("error", validationErrs.Error()))
			response.ValidationFailed(w, validationErrs)
			return false
		}

		slog.Error("Unexpected validation error", slog.String("error", err.Error()))
		response.Error(w, appErrors.InternalError("Unexpected validation error").WithError(err))
		return false
	}

	return true

}
