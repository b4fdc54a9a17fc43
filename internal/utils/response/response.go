package response

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/adityanarayanofficial/marketplace-platform/internal/errors"
	"github.com/go-playground/validator/v10"
)

// Envelope is the single response shape every endpoint returns, success or
// failure: a human-readable message, the numeric status code and an
// optional payload (object, list or validation-error map).
type Envelope struct {
	Message *string `json:"message"`
	Status  int     `json:"status"`
	Data    any     `json:"data"`
}

// set once from config at startup, before the server accepts traffic
var debug bool

func SetDebug(enabled bool) {
	debug = enabled
}

func WriteJSON(w http.ResponseWriter, statusCode int, message *string, data any) error {

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	return json.NewEncoder(w).Encode(Envelope{
		Message: message,
		Status:  statusCode,
		Data:    data,
	})
}

func Success(w http.ResponseWriter, statusCode int, message string, data any) {
	var msg *string
	if message != "" {
		msg = &message
	}

	WriteJSON(w, statusCode, msg, data)
}

// Error maps an AppError onto the envelope; anything else collapses to a
// generic 500 with detail only in debug mode.
func Error(w http.ResponseWriter, err error) {

	if appErr, ok := errors.IsAppError(err); ok {

		var data any
		if appErr.Fields != nil {
			data = appErr.Fields
		}

		msg := appErr.Message
		if appErr.Detail != "" && debug {
			msg = fmt.Sprintf("%s: %s", appErr.Message, appErr.Detail)
		}

		WriteJSON(w, appErr.StatusCode, &msg, data)

		return
	}

	msg := "Something went wrong"
	if debug {
		msg = fmt.Sprintf("%s: %s", msg, err.Error())
	}

	WriteJSON(w, http.StatusInternalServerError, &msg, nil)
}

// ValidationFailed renders validator errors into the envelope's data
// payload as a field -> reason map.
func ValidationFailed(w http.ResponseWriter, errs validator.ValidationErrors) {

	fields := make(map[string]string, len(errs))

	for _, err := range errs {

		var reason string

		switch err.Tag() {
		case "required":
			reason = "This field is required"
		case "email":
			reason = "Must be a valid email address"
		case "min":
			reason = fmt.Sprintf("Must have at least %s items or characters", err.Param())
		case "max":
			reason = fmt.Sprintf("Must have at most %s items or characters", err.Param())
		case "gte":
			reason = fmt.Sprintf("Must be greater than or equal to %s", err.Param())
		case "oneof":
			reason = fmt.Sprintf("Must be one of: %s", err.Param())
		case "password":
			reason = "Password must be at least 8 characters with one uppercase letter and one symbol"
		default:
			reason = fmt.Sprintf("Invalid value: %s=%s", err.Tag(), err.Param())
		}

		fields[strings.ToLower(err.Field())] = reason
	}

	msg := "Validation failed"
	WriteJSON(w, http.StatusBadRequest, &msg, fields)
}
