package utils

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"

	internal_errors "github.com/feedline-dev/feedline/internal/errors"
	"github.com/feedline-dev/feedline/internal/logger"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// WriteErrorAndStatusCode is the single place where errors turn into HTTP
// responses. Anything that is not an ErrorWithStatusCode defaults to 500.
func WriteErrorAndStatusCode(w http.ResponseWriter, err error) {
	if e, ok := err.(*internal_errors.ErrorWithStatusCode); ok {
		if len(e.Fields) > 0 {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(e.StatusCode)
			json.NewEncoder(w).Encode(map[string]any{"message": e.Message, "data": e.Fields})
			return
		}
		http.Error(w, e.Message, e.StatusCode)
		return
	}
	// default error is 500
	http.Error(w, err.Error(), http.StatusInternalServerError)
}

// GetIP resolves the client address, preferring proxy headers over RemoteAddr.
func GetIP(r *http.Request) (string, error) {
	ip := r.Header.Get("X-REAL-IP")
	if net.ParseIP(ip) != nil {
		return ip, nil
	}

	for _, ip := range strings.Split(r.Header.Get("X-FORWARDED-FOR"), ",") {
		ip = strings.TrimSpace(ip)
		if net.ParseIP(ip) != nil {
			return ip, nil
		}
	}

	ip, _, err := net.SplitHostPort(r.RemoteAddr)
	if err != nil {
		return "", err
	}
	if net.ParseIP(ip) != nil {
		return ip, nil
	}
	return "", fmt.Errorf("no valid ip found")
}

// DecodeValidate parses a JSON body and runs struct validation, returning a
// 422 with per-field errors when validation fails.
func DecodeValidate(r io.Reader, body any) error {
	if err := json.NewDecoder(r).Decode(body); err != nil {
		logger.Log.Info("failed to decode request body", "error", err)
		return &internal_errors.ErrorWithStatusCode{Message: "Body is invalid json", StatusCode: http.StatusBadRequest}
	}
	return Validate(body)
}

// Validate runs struct validation only, for bodies that arrive as form
// fields rather than JSON.
func Validate(body any) error {
	if err := validate.Struct(body); err != nil {
		var validationErrs validator.ValidationErrors
		if errors.As(err, &validationErrs) {
			fields := make([]internal_errors.FieldError, 0, len(validationErrs))
			for _, fe := range validationErrs {
				fields = append(fields, internal_errors.FieldError{
					Field:   strings.ToLower(fe.Field()),
					Message: "failed validation: " + fe.Tag(),
				})
			}
			return internal_errors.NewValidation("Validation Failed!", fields...)
		}
		return err
	}
	return nil
}
