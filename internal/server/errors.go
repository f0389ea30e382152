// Package server provides the HTTP API for resume analysis.
package server

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/jonathan/resume-matcher/internal/ingestion"
)

// ErrValidation indicates request validation failure
type ErrValidation struct {
	Field   string
	Message string
}

func (e *ErrValidation) Error() string {
	return fmt.Sprintf("validation error: %s - %s", e.Field, e.Message)
}

// ErrPayloadTooLarge indicates the request body exceeded the upload limit
type ErrPayloadTooLarge struct {
	Limit int64
}

func (e *ErrPayloadTooLarge) Error() string {
	return fmt.Sprintf("request body exceeds the %d byte upload limit", e.Limit)
}

// ErrUnsupportedMediaType indicates a request body the API cannot read
type ErrUnsupportedMediaType struct {
	ContentType string
}

func (e *ErrUnsupportedMediaType) Error() string {
	return fmt.Sprintf("unsupported content type: %s", e.ContentType)
}

// HTTPStatus returns the appropriate HTTP status code for an error
func HTTPStatus(err error) int {
	var (
		validationErr *ErrValidation
		tooLargeErr   *ErrPayloadTooLarge
		mediaErr      *ErrUnsupportedMediaType
		extractErr    *ingestion.ExtractionError
	)
	switch {
	case err == nil:
		return http.StatusInternalServerError
	case errors.As(err, &validationErr), errors.Is(err, ingestion.ErrUnsupportedType):
		return http.StatusBadRequest
	case errors.As(err, &tooLargeErr):
		return http.StatusRequestEntityTooLarge
	case errors.As(err, &mediaErr):
		return http.StatusUnsupportedMediaType
	case errors.As(err, &extractErr):
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
