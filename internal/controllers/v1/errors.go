package v1

import (
	"errors"
	"net/http"

	"github.com/six-jars/backend/internal/httputil"
	"github.com/six-jars/backend/internal/models"
)

type httpError struct {
	Error string `json:"error" example:"there is no income matching your query"`
}

// status returns the appropriate HTTP status for an error from the models
// layer.
func status(err error) int {
	if errors.Is(err, models.ErrGeneral) {
		return http.StatusInternalServerError
	}

	if errors.Is(err, models.ErrResourceNotFound) {
		return http.StatusNotFound
	}

	if errors.Is(err, httputil.ErrRequestBodyEmpty) || errors.Is(err, httputil.ErrInvalidBody) {
		return http.StatusBadRequest
	}

	return http.StatusBadRequest
}

var (
	errUserIDParameter = errors.New("the user parameter must be set")
	errAmountNegative  = errors.New("the amount must not be negative")
)

// Jar errors
var (
	errPercentageRange       = errors.New("every percentage must be between 0 and 100")
	errPercentageSum         = errors.New("the percentages must sum to exactly 100")
	errJarIDInvalid          = errors.New("the percentages object must be keyed by jar IDs")
	errDeleteAllConfirmation = errors.New("the confirmation for deleting all jar data was incorrect")
)
