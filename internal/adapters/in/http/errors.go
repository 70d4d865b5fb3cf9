package http

import (
	"errors"
	"net/http"

	"checkout/internal/core/application/usecases/commands"
	"checkout/internal/core/domain/model/checkout"
	"checkout/internal/core/domain/model/order"
	"checkout/internal/core/ports"
	"checkout/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"
)

// Error codes of the Error body.
const (
	CodeBadRequest       = "bad_request"
	CodeValidationFailed = "validation_failed"
	CodeCartIsEmpty      = "cart_empty"
	CodeNotFound         = "not_found"
	CodeConflict         = "conflict"
	CodeSubmissionFailed = "submission_failed"
	CodeTooManyRequests  = "too_many_requests"
	CodeInternal         = "internal_error"
)

const genericErrorMessage = "Something went wrong. Please try again."

// writeError maps err onto the status and body the client sees. Only
// unexpected errors are logged here; their text never reaches the client.
func (s *Server) writeError(c echo.Context, err error) error {
	status, body := classify(err)
	if status == http.StatusInternalServerError {
		s.logger.Error("request failed",
			zap.String("route", c.Path()),
			zap.Error(err),
		)
	}
	return c.JSON(status, body)
}

func classify(err error) (int, Error) {
	var (
		validationErr *checkout.ValidationError
		submissionErr *order.SubmissionError
		notFoundErr   *errs.ObjectNotFoundError
		requiredErr   *errs.ValueIsRequiredError
		invalidErr    *errs.ValueIsInvalidError
		rangeErr      *errs.ValueIsOutOfRangeError
	)

	switch {
	case errors.Is(err, commands.ErrOrderNotRecorded):
		return http.StatusInternalServerError, Error{
			Code:    CodeInternal,
			Message: "The order was placed but could not be saved. Please contact support before retrying.",
		}
	case errors.As(err, &validationErr):
		return http.StatusUnprocessableEntity, Error{
			Code:    CodeValidationFailed,
			Message: "Please correct the highlighted fields.",
			Fields:  validationErr.Fields,
		}
	case errors.Is(err, checkout.ErrCartIsEmpty):
		return http.StatusUnprocessableEntity, Error{Code: CodeCartIsEmpty, Message: err.Error()}
	case errors.Is(err, checkout.ErrSessionIsSubmitting), errors.Is(err, ports.ErrVersionConflict):
		return http.StatusConflict, Error{Code: CodeConflict, Message: err.Error()}
	case errors.As(err, &submissionErr):
		return http.StatusBadGateway, Error{Code: CodeSubmissionFailed, Message: submissionErr.UserMessage()}
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound, Error{Code: CodeNotFound, Message: notFoundErr.Error()}
	case errors.As(err, &requiredErr), errors.As(err, &invalidErr), errors.As(err, &rangeErr):
		return http.StatusBadRequest, Error{Code: CodeBadRequest, Message: err.Error()}
	}
	return http.StatusInternalServerError, Error{Code: CodeInternal, Message: genericErrorMessage}
}

func badRequest(c echo.Context, message string) error {
	return c.JSON(http.StatusBadRequest, Error{Code: CodeBadRequest, Message: message})
}
