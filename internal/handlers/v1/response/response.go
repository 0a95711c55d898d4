// Package response renders every v1 reply in the {status, message, data, errors, meta}
// envelope. Importing it replaces huma.NewError so that schema validation failures and
// recovered panics use the envelope too.
package response

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/danielgtaylor/huma/v2"

	"github.com/carson-networks/ledger-server/internal/apperror"
	"github.com/carson-networks/ledger-server/internal/logging"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
	StatusError   = "error"

	MessageInternal = "Internal Server Error"
)

// Envelope is embedded in every success body.
type Envelope struct {
	Status  string `json:"status" enum:"success" doc:"Outcome of the call"`
	Message string `json:"message" doc:"Human readable outcome"`
}

func Success(message string) Envelope {
	return Envelope{Status: StatusSuccess, Message: message}
}

// Meta describes the page returned by paginated operations.
type Meta struct {
	TotalPage   int `json:"totalPage" doc:"Number of pages of 10 items"`
	CurrentPage int `json:"currentPage" doc:"1-indexed page returned"`
}

// ErrorBody is the envelope for failed calls.
type ErrorBody struct {
	status  int
	Status  string   `json:"status" enum:"failed,error" doc:"failed for client errors, error for server errors"`
	Message string   `json:"message" doc:"Human readable reason"`
	Errors  []string `json:"errors,omitempty" doc:"Per-field problems"`
}

func (e *ErrorBody) Error() string {
	return e.Message
}

func (e *ErrorBody) GetStatus() int {
	return e.status
}

func init() {
	huma.NewError = NewError
}

// NewError builds the envelope for status. Schema validation failures (422) are
// reported as 400 and server errors never expose their details.
func NewError(status int, message string, errs ...error) huma.StatusError {
	if status >= http.StatusInternalServerError {
		return &ErrorBody{status: status, Status: StatusError, Message: MessageInternal}
	}

	validationFailure := status == http.StatusUnprocessableEntity
	if validationFailure {
		status = http.StatusBadRequest
	}

	body := &ErrorBody{status: status, Status: StatusFailed, Message: message}
	for _, err := range errs {
		if err != nil {
			body.Errors = append(body.Errors, detailMessage(err))
		}
	}
	if validationFailure && len(body.Errors) > 0 {
		body.Message = body.Errors[0]
	}
	return body
}

func detailMessage(err error) string {
	var detail *huma.ErrorDetail
	if errors.As(err, &detail) {
		location := strings.TrimPrefix(strings.TrimPrefix(detail.Location, "body."), "path.")
		if location == "" || location == "body" {
			return detail.Message
		}
		return fmt.Sprintf("%s: %s", location, detail.Message)
	}

	var field apperror.FieldError
	if errors.As(err, &field) {
		return field.Message
	}
	return err.Error()
}

// Error converts a service error into the matching HTTP error and records it on the
// request's log line.
func Error(ctx context.Context, err error) error {
	logData := logging.GetLogData(ctx)

	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		if logData != nil {
			logData.SetError(err)
		}
		return huma.NewError(http.StatusInternalServerError, MessageInternal)
	}

	if logData != nil {
		logData.AddData("errorKind", appErr.Kind.String())
	}

	var status int
	switch appErr.Kind {
	case apperror.KindValidation, apperror.KindConflict:
		status = http.StatusBadRequest
	case apperror.KindAuth:
		status = http.StatusUnauthorized
	case apperror.KindNotFound:
		status = http.StatusNotFound
	default:
		if logData != nil {
			logData.SetError(err)
		}
		return huma.NewError(http.StatusInternalServerError, MessageInternal)
	}

	details := make([]error, len(appErr.Fields))
	for i, field := range appErr.Fields {
		details[i] = field
	}
	return huma.NewError(status, appErr.Message, details...)
}
