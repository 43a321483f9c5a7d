package httpapi

import (
	"context"
	"errors"
	"net/http"

	sonic "github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"

	"github.com/riskibarqy/futball/internal/usecase"
)

const (
	apiVersion  = "2.0"
	errorDomain = "futball"
)

var errInternal = errors.New("internal server error")

// envelope follows the Google JSON style guide: data on success, error
// otherwise, never both.
type envelope struct {
	APIVersion string     `json:"apiVersion"`
	Data       any        `json:"data,omitempty"`
	Error      *errorBody `json:"error,omitempty"`
}

type errorBody struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Status  string      `json:"status"`
	Errors  []errorItem `json:"errors,omitempty"`
}

type errorItem struct {
	Domain  string `json:"domain"`
	Reason  string `json:"reason"`
	Message string `json:"message"`
}

// errorClass is the HTTP shape of one usecase error sentinel.
type errorClass struct {
	target     error
	HTTPStatus int
	Reason     string
	Status     string
}

var errorClasses = []errorClass{
	{target: usecase.ErrInvalidInput, HTTPStatus: http.StatusBadRequest, Reason: "invalidInput", Status: "INVALID_ARGUMENT"},
	{target: usecase.ErrNotFound, HTTPStatus: http.StatusNotFound, Reason: "notFound", Status: "NOT_FOUND"},
	{target: usecase.ErrDuplicateKey, HTTPStatus: http.StatusConflict, Reason: "duplicate", Status: "ALREADY_EXISTS"},
	{target: usecase.ErrReferential, HTTPStatus: http.StatusConflict, Reason: "referentialConflict", Status: "FAILED_PRECONDITION"},
	{target: usecase.ErrTransaction, HTTPStatus: http.StatusConflict, Reason: "aborted", Status: "ABORTED"},
	{target: usecase.ErrDependencyUnavailable, HTTPStatus: http.StatusServiceUnavailable, Reason: "dependencyUnavailable", Status: "UNAVAILABLE"},
}

var internalClass = errorClass{HTTPStatus: http.StatusInternalServerError, Reason: "internalError", Status: "INTERNAL"}

func classify(err error) errorClass {
	for _, class := range errorClasses {
		if errors.Is(err, class.target) {
			return class
		}
	}
	return internalClass
}

// writeJSON echoes the request's trace id so clients can quote it.
func writeJSON(ctx context.Context, w http.ResponseWriter, status int, payload envelope) {
	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() {
		w.Header().Set("X-Trace-Id", sc.TraceID().String())
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = sonic.ConfigDefault.NewEncoder(w).Encode(payload)
}

func writeSuccess(ctx context.Context, w http.ResponseWriter, status int, data any) {
	writeJSON(ctx, w, status, envelope{APIVersion: apiVersion, Data: data})
}

// writeError never leaks the message of an unclassified error.
func writeError(ctx context.Context, w http.ResponseWriter, err error) {
	class := classify(err)
	msg := err.Error()
	if class.HTTPStatus == http.StatusInternalServerError {
		msg = errInternal.Error()
	}

	writeJSON(ctx, w, class.HTTPStatus, envelope{
		APIVersion: apiVersion,
		Error: &errorBody{
			Code:    class.HTTPStatus,
			Message: msg,
			Status:  class.Status,
			Errors:  []errorItem{{Domain: errorDomain, Reason: class.Reason, Message: msg}},
		},
	})
}
