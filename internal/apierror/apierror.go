// Package apierror maps failures to HTTP statuses and the JSON error body
// clients receive. It is the only place where an error becomes a response.
package apierror

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/pkg/errors"
	log "github.com/sirupsen/logrus"

	"pka-index-backend/internal/models"
	"pka-index-backend/internal/repository"
)

type Kind int

const (
	KindInternal Kind = iota
	KindRouteNotFound
	KindRequestTimeout
	KindBadPathParam
	KindUnsupportedPathParam
	KindTooManyRequests
)

const (
	msgRouteNotFound   = "This route was not found."
	msgRequestTimeout  = "Your request timed out."
	msgInternal        = "An internal error has occurred."
	msgDatabase        = "A database error occurred."
	msgDataNotFound    = "This data was not found in the database."
	msgEmptyCatalog    = "No episodes are available."
	msgInvalidPath     = "This path is invalid."
	msgTooManyRequests = "Too many requests. Please try again later."
)

// Error is a failure raised at the HTTP edge with its kind fixed up front.
type Error struct {
	Kind Kind
	// Label replaces the status reason phrase in the body's "error" field.
	Label   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

func RouteNotFound() *Error {
	return &Error{Kind: KindRouteNotFound, Message: msgRouteNotFound}
}

func RequestTimeout() *Error {
	return &Error{Kind: KindRequestTimeout, Message: msgRequestTimeout}
}

func TooManyRequests() *Error {
	return &Error{Kind: KindTooManyRequests, Message: msgTooManyRequests}
}

// BadPathParam reports a path parameter the client sent in a form that cannot
// be decoded.
func BadPathParam(name, raw string, err error) *Error {
	return &Error{
		Kind:    KindBadPathParam,
		Message: fmt.Sprintf("Invalid URL: cannot parse `%s` for parameter `%s`: %v", raw, name, err),
		Err:     err,
	}
}

// UnsupportedPathParam reports a route whose declared parameter the handler
// cannot decode at all. That is a server bug, not a client mistake.
func UnsupportedPathParam(name string) *Error {
	return &Error{
		Kind:    KindUnsupportedPathParam,
		Message: msgInvalidPath,
		Err:     errors.Errorf("route has no decodable path parameter %q", name),
	}
}

func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: msgInternal, Err: err}
}

// Classification is what a failure turns into on the wire.
type Classification struct {
	Status  int
	Label   string
	Message string
	// Log is set for server-side failures, which are logged with full detail.
	Log bool
}

func Classify(err error) Classification {
	var apiErr *Error
	var storageErr *repository.StorageError

	switch {
	case errors.As(err, &apiErr):
		return classifyAPIError(apiErr)
	case errors.Is(err, repository.ErrEmptyCatalog):
		return Classification{Status: http.StatusNotFound, Message: msgEmptyCatalog}
	case errors.Is(err, repository.ErrNotFound):
		return Classification{Status: http.StatusNotFound, Message: msgDataNotFound}
	case errors.Is(err, repository.ErrAbandoned):
		return Classification{Status: http.StatusRequestTimeout, Message: msgRequestTimeout}
	case errors.As(err, &storageErr):
		return Classification{Status: http.StatusInternalServerError, Message: msgDatabase, Log: true}
	default:
		return Classification{Status: http.StatusInternalServerError, Message: msgInternal, Log: true}
	}
}

func classifyAPIError(e *Error) Classification {
	c := Classification{Label: e.Label, Message: e.Message}
	switch e.Kind {
	case KindRouteNotFound:
		c.Status = http.StatusNotFound
	case KindRequestTimeout:
		c.Status = http.StatusRequestTimeout
	case KindBadPathParam:
		c.Status = http.StatusBadRequest
	case KindTooManyRequests:
		c.Status = http.StatusTooManyRequests
	case KindUnsupportedPathParam:
		c.Status = http.StatusInternalServerError
		c.Log = true
	default:
		c.Status = http.StatusInternalServerError
		c.Message = msgInternal
		c.Log = true
	}
	return c
}

// NewUserError builds the error body. An empty label falls back to the
// status's reason phrase.
func NewUserError(status int, label, message string) models.UserError {
	if label == "" {
		label = http.StatusText(status)
	}
	if label == "" {
		label = "Unknown Error"
	}
	return models.UserError{
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		Status:    status,
		Error:     label,
		Message:   message,
	}
}

// Write classifies err, logs it if it is a server-side failure, and writes the
// JSON error body.
func Write(w http.ResponseWriter, r *http.Request, err error) {
	c := Classify(err)

	if c.Log {
		log.WithError(err).WithFields(log.Fields{
			"method":     r.Method,
			"path":       r.URL.Path,
			"status":     c.Status,
			"request_id": chimiddleware.GetReqID(r.Context()),
		}).Error("request failed")
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(c.Status)
	json.NewEncoder(w).Encode(NewUserError(c.Status, c.Label, c.Message))
}
