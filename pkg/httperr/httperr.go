// Package httperr holds the error taxonomy shared by services and handlers.
// Services return these errors; the HTTP layer renders them once, in Render.
package httperr

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"gorm.io/gorm"
)

type Kind int

const (
	KindBadRequest Kind = iota
	KindUnsupportedState
	KindForbidden
	KindNotFound
	KindConflict
	KindInternal
)

type Error struct {
	kind    Kind
	message string
}

func (e *Error) Error() string { return e.message }
func (e *Error) Kind() Kind    { return e.kind }

func BadRequest(message string) *Error {
	return &Error{kind: KindBadRequest, message: message}
}

func UnsupportedState(message string) *Error {
	return &Error{kind: KindUnsupportedState, message: message}
}

func Forbidden(message string) *Error {
	return &Error{kind: KindForbidden, message: message}
}

func NotFound(message string) *Error {
	return &Error{kind: KindNotFound, message: message}
}

func Conflict(message string) *Error {
	return &Error{kind: KindConflict, message: message}
}

// ValidationError carries one message per offending field.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string { return "validation error" }

func Validation(fields map[string]string) *ValidationError {
	return &ValidationError{Fields: fields}
}

func statusOf(kind Kind) int {
	switch kind {
	case KindBadRequest, KindUnsupportedState:
		return http.StatusBadRequest
	case KindForbidden:
		return http.StatusForbidden
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

// Render writes the JSON error body for err. Unique-constraint violations
// from the store surface as 409; anything unrecognized becomes a generic 500
// so no internal detail leaks.
func Render(c *gin.Context, err error) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		c.JSON(http.StatusBadRequest, ve.Fields)
		return
	}
	var e *Error
	if errors.As(err, &e) {
		c.JSON(statusOf(e.kind), gin.H{"error": e.Error()})
		return
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) {
		c.JSON(http.StatusConflict, gin.H{"error": "data integrity violation"})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
}
