// Package errors renders API failures as problem details inside the
// response envelope.
package errors

import (
	"fmt"
	"maps"
	"net/http"
)

// ProblemDetail is the RFC 7807 shaped body carried in Envelope.Error.
type ProblemDetail struct {
	Type   string `json:"type"`
	Title  string `json:"title"`
	Status int    `json:"status"`
	Detail string `json:"detail,omitempty"`
	// Instance defaults to the request path.
	Instance   string         `json:"instance,omitempty"`
	Extensions map[string]any `json:"extensions,omitempty"`
}

func (p ProblemDetail) Error() string {
	if p.Detail == "" {
		return p.Title
	}
	return fmt.Sprintf("%s: %s", p.Title, p.Detail)
}

// Message is the sentence placed in Envelope.Message: the detail when set,
// the title otherwise.
func (p ProblemDetail) Message() string {
	if p.Detail == "" {
		return p.Title
	}
	return p.Detail
}

// WithDetail returns a copy carrying detail.
func (p ProblemDetail) WithDetail(detail string) ProblemDetail {
	p.Detail = detail
	return p
}

// WithExtension returns a copy with key set; the receiver's map is not shared.
func (p ProblemDetail) WithExtension(key string, value any) ProblemDetail {
	ext := maps.Clone(p.Extensions)
	if ext == nil {
		ext = make(map[string]any, 1)
	}
	ext[key] = value
	p.Extensions = ext
	return p
}

func problem(slug, title string, status int) ProblemDetail {
	return ProblemDetail{Type: "/problems/" + slug, Title: title, Status: status}
}

// Problem catalog. Handlers and mappers attach a detail to one of these.
var (
	ErrValidation        = problem("validation-error", "Validation Error", http.StatusBadRequest)
	ErrUnauthorized      = problem("unauthorized", "Unauthorized", http.StatusUnauthorized)
	ErrForbidden         = problem("forbidden", "Forbidden", http.StatusForbidden)
	ErrNotFound          = problem("not-found", "Resource Not Found", http.StatusNotFound)
	ErrConflict          = problem("conflict", "Conflict", http.StatusConflict)
	ErrInsufficientStock = problem("insufficient-stock", "Insufficient Stock", http.StatusConflict)
	ErrInternal          = problem("internal-error", "Internal Server Error", http.StatusInternalServerError)
	ErrPersistence       = problem("persistence-error", "Persistence Error", http.StatusInternalServerError)
)
