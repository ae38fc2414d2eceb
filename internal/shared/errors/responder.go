package errors

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
)

// Envelope is the body of every API response.
type Envelope struct {
	Success    bool           `json:"success"`
	Message    string         `json:"message"`
	Data       any            `json:"data,omitempty"`
	Count      *int           `json:"count,omitempty"`
	Pagination any            `json:"pagination,omitempty"`
	Error      *ProblemDetail `json:"error,omitempty"`
}

// Responder writes envelopes. A non-empty BaseURI is prefixed to relative
// problem types; Debug copies the wrapped error chain into a "debug"
// extension of 5xx problems.
type Responder struct {
	BaseURI string
	Debug   bool
}

func NewResponder(baseURI string, debug bool) *Responder {
	return &Responder{BaseURI: baseURI, Debug: debug}
}

// Respond sends a failed envelope carrying problem.
func (r *Responder) Respond(c *gin.Context, problem ProblemDetail) {
	if r.BaseURI != "" && len(problem.Type) > 0 && problem.Type[0] == '/' {
		problem.Type = r.BaseURI + problem.Type
	}
	if problem.Instance == "" && c.Request != nil {
		problem.Instance = c.Request.URL.Path
	}
	c.AbortWithStatusJSON(problem.Status, Envelope{
		Success: false,
		Message: problem.Message(),
		Error:   &problem,
	})
}

// RespondError converts err to a problem. Unknown errors become a 500
// without leaking their text unless debugging is on.
func (r *Responder) RespondError(c *gin.Context, err error) {
	var problem ProblemDetail
	if errors.As(err, &problem) {
		r.Respond(c, problem)
		return
	}
	_ = c.Error(err)
	r.Respond(c, r.debug(ErrInternal.WithDetail("Internal server error"), err))
}

func (r *Responder) debug(problem ProblemDetail, err error) ProblemDetail {
	if !r.Debug || err == nil {
		return problem
	}
	return problem.WithExtension("debug", err.Error())
}

// OK sends a successful envelope with data.
func (r *Responder) OK(c *gin.Context, status int, message string, data any) {
	c.JSON(status, Envelope{Success: true, Message: message, Data: data})
}

// List sends a successful envelope with a collection and its size.
func (r *Responder) List(c *gin.Context, message string, data any, count int, pagination any) {
	c.JSON(http.StatusOK, Envelope{Success: true, Message: message, Data: data, Count: &count, Pagination: pagination})
}

// NotFound sends a 404 with a plain message.
func (r *Responder) NotFound(c *gin.Context, message string) {
	r.Respond(c, ErrNotFound.WithDetail(message))
}

// ErrorMapper recognises an application error and picks its problem.
type ErrorMapper func(err error) (ProblemDetail, bool)

// ChainedResponder asks each mapper in order before falling back to a 500.
type ChainedResponder struct {
	*Responder
	mappers []ErrorMapper
}

func NewChainedResponder(baseURI string, debug bool, mappers ...ErrorMapper) *ChainedResponder {
	return &ChainedResponder{
		Responder: NewResponder(baseURI, debug),
		mappers:   mappers,
	}
}

func (r *ChainedResponder) RespondError(c *gin.Context, err error) {
	for _, mapper := range r.mappers {
		if problem, ok := mapper(err); ok {
			if problem.Status >= http.StatusInternalServerError {
				_ = c.Error(err)
				problem = r.debug(problem, err)
			}
			r.Respond(c, problem)
			return
		}
	}
	r.Responder.RespondError(c, err)
}
