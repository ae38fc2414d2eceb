package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errBoom = errors.New("disk on fire")

func respond(t *testing.T, r *ChainedResponder, err error) (int, Envelope) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/api/things", nil)
	r.RespondError(c, err)
	var body Envelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	return rec.Code, body
}

func TestChainedResponderUsesFirstMatchingMapper(t *testing.T) {
	r := NewChainedResponder("", false, func(err error) (ProblemDetail, bool) {
		if errors.Is(err, errBoom) {
			return ErrConflict.WithDetail("busy"), true
		}
		return ProblemDetail{}, false
	})

	status, body := respond(t, r, errBoom)
	assert.Equal(t, http.StatusConflict, status)
	assert.False(t, body.Success)
	assert.Equal(t, "busy", body.Message)
	require.NotNil(t, body.Error)
	assert.Equal(t, "/api/things", body.Error.Instance)
}

func TestUnknownErrorsHideDetailsOutsideDebug(t *testing.T) {
	status, body := respond(t, NewChainedResponder("", false), errBoom)
	assert.Equal(t, http.StatusInternalServerError, status)
	assert.Equal(t, "Internal server error", body.Message)
	assert.NotContains(t, body.Error.Extensions, "debug")

	_, body = respond(t, NewChainedResponder("", true), errBoom)
	assert.Equal(t, "disk on fire", body.Error.Extensions["debug"])
}

func TestProblemDetailPassesThrough(t *testing.T) {
	status, body := respond(t, NewChainedResponder("https://nursery.example", false), ErrForbidden.WithDetail("Unauthorized"))
	assert.Equal(t, http.StatusForbidden, status)
	assert.Equal(t, "Unauthorized", body.Message)
	assert.Equal(t, "https://nursery.example/problems/forbidden", body.Error.Type)
}
