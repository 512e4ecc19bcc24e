package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
)

func record(t *testing.T, path string, fn func(c *gin.Context)) *httptest.ResponseRecorder {
	t.Helper()
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, path, nil)
	fn(c)
	return rec
}

func TestRespond_FillsInstanceAndContentType(t *testing.T) {
	rec := record(t, "/api/products/7", func(c *gin.Context) {
		Respond(c, NewNotFoundProblem("product", 7))
	})

	require.Equal(t, http.StatusNotFound, rec.Code)
	require.Equal(t, ContentTypeProblemJSON, rec.Header().Get("Content-Type"))

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, TypeNotFound, problem.Type)
	require.Equal(t, "/api/products/7", problem.Instance)
}

func TestRespond_PrependsBaseURI(t *testing.T) {
	responder := NewResponder("https://api.example.com")
	rec := record(t, "/api/orders", func(c *gin.Context) {
		responder.Respond(c, ErrForbidden)
	})

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, "https://api.example.com"+TypeForbidden, problem.Type)
}

func TestRespondError_PassesThroughProblemDetail(t *testing.T) {
	rec := record(t, "/api/orders", func(c *gin.Context) {
		RespondError(c, ErrConflict.WithDetail("email already registered"))
	})

	require.Equal(t, http.StatusConflict, rec.Code)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, TypeConflict, problem.Type)
	require.Equal(t, "email already registered", problem.Detail)
}

func TestRespondError_WrapsPlainErrorAsInternal(t *testing.T) {
	rec := record(t, "/api/orders", func(c *gin.Context) {
		RespondError(c, stderrors.New("connection refused"))
	})

	require.Equal(t, http.StatusInternalServerError, rec.Code)

	var problem ProblemDetail
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &problem))
	require.Equal(t, TypeInternal, problem.Type)
}
