package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseAPIError(t *testing.T) {
	tests := []struct {
		name   string
		status int
		body   string
		want   *APIError
	}{
		{"string detail", 404, `{"detail":"Project not found"}`, &APIError{Detail: "Project not found", StatusCode: 404}},
		{"explicit status", 400, `{"detail":"bad","status_code":409}`, &APIError{Detail: "bad", StatusCode: 409}},
		{"html body", 502, `<html>Bad Gateway</html>`, &APIError{Detail: UnexpectedDetail, StatusCode: 502}},
		{"empty body", 500, ``, &APIError{Detail: UnexpectedDetail, StatusCode: 500}},
		{"no detail", 500, `{"error":"boom"}`, &APIError{Detail: RequestFailedDetail, StatusCode: 500}},
		{"empty detail", 400, `{"detail":""}`, &APIError{Detail: RequestFailedDetail, StatusCode: 400}},
		{"object detail", 400, `{"detail":{"code":7},"status_code":418}`, &APIError{Detail: RequestFailedDetail, StatusCode: 418}},
		{
			"validation list", 422,
			`{"detail":[{"loc":["body","title"],"msg":"field required","type":"missing"},{"loc":["query","limit"],"msg":"must be positive"}]}`,
			&APIError{Detail: "title: field required; query.limit: must be positive", StatusCode: 422},
		},
		{"list without loc", 422, `{"detail":[{"msg":"invalid"}]}`, &APIError{Detail: "invalid", StatusCode: 422}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseAPIError(tt.status, []byte(tt.body)))
		})
	}
}

func TestStatusCode(t *testing.T) {
	err := fmt.Errorf("failed to load: %w", NewAPIError(403, "forbidden"))
	assert.Equal(t, 403, StatusCode(err))
	assert.Equal(t, "forbidden", NewAPIError(403, "forbidden").Error())
	assert.Zero(t, StatusCode(fmt.Errorf("plain")))
}

func TestResponders(t *testing.T) {
	gin.SetMode(gin.TestMode)

	tests := []struct {
		name    string
		respond func(*gin.Context)
		status  int
		detail  string
	}{
		{"unauthorized default", func(c *gin.Context) { Unauthorized(c, "") }, http.StatusUnauthorized, "Authentication required"},
		{"not found", func(c *gin.Context) { NotFound(c, "Task not found") }, http.StatusNotFound, "Task not found"},
		{"bad request default", func(c *gin.Context) { BadRequest(c, "") }, http.StatusBadRequest, "Invalid request"},
		{"conflict", func(c *gin.Context) { Conflict(c, "") }, http.StatusConflict, "Resource conflict"},
		{"internal", func(c *gin.Context) { InternalError(c, "") }, http.StatusInternalServerError, "Internal server error"},
		{"bad gateway", func(c *gin.Context) { BadGateway(c, "") }, http.StatusBadGateway, "Board API unavailable"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(w)
			tt.respond(c)

			assert.Equal(t, tt.status, w.Code)
			var body APIError
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
			assert.Equal(t, tt.detail, body.Detail)
			assert.Equal(t, tt.status, body.StatusCode)
		})
	}
}
