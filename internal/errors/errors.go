package errors

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

const (
	// UnexpectedDetail is used when an error body is not a JSON envelope.
	UnexpectedDetail = "unexpected error"
	// RequestFailedDetail is used for a JSON envelope without a usable detail.
	RequestFailedDetail = "request failed"
)

// APIError is the error envelope of the board API. The BFF answers with the
// same shape.
type APIError struct {
	Detail     string `json:"detail"`
	StatusCode int    `json:"status_code,omitempty"`
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Detail
}

// NewAPIError creates a new APIError
func NewAPIError(statusCode int, detail string) *APIError {
	return &APIError{
		Detail:     detail,
		StatusCode: statusCode,
	}
}

// validationIssue is one entry of a FastAPI validation error list.
type validationIssue struct {
	Loc []any  `json:"loc"`
	Msg string `json:"msg"`
}

// ParseAPIError decodes an error response body. Bodies that are not a JSON
// envelope become UnexpectedDetail with the HTTP status, envelopes without a
// usable detail become RequestFailedDetail. A list-valued detail is
// flattened into "field: message" pairs.
func ParseAPIError(status int, body []byte) *APIError {
	var envelope struct {
		Detail     json.RawMessage `json:"detail"`
		StatusCode int             `json:"status_code"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		return NewAPIError(status, UnexpectedDetail)
	}

	apiErr := &APIError{StatusCode: envelope.StatusCode}
	if apiErr.StatusCode == 0 {
		apiErr.StatusCode = status
	}

	var detail string
	if err := json.Unmarshal(envelope.Detail, &detail); err == nil {
		apiErr.Detail = detail
	} else {
		var issues []validationIssue
		if err := json.Unmarshal(envelope.Detail, &issues); err == nil && len(issues) > 0 {
			apiErr.Detail = flattenIssues(issues)
		}
	}
	if apiErr.Detail == "" {
		apiErr.Detail = RequestFailedDetail
	}
	return apiErr
}

func flattenIssues(issues []validationIssue) string {
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		var loc []string
		for _, l := range issue.Loc {
			if s, ok := l.(string); ok && s != "body" {
				loc = append(loc, s)
			}
		}
		if len(loc) == 0 {
			parts = append(parts, issue.Msg)
			continue
		}
		parts = append(parts, strings.Join(loc, ".")+": "+issue.Msg)
	}
	return strings.Join(parts, "; ")
}

// StatusCode extracts the HTTP status carried by err, or 0.
func StatusCode(err error) int {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.StatusCode
	}
	return 0
}

// RespondWithError sends an error response
func RespondWithError(c *gin.Context, statusCode int, detail string) {
	c.JSON(statusCode, NewAPIError(statusCode, detail))
}

// Helper functions for common error responses

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Authentication required"
	}
	RespondWithError(c, http.StatusUnauthorized, detail)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Resource not found"
	}
	RespondWithError(c, http.StatusNotFound, detail)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Invalid request"
	}
	RespondWithError(c, http.StatusBadRequest, detail)
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Resource conflict"
	}
	RespondWithError(c, http.StatusConflict, detail)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Internal server error"
	}
	RespondWithError(c, http.StatusInternalServerError, detail)
}

// BadGateway sends a 502 response, used when the board API is unreachable
func BadGateway(c *gin.Context, detail string) {
	if detail == "" {
		detail = "Board API unavailable"
	}
	RespondWithError(c, http.StatusBadGateway, detail)
}
