package handlers

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/yukikurage/kanban-web/internal/dto"
	apierrors "github.com/yukikurage/kanban-web/internal/errors"
	"github.com/yukikurage/kanban-web/internal/repository"
	"github.com/yukikurage/kanban-web/internal/services"
)

// ConfigureBinding makes gin's validator report JSON field names.
func ConfigureBinding() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		services.UseJSONFieldNames(v)
	}
}

// respondBindError answers a failed ShouldBindJSON.
func respondBindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		apierrors.BadRequest(c, services.NewValidationError(verrs).Error())
		return
	}
	apierrors.BadRequest(c, "Invalid request body")
}

// respondError maps service and board API errors to responses. Errors the
// board API returned keep their status and detail.
func respondError(c *gin.Context, err error) {
	var (
		validationErr *services.ValidationError
		notFoundErr   *dto.ColumnNotFoundError
		apiErr        *apierrors.APIError
	)

	switch {
	case errors.As(err, &validationErr):
		apierrors.BadRequest(c, validationErr.Error())
	case errors.As(err, &notFoundErr):
		apierrors.RespondWithError(c, http.StatusUnprocessableEntity, notFoundErr.Error())
	case errors.Is(err, services.ErrNotAuthenticated),
		errors.Is(err, services.ErrNoRefreshToken):
		apierrors.Unauthorized(c, err.Error())
	case errors.Is(err, services.ErrTaskNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrInvalidStatus):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrNoBoardSelected),
		errors.Is(err, services.ErrMoveInProgress):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, context.DeadlineExceeded):
		apierrors.RespondWithError(c, http.StatusGatewayTimeout, "Board API timed out")
	case errors.Is(err, repository.ErrTransport):
		apierrors.BadGateway(c, "")
	case errors.As(err, &apiErr):
		status := apiErr.StatusCode
		if status < 400 {
			status = http.StatusBadGateway
		}
		apierrors.RespondWithError(c, status, apiErr.Detail)
	default:
		apierrors.InternalError(c, "")
	}
}
