package helper

import (
	"errors"
	"net/http"
	"sort"

	"github.com/gin-gonic/gin"

	"userapp/internal/core/domain"
	"userapp/internal/core/model/response"
)

func SendSuccess(c *gin.Context, statusCode int, data any, message ...string) {
	response := response.SuccessResponse{
		Data: data,
	}

	if len(message) > 0 && message[0] != "" {
		response.Message = message[0]
	}

	c.JSON(statusCode, response)
}

func SendError(c *gin.Context, statusCode int, code string, errors []response.ValidationError, details ...any) {
	errorResponse := response.ErrorResponse{
		Error: response.ResponseError{
			Code:   code,
			Errors: errors,
		},
	}

	if len(details) > 0 {
		errorResponse.Error.Details = details[0]
	}

	c.JSON(statusCode, errorResponse)
}

func SendValidationError(c *gin.Context, ve domain.ValidationErrors) {
	fields := make([]string, 0, len(ve))

	for field := range ve {
		fields = append(fields, field)
	}

	sort.Strings(fields)

	errors := make([]response.ValidationError, 0, len(fields))

	for _, field := range fields {
		errors = append(errors, response.ValidationError{
			Field:   field,
			Message: ve[field],
		})
	}

	SendError(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", errors)
}

func SendInternalError(c *gin.Context, message string, details ...any) {
	errors := []response.ValidationError{
		{
			Field:   "server",
			Message: message,
		},
	}

	SendError(c, http.StatusInternalServerError, "INTERNAL_ERROR", errors, details...)
}

func SendBadRequestError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusBadRequest, "BAD_REQUEST", errors)
}

func SendNotFoundError(c *gin.Context, message string) {
	errors := []response.ValidationError{
		{
			Field:   "resource",
			Message: message,
		},
	}

	SendError(c, http.StatusNotFound, "NOT_FOUND", errors)
}

func SendConflictError(c *gin.Context, field string, message string) {
	errors := []response.ValidationError{
		{
			Field:   field,
			Message: message,
		},
	}

	SendError(c, http.StatusConflict, "CONFLICT", errors)
}

// SendDomainError maps the error taxonomy onto the documented response
// categories. Unknown errors become an opaque internal error, never a stack
// trace.
func SendDomainError(c *gin.Context, err error) {
	var ve domain.ValidationErrors
	var malformed *domain.MalformedRequestError

	switch {
	case errors.As(err, &ve):
		SendValidationError(c, ve)
	case errors.As(err, &malformed):
		SendBadRequestError(c, malformed.Field, malformed.Message)
	case errors.Is(err, domain.ErrUserNotFound):
		SendNotFoundError(c, "user not found")
	case errors.Is(err, domain.ErrNoSuchHobby):
		SendNotFoundError(c, "hobby not present on user")
	case errors.Is(err, domain.ErrEmailTaken):
		SendConflictError(c, "email", "email already registered")
	case errors.Is(err, domain.ErrInvalidID):
		SendBadRequestError(c, "id", "id must be a 24 character hex string")
	case errors.Is(err, domain.ErrEmptyPatch):
		SendBadRequestError(c, "body", "no fields supplied for update")
	case errors.Is(err, domain.ErrHobbiesFull):
		SendValidationError(c, domain.ValidationErrors{"hobbies": err.Error()})
	default:
		SendInternalError(c, "Something went wrong")
	}
}
