package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"planit/internal/service"
)

// webError maps service errors for the browser-facing routes. Validation
// failures come back as a field-keyed body the rendering layer attaches
// to the originating form.
func (s *Server) webError(c *gin.Context, err error) {
	s.writeError(c, err, http.StatusUnprocessableEntity)
}

// apiError maps service errors for the REST routes.
func (s *Server) apiError(c *gin.Context, err error) {
	s.writeError(c, err, http.StatusBadRequest)
}

func (s *Server) writeError(c *gin.Context, err error, validationStatus int) {
	var verr *service.ValidationError
	var fieldErrs validator.ValidationErrors

	switch {
	case errors.As(err, &verr):
		c.JSON(validationStatus, gin.H{"errors": verr.Fields})
	case errors.As(err, &fieldErrs):
		fields := make(map[string]string, len(fieldErrs))
		for _, fe := range fieldErrs {
			fields[fe.Field()] = bindingMessage(fe)
		}
		c.JSON(validationStatus, gin.H{"errors": fields})
	case isMalformedBody(err):
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
	case errors.Is(err, service.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
	case errors.Is(err, service.ErrDuplicateCategory):
		c.JSON(validationStatus, gin.H{"errors": gin.H{"name": err.Error()}})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
	default:
		s.log.Error("request failed", "error", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}

func isMalformedBody(err error) bool {
	var syntaxErr *json.SyntaxError
	var typeErr *json.UnmarshalTypeError
	return errors.As(err, &syntaxErr) ||
		errors.As(err, &typeErr) ||
		errors.Is(err, io.EOF) ||
		errors.Is(err, io.ErrUnexpectedEOF) ||
		errors.Is(err, strconv.ErrSyntax)
}

func bindingMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "this field is required"
	case "oneof":
		return "must be one of: " + fe.Param()
	case "dateonly":
		return "date must be formatted YYYY-MM-DD"
	default:
		return "invalid value"
	}
}
