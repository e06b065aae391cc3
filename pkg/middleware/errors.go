package middleware

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strings"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/famsalud/famsalud/backend/api/internal/apperrors"
	"github.com/famsalud/famsalud/backend/api/internal/models"
	"github.com/famsalud/famsalud/backend/api/pkg/logger"
)

// ErrorResponse is the body of every error reply.
type ErrorResponse struct {
	StatusCode int                    `json:"statusCode"`
	Message    string                 `json:"message"`
	Errors     []apperrors.FieldError `json:"errors,omitempty"`
	Timestamp  string                 `json:"timestamp"`
	Path       string                 `json:"path"`
}

const timestampLayout = "2006-01-02T15:04:05.000Z"

func newErrorResponse(c *gin.Context, status int, message string, fields []apperrors.FieldError) ErrorResponse {
	return ErrorResponse{
		StatusCode: status,
		Message:    message,
		Errors:     fields,
		Timestamp:  time.Now().UTC().Format(timestampLayout),
		Path:       c.Request.URL.RequestURI(),
	}
}

// AbortWithError writes the error envelope with an explicit status.
func AbortWithError(c *gin.Context, status int, message string) {
	c.AbortWithStatusJSON(status, newErrorResponse(c, status, message, nil))
}

// ErrorHandler renders the last error attached with c.Error as the error envelope.
// Only internal failures are logged, with their cause; the client sees a generic message.
func ErrorHandler() gin.HandlerFunc {
	RegisterValidation()
	return func(c *gin.Context) {
		c.Next()
		if len(c.Errors) == 0 || c.Writer.Written() {
			return
		}
		ge := c.Errors.Last()
		e := translate(ge)
		status := apperrors.HTTPStatus(e.Kind)
		if e.Kind == apperrors.KindInternal {
			logger.With(logger.LevelError, "request failed",
				"method", c.Request.Method, "path", c.Request.URL.Path, "status", status, "error", ge.Err.Error())
		}
		c.AbortWithStatusJSON(status, newErrorResponse(c, status, e.Message, e.Fields))
	}
}

func translate(ge *gin.Error) *apperrors.Error {
	var verrs validator.ValidationErrors
	if errors.As(ge.Err, &verrs) {
		fields := make([]apperrors.FieldError, 0, len(verrs))
		for _, fe := range verrs {
			fields = append(fields, apperrors.FieldError{Field: fe.Field(), Message: fieldMessage(fe)})
		}
		return apperrors.Validation("Validation failed", fields...)
	}
	if ge.IsType(gin.ErrorTypeBind) {
		if _, ok := apperrors.As(ge.Err); !ok {
			return apperrors.Validation(bindMessage(ge.Err))
		}
	}
	return apperrors.Normalize(ge.Err)
}

func bindMessage(err error) string {
	var syntax *json.SyntaxError
	var typ *json.UnmarshalTypeError
	switch {
	case errors.Is(err, io.EOF):
		return "Request body is required"
	case errors.As(err, &syntax), errors.Is(err, io.ErrUnexpectedEOF):
		return "Malformed JSON in request body"
	case errors.As(err, &typ):
		return fmt.Sprintf("%s must be of type %s", typ.Field, typ.Type.String())
	}
	return err.Error()
}

func fieldMessage(fe validator.FieldError) string {
	f := fe.Field()
	switch fe.Tag() {
	case "required":
		return f + " should not be empty"
	case "email":
		return f + " must be an email"
	case "min":
		return fmt.Sprintf("%s must be longer than or equal to %s characters", f, fe.Param())
	case "max":
		return fmt.Sprintf("%s must be shorter than or equal to %s characters", f, fe.Param())
	case "uuid", "uuid4":
		return f + " must be a UUID"
	case "oneof":
		return fmt.Sprintf("%s must be one of the following values: %s", f, strings.ReplaceAll(fe.Param(), " ", ", "))
	case "isodate":
		return f + " must be a valid ISO 8601 date string"
	}
	return f + " is invalid"
}

var registerOnce sync.Once

// RegisterValidation makes gin's validator report JSON field names and adds
// the isodate tag. It is idempotent.
func RegisterValidation() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		v.RegisterTagNameFunc(func(fld reflect.StructField) string {
			name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
			if name == "-" {
				return ""
			}
			if name == "" {
				return fld.Name
			}
			return name
		})
		_ = v.RegisterValidation("isodate", func(fl validator.FieldLevel) bool {
			_, err := models.ParseDate(fl.Field().String())
			return err == nil
		})
	})
}

// NotFoundHandler renders unknown routes with the error envelope.
func NotFoundHandler(c *gin.Context) {
	AbortWithError(c, http.StatusNotFound, fmt.Sprintf("Cannot %s %s", c.Request.Method, c.Request.URL.Path))
}
