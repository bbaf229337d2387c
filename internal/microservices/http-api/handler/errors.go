package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gamereviews/internal/microservices/http-api/middleware"
	"gamereviews/internal/microservices/http-api/service"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

// FieldError is one entry of a 422 response body.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func init() {
	// report json/form names instead of Go field names
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(fieldName)
	}
}

func fieldName(fld reflect.StructField) string {
	for _, tag := range []string{"json", "form"} {
		name, _, _ := strings.Cut(fld.Tag.Get(tag), ",")
		if name == "-" {
			return ""
		}
		if name != "" {
			return name
		}
	}
	return fld.Name
}

func requestContext(c *gin.Context, timeout time.Duration) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), timeout)
}

func unprocessable(c *gin.Context, errs ...FieldError) {
	c.AbortWithStatusJSON(http.StatusUnprocessableEntity, gin.H{"detail": errs})
}

// bindError turns a gin binding failure into a 422 with one entry per field.
func bindError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		out := make([]FieldError, 0, len(verrs))
		for _, fe := range verrs {
			out = append(out, FieldError{Field: fe.Field(), Message: describe(fe)})
		}
		unprocessable(c, out...)
		return
	}

	var typeErr *json.UnmarshalTypeError
	if errors.As(err, &typeErr) {
		unprocessable(c, FieldError{Field: typeErr.Field, Message: "must be of type " + typeErr.Type.String()})
		return
	}

	var numErr *strconv.NumError
	if errors.As(err, &numErr) {
		unprocessable(c, FieldError{Field: "query", Message: fmt.Sprintf("%q is not a valid number", numErr.Num)})
		return
	}

	unprocessable(c, FieldError{Field: "body", Message: "malformed request body"})
}

// bindPatch binds a partial-update body. A request without a body is an empty patch.
func bindPatch(c *gin.Context, obj any) bool {
	if err := c.ShouldBindJSON(obj); err != nil && !errors.Is(err, io.EOF) {
		bindError(c, err)
		return false
	}
	return true
}

func describe(fe validator.FieldError) string {
	unit := ""
	if fe.Kind() == reflect.String {
		unit = " characters"
	}

	switch fe.Tag() {
	case "required":
		return "field required"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param() + unit
	case "max":
		return "must be at most " + fe.Param() + unit
	default:
		return "is invalid"
	}
}

// parseID reads a positive integer path parameter or writes a 422.
func parseID(c *gin.Context, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Param(name), 10, 64)
	if err != nil || id < 1 {
		unprocessable(c, FieldError{Field: name, Message: "must be a positive integer"})
		return 0, false
	}
	return id, true
}

// writeError maps service errors to status codes. Unknown errors are attached
// to the context for the request logger and answered with a generic 500.
func writeError(c *gin.Context, err error) {
	var verr *service.ValidationError
	var nf *service.NotFoundError

	switch {
	case errors.As(err, &verr):
		unprocessable(c, FieldError{Field: verr.Field, Message: verr.Message})
	case errors.As(err, &nf):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": nf.Error()})
	case errors.Is(err, service.ErrNotFound):
		c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"detail": "Not found"})
	case errors.Is(err, service.ErrInvalidCredentials):
		c.Header("WWW-Authenticate", "Bearer")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"detail": "Incorrect email or password"})
	case errors.Is(err, service.ErrUnauthorized):
		middleware.AbortUnauthorized(c)
	default:
		_ = c.Error(err)
		c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"detail": "Internal server error"})
	}
}
