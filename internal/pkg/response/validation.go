package response

import (
	"errors"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/courtwala/courtwala-backend/internal/pkg/apperror"
)

// Validation errors are reported keyed by the wire name of the offending
// field, so teach the validator to use json/form tags instead of Go field
// names.
func init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "" {
			name = strings.SplitN(fld.Tag.Get("form"), ",", 2)[0]
		}
		if name == "" || name == "-" {
			return fld.Name
		}
		return name
	})
}

// ValidationError translates a binding failure into a 422 response carrying
// a field -> message map.
func ValidationError(c *gin.Context, err error) {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		fields := make(map[string]string, len(verrs))
		for _, fe := range verrs {
			fields[fe.Field()] = fieldMessage(fe)
		}
		Error(c, apperror.NewValidation(fields))
		return
	}

	// Not a validator error: malformed JSON, wrong type, etc.
	Error(c, apperror.NewValidation(map[string]string{"body": "is malformed"}))
}

// FieldError sends a 422 response blaming a single field.
func FieldError(c *gin.Context, field, message string) {
	Error(c, apperror.NewValidation(map[string]string{field: message}))
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "is required"
	case "uuid":
		return "must be a valid UUID"
	case "email":
		return "must be a valid email address"
	case "min":
		return "must be at least " + fe.Param()
	case "max":
		return "must be at most " + fe.Param()
	case "oneof":
		return "must be one of: " + strings.Join(strings.Fields(fe.Param()), ", ")
	default:
		return "is invalid"
	}
}
