package controller

import (
	"errors"
	"reflect"
	"strings"
	"unicode"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	domainerror "github.com/anbu-gynaecare/webapp/internal/domain/error"
)

func init() {
	if v, ok := binding.Validator.Engine().(*validator.Validate); ok {
		v.RegisterTagNameFunc(jsonFieldName)
	}
}

// jsonFieldName reports validation failures under the request's JSON names.
func jsonFieldName(field reflect.StructField) string {
	name, _, _ := strings.Cut(field.Tag.Get("json"), ",")
	if name == "-" {
		return ""
	}
	if name == "" {
		return field.Name
	}
	return name
}

// bindJSON decodes the request body into obj and checks its binding tags.
// On failure it writes the error response and returns false.
func bindJSON(ctx *gin.Context, obj any) bool {
	err := ctx.ShouldBindJSON(obj)
	if err == nil {
		return true
	}

	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		respondError(ctx, bindingError(fieldErrs[0]))
		return false
	}
	invalidBody(ctx)
	return false
}

// bindingError turns the first failed binding rule into a ValidationError.
func bindingError(fe validator.FieldError) error {
	field := fe.Field()
	label := fieldLabel(field)

	switch fe.Tag() {
	case "required":
		return domainerror.NewMissingFieldError(field)
	case "email":
		return domainerror.NewValidationError(field, "Please enter a valid email address")
	case "oneof":
		return domainerror.NewValidationError(field,
			label+" must be one of "+strings.Join(strings.Fields(fe.Param()), ", "))
	case "gt":
		return domainerror.NewValidationError(field, label+" must be greater than "+fe.Param())
	case "min":
		return domainerror.NewValidationError(field, label+" must be at least "+fe.Param()+unit(fe))
	case "max":
		return domainerror.NewValidationError(field, label+" must be at most "+fe.Param()+unit(fe))
	default:
		return domainerror.NewValidationError(field, label+" is invalid")
	}
}

func unit(fe validator.FieldError) string {
	if fe.Kind() == reflect.String {
		return " characters"
	}
	return ""
}

// fieldLabel turns a JSON name like period_flow into "Period flow".
func fieldLabel(field string) string {
	label := []rune(strings.ReplaceAll(field, "_", " "))
	if len(label) == 0 {
		return field
	}
	label[0] = unicode.ToUpper(label[0])
	return string(label)
}
