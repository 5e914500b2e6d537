package serverutils

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

var validate = newValidator()

func newValidator() *validator.Validate {
	v := validator.New()
	// report json field names
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	return v
}

// ValidationError is a rejected request body.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return "invalid request: " + strings.Join(e.Fields, "; ")
}

// ParseBody decodes the JSON body into out and runs its validate tags.
func ParseBody(ctx *fiber.Ctx, out interface{}) error {
	if err := ctx.BodyParser(out); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "invalid request body")
	}
	return Validate(out)
}

func Validate(out interface{}) error {
	err := validate.Struct(out)
	if err == nil {
		return nil
	}
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}
	fields := make([]string, 0, len(verrs))
	for _, fe := range verrs {
		fields = append(fields, describe(fe))
	}
	return &ValidationError{Fields: fields}
}

func describe(fe validator.FieldError) string {
	// drop the root struct name from the namespace
	field := fe.Namespace()
	if i := strings.IndexByte(field, '.'); i != -1 {
		field = field[i+1:]
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must contain at least %s item(s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s failed %s validation", field, fe.Tag())
	}
}
