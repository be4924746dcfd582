package validation

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-SchedulingService/pkg/types"
)

// FieldError ошибка валидации одного поля
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

func (e FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// Errors набор ошибок валидации
type Errors []FieldError

func (e Errors) Error() string {
	if len(e) == 0 {
		return ""
	}
	messages := make([]string, 0, len(e))
	for _, fe := range e {
		messages = append(messages, fe.Error())
	}
	return fmt.Sprintf("validation failed: %s", strings.Join(messages, "; "))
}

// Validator обертка над go-playground/validator с тегами сервиса.
// Имена полей в ошибках берутся из json тегов.
type Validator struct {
	validate *validator.Validate
}

// New создает валидатор и регистрирует тег hhmm
func New() *Validator {
	v := validator.New()

	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "" || name == "-" {
			return f.Name
		}
		return name
	})

	// Регистрация падает только на пустом имени тега
	_ = v.RegisterValidation("hhmm", validateHHMM)

	return &Validator{validate: v}
}

// validateHHMM проверяет строку "HH:MM" в 24-часовом формате
func validateHHMM(fl validator.FieldLevel) bool {
	return types.TimeString(fl.Field().String()).Validate() == nil
}

// Struct валидирует структуру и переводит ошибки в Errors
func (v *Validator) Struct(s interface{}) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return err
	}
	return translate(validationErrs)
}

func translate(errs validator.ValidationErrors) Errors {
	result := make(Errors, 0, len(errs))
	for _, err := range errs {
		message := err.Error()

		switch err.Tag() {
		case "required":
			message = "is required"
		case "min", "gte":
			message = fmt.Sprintf("must be at least %s", err.Param())
		case "max", "lte":
			message = fmt.Sprintf("must be at most %s", err.Param())
		case "gt":
			message = fmt.Sprintf("must be greater than %s", err.Param())
		case "oneof":
			message = fmt.Sprintf("must be one of [%s]", err.Param())
		case "email":
			message = "must be a valid email address"
		case "timezone":
			message = "must be a valid IANA timezone"
		case "hhmm":
			message = "must be in HH:MM 24-hour format"
		}

		result = append(result, FieldError{Field: fieldPath(err.Namespace()), Message: message})
	}
	return result
}

// fieldPath убирает имя корневой структуры: "Request.openingHours.monday" -> "openingHours.monday"
func fieldPath(namespace string) string {
	if i := strings.IndexByte(namespace, '.'); i >= 0 {
		return namespace[i+1:]
	}
	return namespace
}
