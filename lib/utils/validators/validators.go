package validators

import (
	"fmt"
	"reflect"
	"regexp"
	"strings"

	apperrors "employee-management-backend/lib/utils/app-errors"

	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
)

var validate = newValidator()

var (
	phoneRegex        = regexp.MustCompile(`^(08|62)[0-9]{8,13}$`)
	employeeCodeRegex = regexp.MustCompile(`^EMP[0-9]{4,}$`)
	dictCodeRegex     = regexp.MustCompile(`^[A-Z0-9_-]{2,20}$`)
)

var disposableDomains = map[string]struct{}{
	"tempmail.com":      {},
	"throwaway.email":   {},
	"10minutemail.com":  {},
	"guerrillamail.com": {},
	"mailinator.com":    {},
	"trashmail.com":     {},
}

func newValidator() *validator.Validate {
	v := validator.New(validator.WithRequiredStructEnabled())
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		if name == "-" || name == "" {
			return fld.Name
		}
		return name
	})
	_ = v.RegisterValidation("phone", func(fl validator.FieldLevel) bool {
		return IsValidPhone(fl.Field().String())
	})
	_ = v.RegisterValidation("emp_code", func(fl validator.FieldLevel) bool {
		return employeeCodeRegex.MatchString(fl.Field().String())
	})
	_ = v.RegisterValidation("dict_code", func(fl validator.FieldLevel) bool {
		return dictCodeRegex.MatchString(NormalizeCode(fl.Field().String()))
	})
	_ = v.RegisterValidation("not_disposable", func(fl validator.FieldLevel) bool {
		return !IsDisposableEmail(fl.Field().String())
	})
	_ = v.RegisterValidation("date", func(fl validator.FieldLevel) bool {
		return dateRegex.MatchString(fl.Field().String())
	})
	return v
}

var dateRegex = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// Struct проверка по тегам validate, ошибки собираются по полям
func Struct(s any) error {
	err := validate.Struct(s)
	if err == nil {
		return nil
	}
	var validationErrs validator.ValidationErrors
	if !errors.As(err, &validationErrs) {
		return errors.Wrap(err, "ошибка валидации")
	}
	fields := make(map[string]string, len(validationErrs))
	for _, fieldErr := range validationErrs {
		fields[fieldErr.Field()] = fieldMessage(fieldErr)
	}
	return apperrors.ValidationFields(fields)
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "обязательное поле"
	case "email":
		return "почта имеет неправильный формат"
	case "not_disposable":
		return "одноразовые почтовые сервисы запрещены"
	case "phone":
		return "телефон должен содержать 10-15 цифр и начинаться с 08 или 62"
	case "emp_code":
		return "табельный номер должен быть в формате EMP0001"
	case "dict_code":
		return "код должен содержать от 2 до 20 символов A-Z, 0-9, _ или -"
	case "date":
		return "дата должна быть в формате ГГГГ-ММ-ДД"
	case "min":
		return fmt.Sprintf("значение меньше допустимого (%s)", fe.Param())
	case "max":
		return fmt.Sprintf("значение больше допустимого (%s)", fe.Param())
	case "oneof":
		return fmt.Sprintf("допустимые значения: %s", fe.Param())
	case "gte":
		return fmt.Sprintf("значение должно быть не меньше %s", fe.Param())
	}
	return "некорректное значение"
}

func NormalizeCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func IsDisposableEmail(email string) bool {
	parts := strings.Split(NormalizeEmail(email), "@")
	if len(parts) != 2 {
		return false
	}
	_, ok := disposableDomains[parts[1]]
	return ok
}

// CheckCompanyDomain при заданном домене компании почта должна быть в нем
func CheckCompanyDomain(email, domain string) error {
	if domain == "" {
		return nil
	}
	if !strings.HasSuffix(NormalizeEmail(email), "@"+strings.ToLower(domain)) {
		return apperrors.ValidationFields(map[string]string{
			"email": fmt.Sprintf("почта должна быть в домене %s", domain),
		})
	}
	return nil
}

func IsValidPhone(phone string) bool {
	return phoneRegex.MatchString(phone)
}
