package resource

import (
	"encoding/json"
	"fmt"

	"github.com/go-playground/validator/v10"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

// FieldError 描述单个字段的校验失败。
type FieldError struct {
	Field string      `json:"field,omitempty"`
	Error string      `json:"error"`
	Value interface{} `json:"value"`
}

// ResourceError 资源校验失败或唯一约束冲突。
type ResourceError struct {
	Message     string
	FieldErrors []FieldError
}

func (e *ResourceError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if len(e.FieldErrors) > 0 {
		return fmt.Sprintf("%s: %s", e.FieldErrors[0].Field, e.FieldErrors[0].Error)
	}
	return "resource error"
}

// Details 返回字段级错误，写入响应体的 fieldErrors。
func (e *ResourceError) Details() interface{} {
	if len(e.FieldErrors) == 0 {
		return nil
	}
	return e.FieldErrors
}

// NewValidationError 返回 422 校验错误。
func NewValidationError(fieldErrors []FieldError) error {
	return errors.WrapC(&ResourceError{FieldErrors: fieldErrors}, code.ErrValidation, "Validation failed")
}

// NewBindError 请求绑定失败统一返回 400，请求参数校验失败时带上 fieldErrors。
func NewBindError(err error) error {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		return errors.WrapC(&ResourceError{FieldErrors: ToFieldErrors(err)}, code.ErrBind, "Validation failed")
	}
	return errors.WrapC(err, code.ErrBind, "%s", err.Error())
}

func newDuplicateError(dup *DuplicateKeyError) error {
	msg := "Duplicate value: " + dup.KeyValue
	return errors.WrapC(&ResourceError{Message: msg, FieldErrors: []FieldError{}}, code.ErrResourceConflict, "%s", msg)
}

func newNotFoundError(id, resourceName string) error {
	return errors.WithCode(code.ErrResourceNotFound,
		"Resource not found for resourceId: %s and resource: %s", id, resourceName)
}

// mapWriteError 把存储层的唯一约束错误转换为 409。
func mapWriteError(err error) error {
	var dup *DuplicateKeyError
	if errors.As(err, &dup) {
		return newDuplicateError(dup)
	}
	if errors.IsWithCode(err) {
		return err
	}
	return errors.WrapC(err, code.ErrDatabase, "%s", err.Error())
}

// ToFieldErrors 收集 validator 返回的全部字段错误。
func ToFieldErrors(err error) []FieldError {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return []FieldError{{Error: err.Error()}}
	}

	fieldErrors := make([]FieldError, 0, len(verrs))
	for _, fe := range verrs {
		fieldErrors = append(fieldErrors, FieldError{
			Field: fe.Field(),
			Error: fieldMessage(fe),
			Value: fe.Value(),
		})
	}
	return fieldErrors
}

func fieldMessage(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return fe.Field() + " is required"
	case "email":
		return fe.Field() + " must be a valid email"
	case "min":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	case "max":
		return fmt.Sprintf("%s must be less than or equal to %s", fe.Field(), fe.Param())
	case "gte":
		return fmt.Sprintf("%s must be greater than or equal to %s", fe.Field(), fe.Param())
	default:
		return fmt.Sprintf("%s failed on the %s rule", fe.Field(), fe.Tag())
	}
}

// KeyValueString 将冲突的键值格式化为 JSON，如 {"email":"a@b.c"}。
func KeyValueString(kv map[string]interface{}) string {
	b, err := json.Marshal(kv)
	if err != nil {
		return fmt.Sprint(kv)
	}
	return string(b)
}
