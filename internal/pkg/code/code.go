// Package code 定义业务错误码，并在 init 中注册到 errors 包。
package code

import (
	"net/http"

	"github.com/novalagung/gubrak"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

var _ errors.Coder = &ErrCode{}

// ErrCode implements `errors.Coder` interface.
type ErrCode struct {
	// C refers to the code of the ErrCode.
	C int

	// HTTP status that should be used for the associated error code.
	HTTP int

	// External (user) facing error text.
	Ext string

	// Ref specify the reference document.
	Ref string
}

func (coder ErrCode) Code() int { return coder.C }

func (coder ErrCode) HTTPStatus() int {
	if coder.HTTP == 0 {
		return http.StatusInternalServerError
	}
	return coder.HTTP
}

func (coder ErrCode) String() string    { return coder.Ext }
func (coder ErrCode) Reference() string { return coder.Ref }

var allowedHTTPStatus = []int{200, 400, 401, 403, 404, 409, 422, 429, 500}

func register(code int, httpStatus int, message string, refs ...string) {
	found, _ := gubrak.Includes(allowedHTTPStatus, httpStatus)
	if !found {
		panic("http code not in `200, 400, 401, 403, 404, 409, 422, 429, 500`")
	}

	var reference string
	if len(refs) > 0 {
		reference = refs[0]
	}

	errors.MustRegister(ErrCode{
		C:    code,
		HTTP: httpStatus,
		Ext:  message,
		Ref:  reference,
	})
}

func init() {
	register(ErrSuccess, 200, "OK")
	register(ErrUnknown, 500, "Internal server error")
	register(ErrBind, 400, "Error occurred while binding the request body to the struct")
	register(ErrValidation, 422, "Validation failed")
	register(ErrPageNotFound, 404, "Page not found")
	register(ErrTooManyRequests, 429, "Too many requests")

	register(ErrDatabase, 500, "Database error")
	register(ErrResourceNotFound, 404, "The resource which you are trying to access is not found in our system.")
	register(ErrResourceConflict, 409, "Duplicate value")

	register(ErrEncrypt, 500, "Error occurred while encrypting the user password")
	register(ErrSignatureInvalid, 401, "Signature is invalid")
	register(ErrExpired, 401, "Token expired")
	register(ErrInvalidAuthHeader, 401, "Invalid authorization format")
	register(ErrMissingHeader, 401, "Authorization header missing")
	register(ErrPasswordIncorrect, 401, "Invalid email or password")
	register(ErrTokenInvalid, 401, "Invalid or expired token")

	register(ErrUserNotFound, 404, "User not found")
	register(ErrUserAlreadyExist, 409, "User already exist")

	register(ErrProductNotFound, 404, "Product not found")
	register(ErrInvalidInventory, 400, "Inventory quantity must not be negative")
}
