package code

// 通用错误：基础错误类型
// 错误码必须以 1xxxxx 开头
const (
	// ErrSuccess - 200: OK.
	ErrSuccess int = iota + 100001

	// ErrUnknown - 500: Internal server error.
	ErrUnknown

	// ErrBind - 400: Error occurred while binding the request body to the struct.
	ErrBind

	// ErrValidation - 422: Validation failed.
	ErrValidation

	// ErrPageNotFound - 404: Page not found.
	ErrPageNotFound

	// ErrTooManyRequests - 429: Too many requests.
	ErrTooManyRequests
)

// 通用错误：数据库类错误
const (
	// ErrDatabase - 500: Database error.
	ErrDatabase int = iota + 100101

	// ErrResourceNotFound - 404: Resource not found.
	ErrResourceNotFound

	// ErrResourceConflict - 409: Duplicate value.
	ErrResourceConflict
)

// 通用错误：认证授权类错误
const (
	// ErrEncrypt - 500: Error occurred while encrypting the user password.
	ErrEncrypt int = iota + 100201

	// ErrSignatureInvalid - 401: Signature is invalid.
	ErrSignatureInvalid

	// ErrExpired - 401: Token expired.
	ErrExpired

	// ErrInvalidAuthHeader - 401: Invalid authorization format.
	ErrInvalidAuthHeader

	// ErrMissingHeader - 401: Authorization header missing.
	ErrMissingHeader

	// ErrPasswordIncorrect - 401: Invalid email or password.
	ErrPasswordIncorrect

	// ErrTokenInvalid - 401: Invalid or expired token.
	ErrTokenInvalid
)
