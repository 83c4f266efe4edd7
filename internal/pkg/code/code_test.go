package code

import (
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

func TestErrCode_Methods(t *testing.T) {
	tests := []struct {
		name     string
		errCode  ErrCode
		wantHTTP int
	}{
		{name: "explicit status", errCode: ErrCode{C: 10001, HTTP: 409, Ext: "conflict", Ref: "doc#conflict"}, wantHTTP: 409},
		{name: "default status", errCode: ErrCode{C: 50001, Ext: "db"}, wantHTTP: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.errCode.C, tt.errCode.Code())
			assert.Equal(t, tt.wantHTTP, tt.errCode.HTTPStatus())
			assert.Equal(t, tt.errCode.Ext, tt.errCode.String())
			assert.Equal(t, tt.errCode.Ref, tt.errCode.Reference())
		})
	}
}

func TestRegisteredCodes(t *testing.T) {
	tests := []struct {
		code     int
		wantHTTP int
	}{
		{ErrSuccess, http.StatusOK},
		{ErrBind, http.StatusBadRequest},
		{ErrValidation, http.StatusUnprocessableEntity},
		{ErrResourceNotFound, http.StatusNotFound},
		{ErrResourceConflict, http.StatusConflict},
		{ErrMissingHeader, http.StatusUnauthorized},
		{ErrTooManyRequests, http.StatusTooManyRequests},
		{ErrUserAlreadyExist, http.StatusConflict},
	}

	for _, tt := range tests {
		coder := errors.ParseCoderByCode(tt.code)
		assert.Equal(t, tt.code, coder.Code())
		assert.Equal(t, tt.wantHTTP, coder.HTTPStatus())
	}

	assert.Equal(t, "Authorization header missing", errors.ParseCoderByCode(ErrMissingHeader).String())
	assert.Equal(t, "Invalid authorization format", errors.ParseCoderByCode(ErrInvalidAuthHeader).String())
	assert.Equal(t, "Invalid or expired token", errors.ParseCoderByCode(ErrTokenInvalid).String())
}

func TestRegister_ParamValidation(t *testing.T) {
	assert.PanicsWithValue(t, "http code not in `200, 400, 401, 403, 404, 409, 422, 429, 500`", func() {
		register(999001, http.StatusMethodNotAllowed, "method not allowed")
	})
	assert.NotPanics(t, func() {
		register(999002, http.StatusForbidden, "forbidden")
	})
}

func TestRegister_DuplicateCode(t *testing.T) {
	assert.NotPanics(t, func() { register(777777, 404, "duplicate") })
	assert.PanicsWithValue(t, "777777编码已经存在,不允许重复录入", func() {
		register(777777, 404, "duplicate")
	})
}
