package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	testCodeNotFound = 990404
	testCodeConflict = 990409
)

func init() {
	Register(defaultCoder{C: testCodeNotFound, HTTP: http.StatusNotFound, Ext: "not found"})
	Register(defaultCoder{C: testCodeConflict, HTTP: http.StatusConflict, Ext: "conflict"})
}

func TestNew(t *testing.T) {
	err := New("boom")
	assert.Equal(t, "boom", err.Error())
	assert.Contains(t, fmt.Sprintf("%+v", err), "errors_test.go")
}

func TestWrap(t *testing.T) {
	assert.Nil(t, Wrap(nil, "ignored"))

	base := stderrors.New("io failure")
	err := Wrap(base, "read config")
	assert.Equal(t, "read config", err.Error())
	assert.Equal(t, base, Cause(err))
	assert.True(t, stderrors.Is(err, base))
}

func TestWithCode(t *testing.T) {
	err := WithCode(testCodeNotFound, "product %s not found", "42")

	assert.True(t, IsWithCode(err))
	assert.Equal(t, testCodeNotFound, GetCode(err))
	assert.Equal(t, "product 42 not found", GetMessage(err))
	assert.Equal(t, http.StatusNotFound, GetHTTPStatus(err))
	assert.Equal(t, "[code: 990404] product 42 not found", err.Error())
}

func TestWrapC(t *testing.T) {
	assert.Nil(t, WrapC(nil, testCodeConflict, "ignored"))

	base := stderrors.New("E11000 duplicate key")
	err := WrapC(base, testCodeConflict, "duplicate value")

	assert.True(t, IsCode(err, testCodeConflict))
	assert.False(t, IsCode(err, testCodeNotFound))
	assert.True(t, stderrors.Is(err, base))
	assert.Equal(t, http.StatusConflict, ParseCoder(err).HTTPStatus())
}

func TestWrapKeepsCode(t *testing.T) {
	err := Wrap(WithCode(testCodeNotFound, "missing"), "lookup failed")

	assert.Equal(t, testCodeNotFound, GetCode(err))
	assert.Equal(t, "lookup failed", GetMessage(err))
	assert.True(t, IsCode(err, testCodeNotFound))
}

func TestParseCoder(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantHTTP int
	}{
		{name: "registered code", err: WithCode(testCodeConflict, "x"), wantCode: testCodeConflict, wantHTTP: http.StatusConflict},
		{name: "unregistered code", err: WithCode(123456, "x"), wantCode: 1, wantHTTP: http.StatusInternalServerError},
		{name: "plain error", err: stderrors.New("x"), wantCode: 1, wantHTTP: http.StatusInternalServerError},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			coder := ParseCoder(tt.err)
			require.NotNil(t, coder)
			assert.Equal(t, tt.wantCode, coder.Code())
			assert.Equal(t, tt.wantHTTP, coder.HTTPStatus())
		})
	}

	assert.Nil(t, ParseCoder(nil))
}

func TestMustRegisterDuplicate(t *testing.T) {
	coder := defaultCoder{C: 990999, HTTP: http.StatusBadRequest, Ext: "dup"}
	assert.NotPanics(t, func() { MustRegister(coder) })
	assert.PanicsWithValue(t, "990999编码已经存在,不允许重复录入", func() { MustRegister(coder) })
}

func TestFormatJSON(t *testing.T) {
	err := WrapC(stderrors.New("root"), testCodeNotFound, "outer")
	out := fmt.Sprintf("%#v", err)

	assert.True(t, strings.HasPrefix(out, "{"))
	assert.Contains(t, out, `"code": 990404`)
	assert.Contains(t, out, `"httpStatus": 404`)
	assert.Contains(t, out, `"message": "root"`)
}

func TestJoin(t *testing.T) {
	assert.Nil(t, Join())
	assert.Nil(t, Join(nil, nil))

	a := New("mongo.uri is required")
	b := stderrors.New("jwt.key is too short")
	err := Join(a, nil, b)

	require.Error(t, err)
	assert.Equal(t, "mongo.uri is required\njwt.key is too short", err.Error())
	assert.True(t, Is(err, a))
	assert.True(t, Is(err, b))
}

func TestStackFormat(t *testing.T) {
	err := New("boom")

	verbose := fmt.Sprintf("%+v", err)
	assert.True(t, strings.HasPrefix(verbose, "boom"))
	assert.Contains(t, verbose, "errors.TestStackFormat")
	assert.Contains(t, verbose, "errors_test.go:")
	assert.Equal(t, "boom", fmt.Sprintf("%v", err))
}
