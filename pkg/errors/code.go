package errors

import (
	stderrors "errors"
	"fmt"
	"net/http"
	"sync"
)

// Coder 定义错误码的描述信息。
type Coder interface {
	// HTTP status that should be used for the associated error code.
	HTTPStatus() int
	// External (user) facing error text.
	String() string
	// Reference returns the detail documents for user.
	Reference() string
	// Code returns the code of the coder.
	Code() int
}

type defaultCoder struct {
	C    int
	HTTP int
	Ext  string
	Ref  string
}

func (d defaultCoder) Code() int { return d.C }

func (d defaultCoder) HTTPStatus() int {
	if d.HTTP == 0 {
		return http.StatusInternalServerError
	}
	return d.HTTP
}

func (d defaultCoder) String() string    { return d.Ext }
func (d defaultCoder) Reference() string { return d.Ref }

var (
	codes   = map[int]Coder{}
	codeMux = &sync.RWMutex{}

	unknownCode = defaultCoder{
		C:    1,
		HTTP: http.StatusInternalServerError,
		Ext:  "An internal server error occurred",
	}
)

func init() {
	Register(unknownCode)
}

// Register 注册错误码，已存在的会被覆盖。code 为 0 时 panic。
func Register(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved as unknownCode error code")
	}
	codeMux.Lock()
	defer codeMux.Unlock()
	codes[coder.Code()] = coder
}

// MustRegister 注册错误码，重复注册时 panic。
func MustRegister(coder Coder) {
	if coder.Code() == 0 {
		panic("code `0` is reserved as unknownCode error code")
	}
	codeMux.Lock()
	defer codeMux.Unlock()
	if _, ok := codes[coder.Code()]; ok {
		panic(fmt.Sprintf("%d编码已经存在,不允许重复录入", coder.Code()))
	}
	codes[coder.Code()] = coder
}

// ParseCoder 解析错误链上最外层带码错误对应的 Coder。
// err 为 nil 时返回 nil；无业务码或未注册时返回未知错误码。
func ParseCoder(err error) Coder {
	if err == nil {
		return nil
	}
	var w *withCode
	if stderrors.As(err, &w) {
		return ParseCoderByCode(w.code)
	}
	return unknownCode
}

// ParseCoderByCode 按业务码查找 Coder。
func ParseCoderByCode(code int) Coder {
	codeMux.RLock()
	defer codeMux.RUnlock()
	if coder, ok := codes[code]; ok {
		return coder
	}
	return unknownCode
}

// IsCode 判断错误链上是否包含指定业务码。
func IsCode(err error, code int) bool {
	for err != nil {
		if w, ok := err.(*withCode); ok && w.code == code {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}
