/*
Package errors 提供带堆栈和业务码的错误类型。

在标准库 error 的基础上扩展：
1. New/Errorf 创建基础错误，并记录调用堆栈；
2. Wrap/WithStack/WithMessage 为已有错误附加上下文；
3. WithCode/WrapC 为错误关联业务码，业务码需提前通过 Register 注册；
4. %+v 输出完整堆栈，%#v 输出 JSON 结构，便于排查。

所有包装类型都实现 Unwrap，可以与标准库 errors.Is/errors.As 配合使用。
*/
package errors

import (
	"encoding/json"
	stderrors "errors"
	"fmt"
)

type fundamental struct {
	msg string
	*stack
}

// New returns an error with the supplied message and the current stack.
func New(message string) error {
	return &fundamental{
		msg:   message,
		stack: callers(),
	}
}

// Errorf formats according to a format specifier and records the stack.
func Errorf(format string, args ...interface{}) error {
	return &fundamental{
		msg:   fmt.Sprintf(format, args...),
		stack: callers(),
	}
}

func (f *fundamental) Error() string { return f.msg }

func (f *fundamental) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			writeString(st, f.msg)
			f.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		writeString(st, f.msg)
	case 'q':
		fmt.Fprintf(st, "%q", f.msg)
	}
}

type withStack struct {
	error
	*stack
}

// WithStack annotates err with a stack trace. 带码错误保持业务码不变。
func WithStack(err error) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{
			err:   e.err,
			code:  e.code,
			cause: err,
			stack: callers(),
		}
	}
	return &withStack{err, callers()}
}

func (w *withStack) Cause() error  { return w.error }
func (w *withStack) Unwrap() error { return w.error }

func (w *withStack) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v", w.Cause())
			w.stack.Format(st, verb)
			return
		}
		fallthrough
	case 's':
		writeString(st, w.Error())
	case 'q':
		fmt.Fprintf(st, "%q", w.Error())
	}
}

// Wrap returns an error annotating err with message and a stack trace.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{
			err:   stderrors.New(message),
			code:  e.code,
			cause: err,
			stack: callers(),
		}
	}
	return &withStack{
		&withMessage{cause: err, msg: message},
		callers(),
	}
}

// Wrapf is Wrap with a format specifier.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	if e, ok := err.(*withCode); ok {
		return &withCode{
			err:   fmt.Errorf(format, args...),
			code:  e.code,
			cause: err,
			stack: callers(),
		}
	}
	return &withStack{
		&withMessage{cause: err, msg: fmt.Sprintf(format, args...)},
		callers(),
	}
}

type withMessage struct {
	cause error
	msg   string
}

// WithMessage annotates err with a new message, without a stack.
func WithMessage(err error, message string) error {
	if err == nil {
		return nil
	}
	return &withMessage{cause: err, msg: message}
}

func (w *withMessage) Error() string { return w.msg }
func (w *withMessage) Cause() error  { return w.cause }
func (w *withMessage) Unwrap() error { return w.cause }

func (w *withMessage) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('+') {
			fmt.Fprintf(st, "%+v\n", w.Cause())
			writeString(st, w.msg)
			return
		}
		fallthrough
	case 's', 'q':
		writeString(st, w.Error())
	}
}

type withCode struct {
	err   error // 本层错误信息
	code  int   // 业务码
	cause error // 上一级错误
	*stack
}

// WithCode 创建一个关联业务码的新错误。
func WithCode(code int, format string, args ...interface{}) error {
	return &withCode{
		err:   fmt.Errorf(format, args...),
		code:  code,
		stack: callers(),
	}
}

// WrapC 用业务码包装已有错误，err 为 nil 时返回 nil。
func WrapC(err error, code int, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return &withCode{
		err:   fmt.Errorf(format, args...),
		code:  code,
		cause: err,
		stack: callers(),
	}
}

func (w *withCode) Error() string { return fmt.Sprintf("%v", w) }
func (w *withCode) Cause() error  { return w.cause }
func (w *withCode) Unwrap() error { return w.cause }

func (w *withCode) Format(st fmt.State, verb rune) {
	switch verb {
	case 'v':
		if st.Flag('#') {
			b, err := json.MarshalIndent(w.toJSON(), "", "    ")
			if err != nil {
				fmt.Fprintf(st, "格式化错误: %v", err)
				return
			}
			st.Write(b)
			return
		}
		if st.Flag('+') {
			if w.cause != nil {
				fmt.Fprintf(st, "  ↳ %+v\n", w.cause)
			}
			fmt.Fprintf(st, "[code: %d][http:%d] %s", w.code, ParseCoderByCode(w.code).HTTPStatus(), w.err.Error())
			w.stack.Format(st, verb)
			return
		}
		fmt.Fprintf(st, "[code: %d] %s", w.code, w.err.Error())
	case 's', 'q':
		writeString(st, w.Error())
	}
}

type withCodeJSON struct {
	Code    int         `json:"code"`
	Message string      `json:"message"`
	Cause   interface{} `json:"cause,omitempty"`
	Stack   []string    `json:"stack,omitempty"`
	HTTP    int         `json:"httpStatus"`
	Ref     string      `json:"reference,omitempty"`
}

func (w *withCode) toJSON() withCodeJSON {
	var cause interface{}
	if w.cause != nil {
		if c, ok := w.cause.(*withCode); ok {
			cause = c.toJSON()
		} else {
			cause = map[string]string{"message": w.cause.Error()}
		}
	}
	coder := ParseCoderByCode(w.code)
	return withCodeJSON{
		Code:    w.code,
		Message: w.err.Error(),
		HTTP:    coder.HTTPStatus(),
		Ref:     coder.Reference(),
		Cause:   cause,
		Stack:   w.stack.lines(),
	}
}

// Cause returns the underlying cause of the error, if possible.
func Cause(err error) error {
	type causer interface {
		Cause() error
	}
	for err != nil {
		c, ok := err.(causer)
		if !ok || c.Cause() == nil {
			break
		}
		err = c.Cause()
	}
	return err
}

// Is, As and Unwrap 直接复用标准库实现。
func Is(err, target error) bool     { return stderrors.Is(err, target) }
func As(err error, target any) bool { return stderrors.As(err, target) }
func Unwrap(err error) error        { return stderrors.Unwrap(err) }

// Join 合并多个错误，nil 会被忽略，全部为 nil 时返回 nil。
func Join(errs ...error) error { return stderrors.Join(errs...) }

// IsWithCode 判断错误链上是否存在带码错误。
func IsWithCode(err error) bool {
	var w *withCode
	return stderrors.As(err, &w)
}

// GetCode 返回错误链上最外层的业务码，不存在时返回未知错误码。
func GetCode(err error) int {
	var w *withCode
	if stderrors.As(err, &w) {
		return w.code
	}
	return unknownCode.Code()
}

// GetMessage 返回最外层带码错误的消息（不含业务码前缀）。
func GetMessage(err error) string {
	if err == nil {
		return ""
	}
	var w *withCode
	if stderrors.As(err, &w) {
		return w.err.Error()
	}
	return err.Error()
}

// GetHTTPStatus 返回错误对应的 HTTP 状态码。
func GetHTTPStatus(err error) int {
	return ParseCoder(err).HTTPStatus()
}
