/*
Package core 统一 HTTP 响应格式。

成功：{"code":0,"status":"success","message":"OK","data":...}
失败：{"code":业务码,"status":"failed","message":...,"fieldErrors":[...]}

失败时 HTTP 状态码取自业务码注册的状态；无业务码的错误按 500 处理，
消息中附带请求 ID，便于用户反馈时定位日志。
*/
package core

import (
	stderrors "errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

const (
	StatusSuccess = "success"
	StatusFailed  = "failed"

	// DefaultErrorMessage 中的 @{{uuid}} 会被替换为请求 ID。
	DefaultErrorMessage = "Something went wrong, please contact support with UUID: @{{uuid}}"

	requestIDHeader = "X-Request-ID"
)

// Response 为所有接口的响应体。
type Response struct {
	Code        int         `json:"code"`
	Status      string      `json:"status"`
	Message     string      `json:"message"`
	Reference   string      `json:"reference,omitempty"`
	FieldErrors interface{} `json:"fieldErrors,omitempty"`
	Data        interface{} `json:"data,omitempty"`
}

// Detailer 由携带字段级错误详情的错误实现。
type Detailer interface {
	Details() interface{}
}

// WriteResponse write an error or the response data into http response body.
func WriteResponse(c *gin.Context, err error, data interface{}) {
	if err != nil {
		status, body := ErrorResponse(c, err)
		c.JSON(status, body)
		return
	}

	c.JSON(http.StatusOK, Response{
		Code:    0,
		Status:  StatusSuccess,
		Message: "OK",
		Data:    data,
	})
}

// WriteCreated 返回 201 和新建的资源。
func WriteCreated(c *gin.Context, data interface{}) {
	c.JSON(http.StatusCreated, Response{
		Code:    0,
		Status:  StatusSuccess,
		Message: "Created",
		Data:    data,
	})
}

// AbortWithError 写入错误响应并终止后续处理器。
func AbortWithError(c *gin.Context, err error) {
	status, body := ErrorResponse(c, err)
	c.AbortWithStatusJSON(status, body)
}

// ErrorResponse 将错误转换为 HTTP 状态码和响应体。
func ErrorResponse(c *gin.Context, err error) (int, Response) {
	if !errors.IsWithCode(err) {
		log.L(c).Errorf("unhandled error: %+v", err)
		return http.StatusInternalServerError, Response{
			Code:    errors.ParseCoder(err).Code(),
			Status:  StatusFailed,
			Message: DefaultMessage(requestID(c)),
		}
	}

	coder := errors.ParseCoder(err)
	if coder.HTTPStatus() >= http.StatusInternalServerError {
		log.L(c).Errorf("%+v", err)
	}

	message := errors.GetMessage(err)
	if message == "" {
		message = coder.String()
	}

	body := Response{
		Code:      coder.Code(),
		Status:    StatusFailed,
		Message:   message,
		Reference: coder.Reference(),
	}
	var d Detailer
	if stderrors.As(err, &d) {
		body.FieldErrors = d.Details()
	}

	return coder.HTTPStatus(), body
}

// DefaultMessage 返回带请求 ID 的默认错误消息。
func DefaultMessage(requestID string) string {
	return strings.Replace(DefaultErrorMessage, "@{{uuid}}", requestID, 1)
}

func requestID(c *gin.Context) string {
	if rid := c.Writer.Header().Get(requestIDHeader); rid != "" {
		return rid
	}
	return c.GetHeader(requestIDHeader)
}
