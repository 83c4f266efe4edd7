package core

import (
	"encoding/json"
	stderrors "errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
)

type fieldErr struct {
	fields []string
}

func (e *fieldErr) Error() string        { return "validation" }
func (e *fieldErr) Details() interface{} { return e.fields }

func init() {
	gin.SetMode(gin.TestMode)
}

func perform(t *testing.T, handler gin.HandlerFunc) (*httptest.ResponseRecorder, map[string]interface{}) {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	c.Request.Header.Set(requestIDHeader, "01HZYREQ")
	handler(c)

	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return w, body
}

func TestWriteResponse_Success(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		WriteResponse(c, nil, gin.H{"name": "Keyboard"})
	})

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, StatusSuccess, body["status"])
	assert.Equal(t, float64(0), body["code"])
	assert.Equal(t, "Keyboard", body["data"].(map[string]interface{})["name"])
}

func TestWriteCreated(t *testing.T) {
	w, body := perform(t, func(c *gin.Context) {
		WriteCreated(c, gin.H{"id": "1"})
	})

	assert.Equal(t, http.StatusCreated, w.Code)
	assert.Equal(t, StatusSuccess, body["status"])
}

func TestWriteResponse_Errors(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantStatus  int
		wantCode    float64
		wantMessage string
	}{
		{
			name:        "coded error keeps its message",
			err:         errors.WithCode(code.ErrResourceNotFound, "Resource not found for resourceId: 42 and resource: Product"),
			wantStatus:  http.StatusNotFound,
			wantCode:    float64(code.ErrResourceNotFound),
			wantMessage: "Resource not found for resourceId: 42 and resource: Product",
		},
		{
			name:        "empty message falls back to coder text",
			err:         errors.WithCode(code.ErrMissingHeader, ""),
			wantStatus:  http.StatusUnauthorized,
			wantCode:    float64(code.ErrMissingHeader),
			wantMessage: "Authorization header missing",
		},
		{
			name:        "plain error hides details",
			err:         stderrors.New("nil pointer"),
			wantStatus:  http.StatusInternalServerError,
			wantCode:    1,
			wantMessage: "Something went wrong, please contact support with UUID: 01HZYREQ",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w, body := perform(t, func(c *gin.Context) {
				WriteResponse(c, tt.err, nil)
			})

			assert.Equal(t, tt.wantStatus, w.Code)
			assert.Equal(t, StatusFailed, body["status"])
			assert.Equal(t, tt.wantCode, body["code"])
			assert.Equal(t, tt.wantMessage, body["message"])
			assert.NotContains(t, body, "data")
		})
	}
}

func TestWriteResponse_FieldErrors(t *testing.T) {
	err := errors.WrapC(&fieldErr{fields: []string{"price"}}, code.ErrValidation, "")
	w, body := perform(t, func(c *gin.Context) {
		WriteResponse(c, err, nil)
	})

	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, "Validation failed", body["message"])
	assert.Equal(t, []interface{}{"price"}, body["fieldErrors"])
}

func TestDefaultMessage(t *testing.T) {
	assert.Equal(t, "Something went wrong, please contact support with UUID: abc", DefaultMessage("abc"))
}
