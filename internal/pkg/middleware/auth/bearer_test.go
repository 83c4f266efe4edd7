package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	v1 "github.com/shahid-ra/ecommerce-backend-service/internal/apiserver/model/v1"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/code"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/core"
	"github.com/shahid-ra/ecommerce-backend-service/internal/pkg/resource"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/errors"
	"github.com/shahid-ra/ecommerce-backend-service/pkg/log"
)

type fakeAuthenticator map[string]*v1.User

func (f fakeAuthenticator) Authenticate(_ context.Context, token string) (*v1.User, error) {
	if user, ok := f[token]; ok {
		return user, nil
	}
	return nil, errors.WithCode(code.ErrTokenInvalid, "%s", "Invalid or expired token")
}

func TestBearerStrategy(t *testing.T) {
	gin.SetMode(gin.TestMode)
	user := &v1.User{Base: resource.Base{ID: "665f1c2b9d3e4a0012345678"}, Name: "Jane"}

	r := gin.New()
	r.Use(NewBearerStrategy(fakeAuthenticator{"good": user}).AuthFunc())
	r.GET("/me", func(c *gin.Context) {
		u, ok := CurrentUser(c)
		require.True(t, ok)
		c.JSON(http.StatusOK, gin.H{"id": u.ID, "userID": c.GetString(log.KeyUserID)})
	})

	tests := []struct {
		name       string
		header     string
		wantStatus int
		wantCode   int
		wantMsg    string
	}{
		{name: "missing", wantStatus: 401, wantCode: code.ErrMissingHeader, wantMsg: "Authorization header missing"},
		{name: "wrong scheme", header: "Basic abc", wantStatus: 401, wantCode: code.ErrInvalidAuthHeader, wantMsg: "Invalid authorization format"},
		{name: "no token", header: "Bearer", wantStatus: 401, wantCode: code.ErrInvalidAuthHeader, wantMsg: "Invalid authorization format"},
		{name: "bad token", header: "Bearer bad", wantStatus: 401, wantCode: code.ErrTokenInvalid, wantMsg: "Invalid or expired token"},
		{name: "ok", header: "Bearer good", wantStatus: 200},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := httptest.NewRecorder()
			req := httptest.NewRequest(http.MethodGet, "/me", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			r.ServeHTTP(w, req)

			require.Equal(t, tt.wantStatus, w.Code)
			if tt.wantStatus == http.StatusOK {
				var body map[string]string
				require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
				assert.Equal(t, user.ID, body["id"])
				assert.Equal(t, user.ID, body["userID"])
				return
			}

			var resp core.Response
			require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
			assert.Equal(t, tt.wantCode, resp.Code)
			assert.Equal(t, core.StatusFailed, resp.Status)
			assert.Equal(t, tt.wantMsg, resp.Message)
		})
	}
}
