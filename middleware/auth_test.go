package middleware_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campus-canteen-api/config"
	"campus-canteen-api/middleware"
	"campus-canteen-api/models"
)

func testUser() *models.User {
	u := &models.User{Name: "Test Student", Email: "u@campus.edu", Role: models.RoleStudent}
	u.ID = 7
	return u
}

func TestTokenRoundTrip(t *testing.T) {
	tok, err := middleware.GenerateToken(testUser())
	require.NoError(t, err)

	claims, err := middleware.ParseToken(tok)
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, "u@campus.edu", claims.Email)
	assert.Equal(t, models.RoleStudent, claims.Role)

	ttl := time.Until(claims.ExpiresAt.Time)
	assert.InDelta(t, config.TokenTTL.Seconds(), ttl.Seconds(), 5)
}

func TestParseTokenRejectsGarbage(t *testing.T) {
	_, err := middleware.ParseToken("not-a-token")
	assert.Error(t, err)
}

func newAuthRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/admin-only",
		middleware.AuthRequired(),
		middleware.RoleRequired(models.RoleAdmin),
		func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"user_id": middleware.GetUserID(c)})
		})
	return r
}

func TestAuthRequired(t *testing.T) {
	r := newAuthRouter()

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"missing header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer nope", http.StatusUnauthorized},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			w := httptest.NewRecorder()
			r.ServeHTTP(w, req)
			assert.Equal(t, tt.want, w.Code)
		})
	}
}

func TestRoleRequired(t *testing.T) {
	r := newAuthRouter()

	student, err := middleware.GenerateToken(testUser())
	require.NoError(t, err)

	admin := testUser()
	admin.Role = models.RoleAdmin
	adminTok, err := middleware.GenerateToken(admin)
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+student)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusForbidden, w.Code)
	assert.Contains(t, w.Body.String(), "admin")

	req = httptest.NewRequest(http.MethodGet, "/admin-only", nil)
	req.Header.Set("Authorization", "Bearer "+adminTok)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusOK, w.Code)
}
