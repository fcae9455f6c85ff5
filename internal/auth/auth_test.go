package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Keoroanthony/go-crm/internal/db/dbtest"
	"github.com/Keoroanthony/go-crm/internal/models"
)

const testSecret = "test-secret-key"

func setupAuthTestRouter(t *testing.T) (*gin.Engine, *Authenticator) {
	gin.SetMode(gin.TestMode)

	a := &Authenticator{db: dbtest.New(t), apiKey: "job-key"}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(sessions.Sessions("gosess", cookie.NewStore([]byte(testSecret))))
	r.GET("/protected", a.RequireAuth(), func(c *gin.Context) {
		name := ""
		if u, ok := c.Get("user"); ok {
			name = u.(*models.User).Name
		}
		c.JSON(http.StatusOK, gin.H{"user": name})
	})
	return r, a
}

// sessionCookie builds a cookie carrying userID the same way the session
// middleware would.
func sessionCookie(userID *uint) string {
	tempW := httptest.NewRecorder()
	tempC, _ := gin.CreateTestContext(tempW)
	tempC.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	sessions.Sessions("gosess", cookie.NewStore([]byte(testSecret)))(tempC)

	session := sessions.Default(tempC)
	if userID != nil {
		session.Set(sessionUserKey, *userID)
	}
	session.Save()
	return tempW.Header().Get("Set-Cookie")
}

func TestRequireAuth(t *testing.T) {
	router, a := setupAuthTestRouter(t)

	staff, err := a.upsertUser(context.Background(), "sub-123", "Staff Member", "staff@example.com")
	require.NoError(t, err)

	t.Run("Accepts the configured API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(APIKeyHeader, "job-key")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("Rejects a wrong API key", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set(APIKeyHeader, "guess")
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error":"invalid api key"}`, recorder.Body.String())
	})

	t.Run("Rejects a request without credentials", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Cookie", sessionCookie(nil))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error":"unauthorized"}`, recorder.Body.String())
	})

	t.Run("Accepts a staff session and injects the user", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Cookie", sessionCookie(&staff.ID))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.JSONEq(t, `{"user":"Staff Member"}`, recorder.Body.String())
	})

	t.Run("Rejects a session for an unknown user", func(t *testing.T) {
		ghost := uint(9999)
		req := httptest.NewRequest(http.MethodGet, "/protected", nil)
		req.Header.Set("Cookie", sessionCookie(&ghost))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusUnauthorized, recorder.Code)
		assert.JSONEq(t, `{"error":"user not found"}`, recorder.Body.String())
	})
}

func TestUpsertUser(t *testing.T) {
	_, a := setupAuthTestRouter(t)

	first, err := a.upsertUser(context.Background(), "sub-1", "Old Name", "old@example.com")
	require.NoError(t, err)

	second, err := a.upsertUser(context.Background(), "sub-1", "New Name", "new@example.com")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	var count int64
	a.db.Model(&models.User{}).Count(&count)
	assert.Equal(t, int64(1), count)
	assert.Equal(t, "New Name", second.Name)
}
