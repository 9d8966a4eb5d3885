package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"github.com/serenitymassage/clinic-scheduler/internal/config"
	"github.com/serenitymassage/clinic-scheduler/internal/middleware"
	"github.com/serenitymassage/clinic-scheduler/internal/session"
)

const testSecret = "test-secret"

func newAuthMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()

	sqlDB, mock, err := sqlmock.New(sqlmock.QueryMatcherOption(sqlmock.QueryMatcherRegexp))
	require.NoError(t, err)
	t.Cleanup(func() { sqlDB.Close() })

	gdb, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DisableAutomaticPing: true,
	})
	require.NoError(t, err)
	return gdb, mock
}

func newAuthHandler(t *testing.T, gdb *gorm.DB, revoker *session.Revoker) *AuthHandler {
	t.Helper()
	return NewAuthHandler(gdb, &config.Config{JWTSecret: testSecret}, revoker, nil)
}

func TestLoginIssuesTokenWithSessionID(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, mock := newAuthMockDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "password_hash", "role"},
		).AddRow("user-1", "Admin", "admin@example.com", string(hash), "admin"))

	h := newAuthHandler(t, gdb, nil)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "Admin@Example.com", "password": "hunter22"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	var body struct {
		Token string `json:"token"`
		User  struct {
			ID    string `json:"id"`
			Email string `json:"email"`
		} `json:"user"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "user-1", body.User.ID)

	parsed, err := jwt.Parse(body.Token, func(tok *jwt.Token) (any, error) {
		return []byte(testSecret), nil
	})
	require.NoError(t, err)

	claims := parsed.Claims.(jwt.MapClaims)
	assert.Equal(t, "user-1", claims["sub"])
	assert.Equal(t, "admin", claims["role"])
	assert.NotEmpty(t, claims["jti"])

	require.NoError(t, mock.ExpectationsWereMet())
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, mock := newAuthMockDB(t)

	hash, err := bcrypt.GenerateFromPassword([]byte("hunter22"), bcrypt.MinCost)
	require.NoError(t, err)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows(
			[]string{"id", "name", "email", "password_hash", "role"},
		).AddRow("user-1", "Admin", "admin@example.com", string(hash), "admin"))

	h := newAuthHandler(t, gdb, nil)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "admin@example.com", "password": "wrong"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
	assert.Contains(t, w.Body.String(), "invalid_credentials")
}

func TestLoginRejectsUnknownEmail(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, mock := newAuthMockDB(t)

	mock.ExpectQuery(`SELECT \* FROM "users"`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	h := newAuthHandler(t, gdb, nil)

	r := gin.New()
	r.POST("/api/auth/login", h.Login)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/login",
		strings.NewReader(`{"email": "nobody@example.com", "password": "whatever"}`))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestLogoutRevokesPresentedToken(t *testing.T) {
	gin.SetMode(gin.TestMode)
	gdb, _ := newAuthMockDB(t)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	revoker := session.NewRevoker(rdb)
	h := newAuthHandler(t, gdb, revoker)

	r := gin.New()
	r.POST("/api/auth/logout", func(c *gin.Context) {
		c.Set(middleware.ContextUserID, "user-1")
		c.Set(middleware.ContextTokenID, "jti-abc")
		c.Set(middleware.ContextTokenExpiry, time.Now().Add(time.Hour))
		c.Next()
	}, h.Logout)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/auth/logout", nil)
	r.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code)

	assert.True(t, revoker.IsRevoked(req.Context(), "jti-abc"))

	// The denylist entry covers the token's remaining life, no more.
	ttl := mr.TTL("session:revoked:jti-abc")
	assert.Greater(t, ttl, 59*time.Minute)
	assert.LessOrEqual(t, ttl, time.Hour)
}
