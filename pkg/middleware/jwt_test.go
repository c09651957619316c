package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"sharepile/file-api/internal/model"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

const testSecret = "test-jwt-secret-for-middleware-tests"

func init() {
	gin.SetMode(gin.TestMode)
	viper.Set("jwt.secret", testSecret)
}

func setupTestRouter(t *testing.T) (*gin.Engine, *gorm.DB) {
	t.Helper()

	db, err := gorm.Open(sqlite.Open("file::memory:?cache=shared"))
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(model.User{}))

	router := gin.New()
	router.Use(NewRequestIDMiddleware())
	router.GET("/protected", NewJWTMiddleware(db), func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"userID": c.GetString("userID")})
	})

	return router, db
}

func signToken(t *testing.T, userID string, exp time.Time) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": userID,
		"iat":     time.Now().Unix(),
		"exp":     exp.Unix(),
	})

	s, err := tok.SignedString([]byte(testSecret))
	require.NoError(t, err)
	return s
}

func TestJWT_NoCredentials(t *testing.T) {
	router, _ := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/protected", nil)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
	assert.Contains(t, resp.Body.String(), "No credentials provided")
}

func TestJWT_GarbageToken(t *testing.T) {
	router, _ := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer not-a-jwt")
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWT_ExpiredToken(t *testing.T) {
	router, db := setupTestRouter(t)

	require.NoError(t, db.Create(&model.User{ID: "u1", Email: "a@x.com", PasswordHash: "h"}).Error)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u1", time.Now().Add(-time.Minute)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWT_UnknownUser(t *testing.T) {
	router, _ := setupTestRouter(t)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "ghost", time.Now().Add(time.Hour)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}

func TestJWT_ValidBearer(t *testing.T) {
	router, db := setupTestRouter(t)

	require.NoError(t, db.Create(&model.User{ID: "u2", Email: "b@x.com", PasswordHash: "h"}).Error)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+signToken(t, "u2", time.Now().Add(time.Hour)))
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "u2")
}

func TestJWT_ValidCookie(t *testing.T) {
	router, db := setupTestRouter(t)

	require.NoError(t, db.Create(&model.User{ID: "u3", Email: "c@x.com", PasswordHash: "h"}).Error)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.AddCookie(&http.Cookie{Name: "auth_token", Value: signToken(t, "u3", time.Now().Add(time.Hour))})
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusOK, resp.Code)
	assert.Contains(t, resp.Body.String(), "u3")
}

func TestJWT_WrongSigningKey(t *testing.T) {
	router, db := setupTestRouter(t)

	require.NoError(t, db.Create(&model.User{ID: "u4", Email: "d@x.com", PasswordHash: "h"}).Error)

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": "u4",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	s, err := tok.SignedString([]byte("some-other-secret"))
	require.NoError(t, err)

	req, _ := http.NewRequest("GET", "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+s)
	resp := httptest.NewRecorder()
	router.ServeHTTP(resp, req)

	assert.Equal(t, http.StatusUnauthorized, resp.Code)
}
