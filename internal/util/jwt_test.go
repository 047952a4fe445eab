package util

import (
	"testing"
	"time"

	"learnhub_backend/internal/model"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testUser() *model.User {
	u := &model.User{
		Name:  "Alice",
		Email: "alice@test.com",
		Role:  model.Instructor,
	}
	u.ID = 7
	return u
}

func TestJWTRoundTripCarriesIdentity(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret-key", time.Hour)
	require.NoError(t, err)

	claims, err := ParseJWT(token, "test-secret-key")
	require.NoError(t, err)
	assert.Equal(t, uint(7), claims.UserID)
	assert.Equal(t, model.Instructor, claims.Role)
	assert.Equal(t, "alice@test.com", claims.Email)
	assert.Equal(t, "learnhub", claims.Issuer)
}

func TestParseJWTRejectsWrongSecret(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret-key", time.Hour)
	require.NoError(t, err)

	_, err = ParseJWT(token, "another-secret")
	assert.Error(t, err)
}

func TestParseJWTRejectsForeignIssuer(t *testing.T) {
	// 其他系统签发的token即使密钥相同也不被接受
	foreign := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id": 7,
		"iss":     "other-platform",
		"exp":     time.Now().Add(time.Hour).Unix(),
	})
	signed, err := foreign.SignedString([]byte("test-secret-key"))
	require.NoError(t, err)

	_, err = ParseJWT(signed, "test-secret-key")
	assert.Error(t, err)
}

func TestParseJWTRejectsExpiredToken(t *testing.T) {
	token, err := GenerateJWT(testUser(), "test-secret-key", -time.Minute)
	require.NoError(t, err)

	_, err = ParseJWT(token, "test-secret-key")
	assert.Error(t, err)
}
