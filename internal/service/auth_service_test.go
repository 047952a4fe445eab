package service

import (
	"learnhub_backend/internal/config"
	"learnhub_backend/internal/model"
	"learnhub_backend/internal/repository"
	"learnhub_backend/internal/util"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

func newAuthService(db *gorm.DB) *AuthService {
	cfg := &config.Config{}
	cfg.JWT.Secret = "test-secret"
	cfg.JWT.ExpireTime = time.Hour
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegisterHashesPasswordAndDefaultsRole(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "Alice", Email: "alice@test.com", Password: "supersecret", Role: model.Admin}
	require.NoError(t, svc.Register(user))

	// 注册入口不允许直接创建管理员
	assert.Equal(t, model.Student, user.Role)
	assert.NotEqual(t, "supersecret", user.Password)
	assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.Password), []byte("supersecret")))
}

func TestRegisterDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	require.NoError(t, svc.Register(&model.User{Name: "Alice", Email: "alice@test.com", Password: "supersecret"}))
	err := svc.Register(&model.User{Name: "Imposter", Email: "alice@test.com", Password: "whatever1"})
	assert.ErrorIs(t, err, util.ErrEmailRegistered)
}

func TestLoginIssuesParsableToken(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "Bob", Email: "bob@test.com", Password: "supersecret", Role: model.Instructor}
	require.NoError(t, svc.Register(user))

	token, err := svc.Login("bob@test.com", "supersecret")
	require.NoError(t, err)

	claims, err := util.ParseJWT(token, "test-secret")
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)
	assert.Equal(t, model.Instructor, claims.Role)
}

func TestLoginStampsLastLogin(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "Bob", Email: "bob@test.com", Password: "supersecret"}
	require.NoError(t, svc.Register(user))

	before := time.Now().Add(-time.Second)
	_, err := svc.Login("bob@test.com", "supersecret")
	require.NoError(t, err)

	var reloaded model.User
	require.NoError(t, db.First(&reloaded, user.ID).Error)
	assert.True(t, reloaded.LastLogin.After(before))
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)
	require.NoError(t, svc.Register(&model.User{Name: "Bob", Email: "bob@test.com", Password: "supersecret"}))

	_, err := svc.Login("bob@test.com", "wrongpass")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)

	_, err = svc.Login("nobody@test.com", "supersecret")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}

func TestLoginRejectsDisabledAccount(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthService(db)

	user := &model.User{Name: "Bob", Email: "bob@test.com", Password: "supersecret"}
	require.NoError(t, svc.Register(user))
	require.NoError(t, db.Model(&model.User{}).Where("id = ?", user.ID).Update("disabled", true).Error)

	_, err := svc.Login("bob@test.com", "supersecret")
	assert.ErrorIs(t, err, util.ErrInvalidCredentials)
}
