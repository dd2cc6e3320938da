package services

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/yukikurage/todo-api/internal/database"
	"github.com/yukikurage/todo-api/internal/models"
	"github.com/yukikurage/todo-api/internal/repository"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func setupTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), database.NewGormConfig("silent"))
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)
	t.Cleanup(func() {
		sqlDB.Close()
	})

	require.NoError(t, database.Migrate(db))
	return db
}

func newTestAuthService(t *testing.T) (*AuthService, *TokenService, *gorm.DB) {
	t.Helper()

	db := setupTestDB(t)
	tokens := NewTokenService("test-secret", 0)
	svc := NewAuthService(repository.NewUserRepository(db), tokens, bcrypt.MinCost, 20*time.Minute)
	return svc, tokens, db
}

func TestAuthService_RegisterThenLogin(t *testing.T) {
	svc, tokens, _ := newTestAuthService(t)
	ctx := context.Background()

	email := "alice@example.com"
	user, err := svc.Register(ctx, RegisterInput{
		Username:  "alice",
		Email:     &email,
		FirstName: "Alice",
		LastName:  "Liddell",
		Password:  "pw1",
	})
	require.NoError(t, err)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "pw1", user.HashedPassword)

	token, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	identity, err := tokens.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, "alice", identity.Username)
	assert.Equal(t, user.ID, identity.UserID)
}

func TestAuthService_LoginTokenLastsTwentyMinutes(t *testing.T) {
	svc, tokens, _ := newTestAuthService(t)
	ctx := context.Background()

	now := time.Now()
	tokens.now = func() time.Time { return now }

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	token, err := svc.Login(ctx, LoginInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	tokens.now = func() time.Time { return now.Add(19 * time.Minute) }
	_, err = tokens.Verify(token)
	require.NoError(t, err)

	tokens.now = func() time.Time { return now.Add(20*time.Minute + time.Second) }
	_, err = tokens.Verify(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestAuthService_LoginFailuresAreIndistinguishable(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, wrongPassword := svc.Login(ctx, LoginInput{Username: "alice", Password: "nope"})
	_, unknownUser := svc.Login(ctx, LoginInput{Username: "bob", Password: "pw1"})

	assert.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	assert.ErrorIs(t, unknownUser, ErrInvalidCredentials)
	assert.Equal(t, wrongPassword.Error(), unknownUser.Error())
}

func TestAuthService_InactiveUserCannotLogin(t *testing.T) {
	svc, _, db := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)
	require.NoError(t, db.Model(&models.User{}).Where("id = ?", user.ID).Update("is_active", false).Error)

	_, err = svc.Login(ctx, LoginInput{Username: "alice", Password: "pw1"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthService_DuplicateUsername(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	_, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	_, err = svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw2"})
	assert.ErrorIs(t, err, ErrUsernameTaken)
}

func TestAuthService_GetUser(t *testing.T) {
	svc, _, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: "alice", Password: "pw1"})
	require.NoError(t, err)

	found, err := svc.GetUser(ctx, user.ID)
	require.NoError(t, err)
	assert.Equal(t, "alice", found.Username)

	_, err = svc.GetUser(ctx, 9999)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestAuthService_UsernameTrimmedOnRegisterAndLogin(t *testing.T) {
	svc, tokens, _ := newTestAuthService(t)
	ctx := context.Background()

	user, err := svc.Register(ctx, RegisterInput{Username: " alice ", Password: "pw1"})
	require.NoError(t, err)
	assert.Equal(t, "alice", user.Username)

	for _, username := range []string{" alice ", "alice", "alice\t"} {
		token, err := svc.Login(ctx, LoginInput{Username: username, Password: "pw1"})
		require.NoError(t, err, "username %q", username)

		identity, err := tokens.Verify(token)
		require.NoError(t, err)
		assert.Equal(t, "alice", identity.Username)
	}
}
