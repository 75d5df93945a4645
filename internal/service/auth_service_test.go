package service

import (
	"testing"

	"github.com/edutrack/backend/config"
	"github.com/edutrack/backend/internal/dto"
	"github.com/edutrack/backend/internal/model"
	"github.com/edutrack/backend/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func newAuthServiceForTest(db *gorm.DB) AuthService {
	cfg := &config.Config{JWTSecret: "test-secret", TokenTTL: 1}
	return NewAuthService(repository.NewUserRepository(db), cfg)
}

func TestRegister_DefaultsToStudent(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	user, err := svc.Register(dto.RegisterRequest{
		Username:  "alice",
		Email:     "alice@example.com",
		FirstName: "Alice",
		LastName:  "Nguyen",
		Password:  "secret123",
	})
	require.NoError(t, err)
	assert.Equal(t, model.RoleStudent, user.Role)

	var stored model.User
	require.NoError(t, db.Where("username = ?", "alice").First(&stored).Error)
	assert.NotEqual(t, "secret123", stored.PasswordHash, "password must be stored hashed")
}

func TestRegister_RejectsDuplicates(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	req := dto.RegisterRequest{
		Username: "alice", Email: "alice@example.com",
		FirstName: "Alice", LastName: "Nguyen", Password: "secret123",
	}
	_, err := svc.Register(req)
	require.NoError(t, err)

	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrUsernameTaken)

	req.Username = "alice2"
	_, err = svc.Register(req)
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestLogin_TokenRoundTrip(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	_, err := svc.Register(dto.RegisterRequest{
		Username: "bob", Email: "bob@example.com",
		FirstName: "Bob", LastName: "Tran", Password: "secret123",
		Role: model.RoleTeacher,
	})
	require.NoError(t, err)

	resp, err := svc.Login(dto.LoginRequest{Username: "bob", Password: "secret123"})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)
	assert.Equal(t, model.RoleTeacher, resp.User.Role)

	identity, err := svc.ParseToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, identity.UserID)
	assert.Equal(t, model.RoleTeacher, identity.Role)
	assert.True(t, identity.IsTeacher())
}

func TestLogin_BadCredentials(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	_, err := svc.Register(dto.RegisterRequest{
		Username: "carol", Email: "carol@example.com",
		FirstName: "Carol", LastName: "Le", Password: "secret123",
	})
	require.NoError(t, err)

	_, err = svc.Login(dto.LoginRequest{Username: "carol", Password: "wrong"})
	assert.ErrorIs(t, err, ErrBadCredentials)

	_, err = svc.Login(dto.LoginRequest{Username: "nobody", Password: "secret123"})
	assert.ErrorIs(t, err, ErrBadCredentials)
}

func TestParseToken_RejectsGarbage(t *testing.T) {
	db := newTestDB(t)
	svc := newAuthServiceForTest(db)

	_, err := svc.ParseToken("not-a-token")
	assert.Error(t, err)
}
