package service

import (
	"context"
	"database/sql"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hisdocs/his-docs-api/internal/models"
	appErrors "github.com/hisdocs/his-docs-api/pkg/errors"
)

type authRepoStub struct {
	users map[string]*models.User
}

func newAuthRepoStub(users ...*models.User) *authRepoStub {
	stub := &authRepoStub{users: make(map[string]*models.User)}
	for _, u := range users {
		stub.users[u.Username] = u
	}
	return stub
}

func (s *authRepoStub) FindByUsername(_ context.Context, username string) (*models.User, error) {
	user, ok := s.users[username]
	if !ok {
		return nil, sql.ErrNoRows
	}
	return user, nil
}

func (s *authRepoStub) FindByID(_ context.Context, id string) (*models.User, error) {
	for _, u := range s.users {
		if u.ID == id {
			return u, nil
		}
	}
	return nil, sql.ErrNoRows
}

func (s *authRepoStub) Create(_ context.Context, user *models.User) error {
	if user.ID == "" {
		user.ID = "user-" + user.Username
	}
	s.users[user.Username] = user
	return nil
}

func newAuthService(repo authUserRepository) *AuthService {
	return NewAuthService(repo, nil, nil, AuthConfig{
		TokenSecret: "test-secret",
		TokenExpiry: time.Hour,
		Issuer:      "his-docs-test",
	})
}

func TestLoginPasswordlessAcceptsAnyPassword(t *testing.T) {
	repo := newAuthRepoStub(&models.User{
		ID:       "user-1",
		Username: "zhang.wei",
		Role:     models.RoleUser,
	})
	svc := newAuthService(repo)

	for _, password := range []string{"", "anything", "совсем другое"} {
		resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "zhang.wei", Password: password})
		require.NoError(t, err, "password=%q", password)
		assert.NotEmpty(t, resp.AccessToken)
		assert.Equal(t, "user-1", resp.User.ID)
	}
}

func TestLoginWithPasswordHash(t *testing.T) {
	hash, err := bcrypt.GenerateFromPassword([]byte("s3cret"), bcrypt.MinCost)
	require.NoError(t, err)

	repo := newAuthRepoStub(&models.User{
		ID:           "user-2",
		Username:     "admin",
		PasswordHash: string(hash),
		Role:         models.RoleAdmin,
	})
	svc := newAuthService(repo)

	_, err = svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "wrong"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "admin", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, models.RoleAdmin, resp.User.Role)
}

func TestLoginUnknownUser(t *testing.T) {
	svc := newAuthService(newAuthRepoStub())

	_, err := svc.Login(context.Background(), models.LoginRequest{Username: "nobody", Password: "x"})
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrInvalidCredentials.Code, appErrors.FromError(err).Code)
}

func TestRegisterDuplicateUsername(t *testing.T) {
	repo := newAuthRepoStub(&models.User{ID: "user-1", Username: "taken"})
	svc := newAuthService(repo)

	_, err := svc.Register(context.Background(), models.RegisterRequest{Username: "taken", Password: "pw"})
	require.Error(t, err)
	typed := appErrors.FromError(err)
	assert.Equal(t, appErrors.ErrDuplicateUsername.Code, typed.Code)
	assert.Equal(t, 409, typed.Status)
}

func TestRegisterPasswordlessStoresEmptyHash(t *testing.T) {
	repo := newAuthRepoStub()
	svc := newAuthService(repo)

	info, err := svc.Register(context.Background(), models.RegisterRequest{Username: "li.na"})
	require.NoError(t, err)
	assert.Equal(t, "li.na", info.DisplayName)
	assert.Equal(t, models.RoleUser, info.Role)

	stored := repo.users["li.na"]
	require.NotNil(t, stored)
	assert.Empty(t, stored.PasswordHash)
}

func TestValidateTokenRoundTrip(t *testing.T) {
	repo := newAuthRepoStub(&models.User{ID: "user-7", Username: "ops", Role: models.RoleAdmin})
	svc := newAuthService(repo)

	resp, err := svc.Login(context.Background(), models.LoginRequest{Username: "ops"})
	require.NoError(t, err)

	claims, err := svc.ValidateToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "user-7", claims.UserID)
	assert.Equal(t, models.RoleAdmin, claims.Role)
	assert.Equal(t, "ops", claims.Username)
}

func TestValidateTokenRejectsWrongSecret(t *testing.T) {
	repo := newAuthRepoStub(&models.User{ID: "user-8", Username: "dev"})
	issuer := newAuthService(repo)

	resp, err := issuer.Login(context.Background(), models.LoginRequest{Username: "dev"})
	require.NoError(t, err)

	verifier := NewAuthService(repo, nil, nil, AuthConfig{TokenSecret: "other-secret", TokenExpiry: time.Hour})
	_, err = verifier.ValidateToken(resp.AccessToken)
	require.Error(t, err)
	assert.Equal(t, appErrors.ErrUnauthorized.Code, appErrors.FromError(err).Code)
}
