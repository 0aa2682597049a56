package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"shopno-backend/internal/adapters/persistence/models"
	"shopno-backend/internal/config"
	"shopno-backend/internal/core/domain"
	"shopno-backend/internal/pkg/password"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"gorm.io/gorm"
)

// fakeRefreshTokenRepo is an in-memory refresh token store.
type fakeRefreshTokenRepo struct {
	mu     sync.Mutex
	tokens []models.RefreshToken
	nextID uint
}

func (f *fakeRefreshTokenRepo) Create(ctx context.Context, token *models.RefreshToken) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.nextID++
	token.ID = f.nextID
	f.tokens = append(f.tokens, *token)
	return nil
}

func (f *fakeRefreshTokenRepo) GetByTokenHash(ctx context.Context, tokenHash string) (*models.RefreshToken, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	for i := range f.tokens {
		if f.tokens[i].TokenHash == tokenHash && f.tokens[i].RevokedAt == nil {
			t := f.tokens[i]
			return &t, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (f *fakeRefreshTokenRepo) RevokeByTokenHash(ctx context.Context, tokenHash string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for i := range f.tokens {
		if f.tokens[i].TokenHash == tokenHash && f.tokens[i].RevokedAt == nil {
			f.tokens[i].RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) RevokeAllByUserID(ctx context.Context, userID uint) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	now := time.Now()
	for i := range f.tokens {
		if f.tokens[i].UserID == userID && f.tokens[i].RevokedAt == nil {
			f.tokens[i].RevokedAt = &now
		}
	}
	return nil
}

func (f *fakeRefreshTokenRepo) DeleteExpired(ctx context.Context) error {
	return nil
}

func (f *fakeRefreshTokenRepo) live(userID uint) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	n := 0
	for i := range f.tokens {
		if f.tokens[i].UserID == userID && f.tokens[i].RevokedAt == nil {
			n++
		}
	}
	return n
}

func testAuthConfig() *config.Config {
	return &config.Config{
		AppMode: "dev",
		JWT: config.JWTConfig{
			Secret:           "test-access-secret",
			RefreshSecret:    "test-refresh-secret",
			AccessTokenMins:  60,
			RefreshTokenDays: 30,
		},
	}
}

func newTestAuthService() (*AuthService, *fakeRefreshTokenRepo) {
	userRepo := newFakeUserRepo(seedSuperAdmin())
	tokenRepo := &fakeRefreshTokenRepo{}
	activities := NewActivityService(newFakeCollection[models.Activity](), userRepo)
	return NewAuthService(userRepo, tokenRepo, activities, testAuthConfig()), tokenRepo
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	svc, tokenRepo := newTestAuthService()

	resp, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "admin123456"})
	require.NoError(t, err)
	assert.NotEmpty(t, resp.AccessToken)
	assert.NotEmpty(t, resp.RefreshToken)
	assert.Equal(t, "admin", resp.User.Username)
	assert.Equal(t, 1, tokenRepo.live(1))

	// the issued access token round-trips through validation
	claims, err := svc.ValidateAccessToken(resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, uint(1), claims.UserID)
	assert.Equal(t, string(domain.RoleSuperAdmin), claims.Role)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	// unknown user reads the same as a wrong password
	_, err = svc.Login(ctx, &LoginInput{Username: "ghost", Password: "admin123456"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefreshTokenRotation(t *testing.T) {
	ctx := context.Background()
	svc, tokenRepo := newTestAuthService()

	login, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "admin123456"})
	require.NoError(t, err)

	refreshed, err := svc.RefreshToken(ctx, login.RefreshToken)
	require.NoError(t, err)
	assert.NotEmpty(t, refreshed.AccessToken)
	assert.NotEqual(t, login.RefreshToken, refreshed.RefreshToken)
	assert.Equal(t, 1, tokenRepo.live(1), "rotation revokes the old token")

	// the rotated-out token is dead
	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshTokenRejectsGarbage(t *testing.T) {
	ctx := context.Background()
	svc, _ := newTestAuthService()

	_, err := svc.RefreshToken(ctx, "not-a-jwt")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutRevokesToken(t *testing.T) {
	ctx := context.Background()
	svc, tokenRepo := newTestAuthService()

	login, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "admin123456"})
	require.NoError(t, err)

	require.NoError(t, svc.Logout(ctx, testSession(), login.RefreshToken))
	assert.Equal(t, 0, tokenRepo.live(1))

	_, err = svc.RefreshToken(ctx, login.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestLogoutAllRevokesEverySession(t *testing.T) {
	ctx := context.Background()
	svc, tokenRepo := newTestAuthService()

	_, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "admin123456"})
	require.NoError(t, err)
	second, err := svc.Login(ctx, &LoginInput{Username: "admin", Password: "admin123456"})
	require.NoError(t, err)
	require.Equal(t, 2, tokenRepo.live(1))

	require.NoError(t, svc.LogoutAll(ctx, 1))
	assert.Equal(t, 0, tokenRepo.live(1))

	_, err = svc.RefreshToken(ctx, second.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

// password hashing helpers the login path depends on
func TestPasswordHashRoundTrip(t *testing.T) {
	hashed, err := password.Hash("admin123456")
	require.NoError(t, err)
	assert.True(t, password.Verify("admin123456", hashed))
	assert.False(t, password.Verify("other", hashed))
}
