package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"pawmarket/internal/domain"
	"pawmarket/internal/repository"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

type mockRefreshTokenRepository struct {
	tokens map[string]*domain.RefreshToken
}

func newMockRefreshTokenRepository() *mockRefreshTokenRepository {
	return &mockRefreshTokenRepository{
		tokens: make(map[string]*domain.RefreshToken),
	}
}

func (m *mockRefreshTokenRepository) Create(ctx context.Context, token *domain.RefreshToken) error {
	m.tokens[token.Token] = token
	return nil
}

func (m *mockRefreshTokenRepository) FindByToken(ctx context.Context, token string) (*domain.RefreshToken, error) {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return nil, repository.ErrRefreshTokenNotFound
	}
	if refreshToken.Revoked {
		return nil, repository.ErrRefreshTokenRevoked
	}
	return refreshToken, nil
}

func (m *mockRefreshTokenRepository) Revoke(ctx context.Context, token string) error {
	refreshToken, exists := m.tokens[token]
	if !exists {
		return repository.ErrRefreshTokenNotFound
	}
	refreshToken.Revoked = true
	return nil
}

// memoryOTPStore keeps codes in a map with expiry timestamps, mirroring
// the redis-backed store's missing-key behavior.
type memoryOTPStore struct {
	mu    sync.Mutex
	codes map[string]string
	until map[string]time.Time
}

func newMemoryOTPStore() *memoryOTPStore {
	return &memoryOTPStore{
		codes: make(map[string]string),
		until: make(map[string]time.Time),
	}
}

func (s *memoryOTPStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.codes[email] = code
	s.until[email] = time.Now().Add(ttl)
	return nil
}

func (s *memoryOTPStore) Get(ctx context.Context, email string) (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	code, exists := s.codes[email]
	if !exists || time.Now().After(s.until[email]) {
		// Same sentinel the redis-backed store surfaces for a missing key
		return "", redis.Nil
	}
	return code, nil
}

func (s *memoryOTPStore) Delete(ctx context.Context, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.codes, email)
	delete(s.until, email)
	return nil
}

type userServiceFixture struct {
	userStore *mockUserStore
	tokens    *mockRefreshTokenRepository
	otpStore  *memoryOTPStore
	notifier  *mockNotifier
	service   UserService
}

func newUserServiceFixture() *userServiceFixture {
	userStore := newMockUserStore()
	tokens := newMockRefreshTokenRepository()
	otpStore := newMemoryOTPStore()
	notifier := newMockNotifier()
	return &userServiceFixture{
		userStore: userStore,
		tokens:    tokens,
		otpStore:  otpStore,
		notifier:  notifier,
		service:   NewUserService(userStore, tokens, otpStore, notifier, "test-secret-key"),
	}
}

func (f *userServiceFixture) signupVerified(t *testing.T, email, password string) *domain.User {
	t.Helper()
	user, err := f.service.Signup(context.Background(), email, password, "Jamie", "Doe")
	require.NoError(t, err)
	require.NoError(t, f.service.VerifyOTP(context.Background(), email, f.notifier.otps[email]))
	return user
}

func TestSignupStartsAsUnverifiedBuyer(t *testing.T) {
	f := newUserServiceFixture()

	user, err := f.service.Signup(context.Background(), "jamie@example.com", "secret-password", "Jamie", "Doe")

	require.NoError(t, err)
	assert.Equal(t, domain.RoleBuyer, user.Role)
	assert.False(t, user.IsVerified)
	assert.False(t, user.IsBanned)
	// A verification code was stored and sent
	assert.NotEmpty(t, f.notifier.otps["jamie@example.com"])
}

func TestSignupDuplicateEmail(t *testing.T) {
	f := newUserServiceFixture()

	_, err := f.service.Signup(context.Background(), "jamie@example.com", "secret-password", "Jamie", "Doe")
	require.NoError(t, err)

	_, err = f.service.Signup(context.Background(), "jamie@example.com", "other-password", "Jo", "Doe")

	assert.ErrorIs(t, err, repository.ErrUserAlreadyExists)
}

func TestVerifyOTPMarksAccountVerified(t *testing.T) {
	f := newUserServiceFixture()

	user, err := f.service.Signup(context.Background(), "jamie@example.com", "secret-password", "Jamie", "Doe")
	require.NoError(t, err)

	code := f.notifier.otps["jamie@example.com"]
	require.Len(t, code, 6)

	require.NoError(t, f.service.VerifyOTP(context.Background(), "jamie@example.com", code))

	assert.True(t, f.userStore.users[user.ID].IsVerified)
}

func TestVerifyOTPIsSingleUse(t *testing.T) {
	f := newUserServiceFixture()
	f.signupVerified(t, "jamie@example.com", "secret-password")

	// The consumed code was deleted from the store
	_, err := f.otpStore.Get(context.Background(), "jamie@example.com")
	assert.ErrorIs(t, err, redis.Nil)

	// And it cannot be replayed
	err = f.service.VerifyOTP(context.Background(), "jamie@example.com", f.notifier.otps["jamie@example.com"])
	assert.ErrorIs(t, err, ErrEmailVerified)
}

func TestVerifyOTPWrongCode(t *testing.T) {
	f := newUserServiceFixture()

	user, err := f.service.Signup(context.Background(), "jamie@example.com", "secret-password", "Jamie", "Doe")
	require.NoError(t, err)

	err = f.service.VerifyOTP(context.Background(), "jamie@example.com", "000000x")

	assert.ErrorIs(t, err, ErrInvalidOTP)
	assert.False(t, f.userStore.users[user.ID].IsVerified)
}

func TestVerifyOTPExpiredCode(t *testing.T) {
	f := newUserServiceFixture()

	_, err := f.service.Signup(context.Background(), "jamie@example.com", "secret-password", "Jamie", "Doe")
	require.NoError(t, err)

	require.NoError(t, f.otpStore.Delete(context.Background(), "jamie@example.com"))

	err = f.service.VerifyOTP(context.Background(), "jamie@example.com", f.notifier.otps["jamie@example.com"])

	assert.ErrorIs(t, err, ErrInvalidOTP)
}

func TestResendOTPReplacesCode(t *testing.T) {
	f := newUserServiceFixture()

	_, err := f.service.Signup(context.Background(), "jamie@example.com", "secret-password", "Jamie", "Doe")
	require.NoError(t, err)

	require.NoError(t, f.otpStore.Delete(context.Background(), "jamie@example.com"))

	require.NoError(t, f.service.ResendOTP(context.Background(), "jamie@example.com"))

	// A fresh code was stored and sent
	stored, err := f.otpStore.Get(context.Background(), "jamie@example.com")
	require.NoError(t, err)
	assert.Equal(t, f.notifier.otps["jamie@example.com"], stored)
}

func TestResendOTPForVerifiedAccount(t *testing.T) {
	f := newUserServiceFixture()
	f.signupVerified(t, "jamie@example.com", "secret-password")

	err := f.service.ResendOTP(context.Background(), "jamie@example.com")

	assert.ErrorIs(t, err, ErrEmailVerified)
}

func TestLoginBeforeVerification(t *testing.T) {
	f := newUserServiceFixture()

	_, err := f.service.Signup(context.Background(), "jamie@example.com", "secret-password", "Jamie", "Doe")
	require.NoError(t, err)

	_, _, _, err = f.service.Login(context.Background(), "jamie@example.com", "secret-password")

	assert.ErrorIs(t, err, ErrEmailNotVerified)
}

func TestLoginBannedAccount(t *testing.T) {
	f := newUserServiceFixture()
	user := f.signupVerified(t, "jamie@example.com", "secret-password")
	f.userStore.users[user.ID].IsBanned = true

	_, _, _, err := f.service.Login(context.Background(), "jamie@example.com", "secret-password")

	assert.ErrorIs(t, err, ErrAccountBanned)
}

func TestLoginWrongPassword(t *testing.T) {
	f := newUserServiceFixture()
	f.signupVerified(t, "jamie@example.com", "secret-password")

	_, _, _, err := f.service.Login(context.Background(), "jamie@example.com", "not-the-password")

	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLoginUnknownEmail(t *testing.T) {
	f := newUserServiceFixture()

	_, _, _, err := f.service.Login(context.Background(), "nobody@example.com", "secret-password")

	// Unknown accounts and wrong passwords are indistinguishable
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestProperty_SignupHashesPasswords(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("passwords are stored as bcrypt hashes, never plaintext", prop.ForAll(
		func(email string, password string, firstName string, lastName string) bool {
			f := newUserServiceFixture()
			ctx := context.Background()

			user, err := f.service.Signup(ctx, email, password, firstName, lastName)
			if err != nil {
				return true
			}

			if user.PasswordHash == password {
				t.Logf("FAIL: Password stored as plaintext for email %s", email)
				return false
			}

			if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
				t.Logf("FAIL: Password hash is not a valid bcrypt hash or doesn't match: %v", err)
				return false
			}

			stored, err := f.userStore.FindByEmail(ctx, email)
			if err != nil {
				t.Logf("FAIL: Could not find stored user: %v", err)
				return false
			}

			return stored.PasswordHash == user.PasswordHash
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
		gen.RegexMatch(`[A-Z][a-z]{2,15}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_AccessTokensCarryIdentityClaims(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("access tokens contain user ID and role claims", prop.ForAll(
		func(email string, password string, role string) bool {
			f := newUserServiceFixture()
			ctx := context.Background()

			user, err := f.service.Signup(ctx, email, password, "Jamie", "Doe")
			if err != nil {
				return true
			}
			if err := f.service.VerifyOTP(ctx, email, f.notifier.otps[email]); err != nil {
				t.Logf("FAIL: OTP verification failed: %v", err)
				return false
			}

			user.Role = role
			f.userStore.users[user.ID] = user

			accessToken, _, _, err := f.service.Login(ctx, email, password)
			if err != nil {
				t.Logf("FAIL: Login failed: %v", err)
				return false
			}

			claims, err := f.service.ValidateToken(accessToken)
			if err != nil {
				t.Logf("FAIL: Token validation failed: %v", err)
				return false
			}

			if claims.UserID != user.ID {
				t.Logf("FAIL: User ID claim mismatch. Expected %s, got %s", user.ID, claims.UserID)
				return false
			}

			if claims.Role != role {
				t.Logf("FAIL: Role claim mismatch. Expected %s, got %s", role, claims.Role)
				return false
			}

			return claims.ExpiresAt != nil && claims.IssuedAt != nil
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
		gen.OneConstOf(domain.RoleBuyer, domain.RoleSeller, domain.RoleAdmin),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_TokenRefreshRoundTrip(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("valid refresh token returns new valid access token", prop.ForAll(
		func(email string, password string) bool {
			f := newUserServiceFixture()
			ctx := context.Background()

			user, err := f.service.Signup(ctx, email, password, "Jamie", "Doe")
			if err != nil {
				return true
			}
			if err := f.service.VerifyOTP(ctx, email, f.notifier.otps[email]); err != nil {
				t.Logf("FAIL: OTP verification failed: %v", err)
				return false
			}

			_, refreshToken, _, err := f.service.Login(ctx, email, password)
			if err != nil {
				t.Logf("FAIL: Login failed: %v", err)
				return false
			}

			newAccessToken, err := f.service.RefreshToken(ctx, refreshToken)
			if err != nil {
				t.Logf("FAIL: Token refresh failed: %v", err)
				return false
			}

			claims, err := f.service.ValidateToken(newAccessToken)
			if err != nil {
				t.Logf("FAIL: New access token validation failed: %v", err)
				return false
			}

			if claims.UserID != user.ID {
				t.Logf("FAIL: User ID mismatch in refreshed token")
				return false
			}

			return claims.ExpiresAt == nil || time.Now().Before(claims.ExpiresAt.Time)
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestProperty_LogoutInvalidatesRefreshToken(t *testing.T) {
	properties := gopter.NewProperties(nil)

	properties.Property("logout marks refresh token as revoked", prop.ForAll(
		func(email string, password string) bool {
			f := newUserServiceFixture()
			ctx := context.Background()

			_, err := f.service.Signup(ctx, email, password, "Jamie", "Doe")
			if err != nil {
				return true
			}
			if err := f.service.VerifyOTP(ctx, email, f.notifier.otps[email]); err != nil {
				t.Logf("FAIL: OTP verification failed: %v", err)
				return false
			}

			_, refreshToken, _, err := f.service.Login(ctx, email, password)
			if err != nil {
				t.Logf("FAIL: Login failed: %v", err)
				return false
			}

			if _, err := f.service.RefreshToken(ctx, refreshToken); err != nil {
				t.Logf("FAIL: Refresh should work before logout: %v", err)
				return false
			}

			if err := f.service.Logout(ctx, refreshToken); err != nil {
				t.Logf("FAIL: Logout failed: %v", err)
				return false
			}

			_, err = f.service.RefreshToken(ctx, refreshToken)
			return err != nil
		},
		gen.RegexMatch(`[a-z]{3,10}@[a-z]{3,8}\.(com|org|net)`),
		gen.RegexMatch(`[A-Za-z0-9!@#$%]{8,20}`),
	))

	properties.TestingRun(t, gopter.ConsoleReporter(false))
}

func TestLogoutUnknownTokenIsNoOp(t *testing.T) {
	f := newUserServiceFixture()

	assert.NoError(t, f.service.Logout(context.Background(), "never-issued"))
}
