package auth

import (
	"context"
	"testing"
	"time"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/kvstore"
	"github.com/example/bala-store/internal/repository"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestService(t *testing.T) (*Service, *repository.Users) {
	t.Helper()
	users := repository.NewUsers(context.Background(), kvstore.NewMemory())
	jwt := NewJWTService("test-secret-key-0123456789abcdef", time.Hour)
	return NewService(users, jwt, NewSessionCache(), 0), users
}

func seedAccount(t *testing.T, users *repository.Users, email, mobile, secret, role string) domain.UserAccount {
	t.Helper()
	hash, err := HashSecret(secret)
	require.NoError(t, err)
	u, err := users.Add(context.Background(), domain.UserAccount{
		Email:  email,
		Mobile: mobile,
		Pass:   hash,
		Role:   role,
	})
	require.NoError(t, err)
	return u
}

// ============================================
// Login
// ============================================

func TestService_Login(t *testing.T) {
	svc, users := newTestService(t)
	seedAccount(t, users, "asha@store.com", "9999999999", "secret123", domain.RoleCustomer)
	ctx := context.Background()

	tests := []struct {
		name       string
		identifier string
		secret     string
		wantErr    error
	}{
		{"by email", "asha@store.com", "secret123", nil},
		{"by email mixed case", "Asha@Store.COM", "secret123", nil},
		{"by mobile", "9999999999", "secret123", nil},
		{"wrong secret", "asha@store.com", "nope", ErrInvalidCredentials},
		{"unknown identifier", "ghost@store.com", "secret123", ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			session, err := svc.Login(ctx, tt.identifier, tt.secret)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.NotEmpty(t, session.Token)
			assert.Equal(t, "asha@store.com", session.User.Email)
			assert.Empty(t, session.User.Pass, "session identity must not carry the secret")
		})
	}
}

func TestService_LoginHonorsContextCancellation(t *testing.T) {
	users := repository.NewUsers(context.Background(), kvstore.NewMemory())
	jwt := NewJWTService("test-secret-key-0123456789abcdef", time.Hour)
	svc := NewService(users, jwt, NewSessionCache(), 5*time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := svc.Login(ctx, "asha@store.com", "secret123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestService_LoginLegacyPlainSecret(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	// A record imported from an old backup stores the secret verbatim.
	_, err := users.Add(ctx, domain.UserAccount{
		Email: "legacy@store.com",
		Pass:  "admin123",
		Role:  domain.RoleAdmin,
	})
	require.NoError(t, err)

	_, err = svc.Login(ctx, "legacy@store.com", "admin123")
	assert.NoError(t, err)

	_, err = svc.Login(ctx, "legacy@store.com", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// ============================================
// Federated login
// ============================================

func TestService_LoginWithProvider_NoProvisionedAccount(t *testing.T) {
	svc, _ := newTestService(t)

	_, err := svc.LoginWithProvider(context.Background())
	assert.ErrorIs(t, err, ErrNoSuchFederatedAccount)
}

func TestService_LoginWithProvider_ResolvesProvisionedRecord(t *testing.T) {
	store := kvstore.NewMemory()
	ctx := context.Background()

	// The federated record is pre-provisioned with a fixed id and no secret.
	seeded := []domain.UserAccount{
		{ID: FederatedUserID, Email: "google.user@gmail.com", Role: domain.RoleCustomer},
	}
	require.NoError(t, kvstore.Write(ctx, store, kvstore.KeyUsers, seeded))

	users := repository.NewUsers(ctx, store)
	jwt := NewJWTService("test-secret-key-0123456789abcdef", time.Hour)
	svc := NewService(users, jwt, NewSessionCache(), 0)

	session, err := svc.LoginWithProvider(ctx)
	require.NoError(t, err)
	assert.Equal(t, FederatedUserID, session.User.ID)
	assert.Empty(t, session.User.Pass)
}

// ============================================
// Signup
// ============================================

func TestService_Signup(t *testing.T) {
	svc, users := newTestService(t)
	ctx := context.Background()

	session, err := svc.Signup(ctx, "Asha", "asha@store.com", "9999999999", "secret123")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleCustomer, session.User.Role)
	assert.NotEmpty(t, session.Token)

	// The stored record carries a hash, never the plain secret.
	stored, ok := users.FindByIdentifier("asha@store.com")
	require.True(t, ok)
	assert.NotEqual(t, "secret123", stored.Pass)
	assert.True(t, VerifySecret(stored.Pass, "secret123"))
}

func TestService_SignupDuplicate(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, "Asha", "asha@store.com", "9999999999", "secret123")
	require.NoError(t, err)

	_, err = svc.Signup(ctx, "Other", "ASHA@store.com", "", "other456")
	assert.ErrorIs(t, err, repository.ErrDuplicateAccount)

	_, err = svc.Signup(ctx, "Other", "other@store.com", "9999999999", "other456")
	assert.ErrorIs(t, err, repository.ErrDuplicateAccount)
}

// ============================================
// Sessions
// ============================================

func TestService_LogoutInvalidatesSession(t *testing.T) {
	svc, users := newTestService(t)
	seedAccount(t, users, "asha@store.com", "", "secret123", domain.RoleCustomer)

	session, err := svc.Login(context.Background(), "asha@store.com", "secret123")
	require.NoError(t, err)

	_, ok := svc.Identity(session.Token)
	require.True(t, ok)

	svc.Logout(session.Token)
	_, ok = svc.Identity(session.Token)
	assert.False(t, ok)
}

// ============================================
// Listing
// ============================================

func TestService_ListUsersStripsSecrets(t *testing.T) {
	svc, users := newTestService(t)
	seedAccount(t, users, "a@store.com", "", "secret123", domain.RoleAdmin)
	seedAccount(t, users, "b@store.com", "", "secret456", domain.RoleCustomer)

	for _, u := range svc.ListUsers() {
		assert.Empty(t, u.Pass)
	}
	assert.Len(t, svc.ListUsers(), 2)
}

// ============================================
// Credential updates
// ============================================

func TestService_UpdateCredentials(t *testing.T) {
	svc, users := newTestService(t)
	account := seedAccount(t, users, "asha@store.com", "111", "secret123", domain.RoleCustomer)
	ctx := context.Background()

	newEmail := "asha.new@store.com"
	err := svc.UpdateCredentials(ctx, account.ID, CredentialPatch{
		Email:  &newEmail,
		Secret: SetSecret("fresh456"),
	})
	require.NoError(t, err)

	updated, ok := users.Get(account.ID)
	require.True(t, ok)
	assert.Equal(t, newEmail, updated.Email)
	assert.Equal(t, "111", updated.Mobile, "absent fields stay untouched")
	assert.True(t, VerifySecret(updated.Pass, "fresh456"))
}

func TestService_UpdateCredentials_EmptySecretMeansKeep(t *testing.T) {
	svc, users := newTestService(t)
	account := seedAccount(t, users, "asha@store.com", "", "secret123", domain.RoleCustomer)
	ctx := context.Background()

	err := svc.UpdateCredentials(ctx, account.ID, CredentialPatch{Secret: SetSecret("")})
	require.NoError(t, err)

	updated, _ := users.Get(account.ID)
	assert.True(t, VerifySecret(updated.Pass, "secret123"), "empty secret never overwrites")
}

func TestService_UpdateCredentials_RefreshesLiveSessions(t *testing.T) {
	svc, users := newTestService(t)
	seedAccount(t, users, "asha@store.com", "", "secret123", domain.RoleCustomer)
	ctx := context.Background()

	session, err := svc.Login(ctx, "asha@store.com", "secret123")
	require.NoError(t, err)

	newName := "Asha Rani"
	newEmail := "asha.new@store.com"
	err = svc.UpdateCredentials(ctx, session.User.ID, CredentialPatch{
		Name:  &newName,
		Email: &newEmail,
	})
	require.NoError(t, err)

	identity, ok := svc.Identity(session.Token)
	require.True(t, ok, "patch must not drop the session")
	assert.Equal(t, newName, identity.Name)
	assert.Equal(t, newEmail, identity.Email)
	assert.Empty(t, identity.Pass)
}

func TestService_UpdateCredentials_UnknownUser(t *testing.T) {
	svc, _ := newTestService(t)

	err := svc.UpdateCredentials(context.Background(), "missing", CredentialPatch{})
	assert.ErrorIs(t, err, repository.ErrUserNotFound)
}

// ============================================
// Tokens
// ============================================

func TestJWTService_RoundTrip(t *testing.T) {
	jwt := NewJWTService("test-secret-key-0123456789abcdef", time.Hour)

	token, _, err := jwt.GenerateToken("u1", "asha@store.com", domain.RoleAdmin)
	require.NoError(t, err)

	claims, err := jwt.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, "u1", claims.UserID)
	assert.Equal(t, domain.RoleAdmin, claims.Role)
}

func TestJWTService_RejectsTampering(t *testing.T) {
	jwt := NewJWTService("test-secret-key-0123456789abcdef", time.Hour)
	other := NewJWTService("another-secret-key-fedcba98765432", time.Hour)

	token, _, err := other.GenerateToken("u1", "asha@store.com", domain.RoleAdmin)
	require.NoError(t, err)

	_, err = jwt.ValidateToken(token)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestVerifySecret(t *testing.T) {
	hash, err := HashSecret("secret123")
	require.NoError(t, err)

	assert.True(t, VerifySecret(hash, "secret123"))
	assert.False(t, VerifySecret(hash, "other"))
	assert.True(t, VerifySecret("plaintext", "plaintext"))
	assert.False(t, VerifySecret("plaintext", "different"))
	assert.False(t, VerifySecret("", ""))
}
