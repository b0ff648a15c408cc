package auth

import (
	"context"
	"errors"
	"time"

	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/repository"
)

var (
	// ErrInvalidCredentials deliberately covers both "unknown identifier"
	// and "wrong secret" so the response leaks neither.
	ErrInvalidCredentials     = errors.New("invalid credentials")
	ErrNoSuchFederatedAccount = errors.New("no federated account is provisioned")
)

// FederatedUserID is the pre-provisioned record the federated login
// shortcut resolves to. It must exist in the user collection; the shortcut
// never creates accounts.
const FederatedUserID = "google_user"

// Session is an issued session: the sanitized identity plus its token.
type Session struct {
	User  domain.UserAccount
	Token string
}

// Service validates credentials against the user collection and issues
// sessions. A configurable latency models the asynchronous boundary the
// login flow always had; it honors context cancellation but offers no other
// cancellation support.
type Service struct {
	users    *repository.Users
	jwt      *JWTService
	sessions *SessionCache
	latency  time.Duration
}

func NewService(users *repository.Users, jwt *JWTService, sessions *SessionCache, latency time.Duration) *Service {
	return &Service{
		users:    users,
		jwt:      jwt,
		sessions: sessions,
		latency:  latency,
	}
}

func (s *Service) wait(ctx context.Context) error {
	if s.latency <= 0 {
		return ctx.Err()
	}
	select {
	case <-time.After(s.latency):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Login matches the identifier against email (case-insensitive) or mobile
// (exact) and verifies the secret.
func (s *Service) Login(ctx context.Context, identifier, secret string) (Session, error) {
	if err := s.wait(ctx); err != nil {
		return Session{}, err
	}

	account, ok := s.users.FindByIdentifier(identifier)
	if !ok || !VerifySecret(account.Pass, secret) {
		return Session{}, ErrInvalidCredentials
	}
	return s.open(account)
}

// LoginWithProvider performs the federated login shortcut: no secret check,
// resolving to the pre-provisioned federated record.
func (s *Service) LoginWithProvider(ctx context.Context) (Session, error) {
	if err := s.wait(ctx); err != nil {
		return Session{}, err
	}

	account, ok := s.users.Get(FederatedUserID)
	if !ok {
		return Session{}, ErrNoSuchFederatedAccount
	}
	return s.open(account)
}

// Signup creates a customer account and logs it in. The collision check and
// the write happen as one repository operation, so a duplicate performs no
// partial write.
func (s *Service) Signup(ctx context.Context, name, email, mobile, secret string) (Session, error) {
	if err := s.wait(ctx); err != nil {
		return Session{}, err
	}

	hash, err := HashSecret(secret)
	if err != nil {
		return Session{}, err
	}

	account, err := s.users.Add(ctx, domain.UserAccount{
		Name:   name,
		Email:  email,
		Mobile: mobile,
		Pass:   hash,
		Role:   domain.RoleCustomer,
	})
	if err != nil {
		return Session{}, err
	}
	return s.open(account)
}

// Logout invalidates the session token.
func (s *Service) Logout(token string) {
	s.sessions.Delete(token)
}

// Identity resolves a live session token to its identity.
func (s *Service) Identity(token string) (domain.UserAccount, bool) {
	return s.sessions.Get(token)
}

// ListUsers returns all accounts with the secret stripped unconditionally.
func (s *Service) ListUsers() []domain.UserAccount {
	accounts := s.users.List()
	out := make([]domain.UserAccount, 0, len(accounts))
	for _, a := range accounts {
		out = append(out, a.Sanitized())
	}
	return out
}

// SecretUpdate is an explicit keep-or-set marker for credential patches,
// so "clear this field" and "leave unchanged" cannot be confused.
type SecretUpdate struct {
	set   bool
	value string
}

// KeepSecret leaves the stored secret unchanged.
func KeepSecret() SecretUpdate { return SecretUpdate{} }

// SetSecret replaces the stored secret. An empty value is treated as keep:
// an empty secret is never stored.
func SetSecret(value string) SecretUpdate {
	if value == "" {
		return SecretUpdate{}
	}
	return SecretUpdate{set: true, value: value}
}

// CredentialPatch applies only the fields that are present.
type CredentialPatch struct {
	Name   *string
	Email  *string
	Mobile *string
	Secret SecretUpdate
}

// UpdateCredentials applies a patch to a stored account.
func (s *Service) UpdateCredentials(ctx context.Context, userID string, patch CredentialPatch) error {
	account, ok := s.users.Get(userID)
	if !ok {
		return repository.ErrUserNotFound
	}

	if patch.Name != nil {
		account.Name = *patch.Name
	}
	if patch.Email != nil {
		account.Email = *patch.Email
	}
	if patch.Mobile != nil {
		account.Mobile = *patch.Mobile
	}
	if patch.Secret.set {
		hash, err := HashSecret(patch.Secret.value)
		if err != nil {
			return err
		}
		account.Pass = hash
	}

	if err := s.users.Update(ctx, account); err != nil {
		return err
	}
	s.sessions.UpdateUser(account)
	return nil
}

// DeleteUser removes an account and drops any of its live sessions. Orders
// owned by the account are kept.
func (s *Service) DeleteUser(ctx context.Context, userID string) error {
	if err := s.users.Delete(ctx, userID); err != nil {
		return err
	}
	s.sessions.DeleteUser(userID)
	return nil
}

func (s *Service) open(account domain.UserAccount) (Session, error) {
	token, _, err := s.jwt.GenerateToken(account.ID, account.Email, account.Role)
	if err != nil {
		return Session{}, err
	}

	identity := account.Sanitized()
	s.sessions.Put(token, identity)
	return Session{User: identity, Token: token}, nil
}
