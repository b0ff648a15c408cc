package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-playground/validator/v10"

	"github.com/example/bala-store/internal/api/middleware"
	"github.com/example/bala-store/internal/auth"
	"github.com/example/bala-store/internal/domain"
	"github.com/example/bala-store/internal/repository"
)

var validate = validator.New()

// AuthHandlers serves login, signup, session and account management.
type AuthHandlers struct {
	authService *auth.Service
}

func NewAuthHandlers(authService *auth.Service) *AuthHandlers {
	return &AuthHandlers{authService: authService}
}

// LoginRequest accepts an email or mobile number as the identifier.
type LoginRequest struct {
	Identifier string `json:"identifier" validate:"required"`
	Pass       string `json:"pass" validate:"required"`
}

// SignupRequest creates a customer account.
type SignupRequest struct {
	Name   string `json:"name" validate:"required"`
	Email  string `json:"email" validate:"required,email"`
	Mobile string `json:"mobile" validate:"required"`
	Pass   string `json:"pass" validate:"required,min=6"`
}

// SessionResponse is the sanitized identity plus its token.
type SessionResponse struct {
	User  domain.UserAccount `json:"user"`
	Token string             `json:"token"`
}

// Login handles credential login.
func (h *AuthHandlers) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.authService.Login(r.Context(), req.Identifier, req.Pass)
	if err != nil {
		if errors.Is(err, auth.ErrInvalidCredentials) {
			respondError(w, "invalid identifier or password", http.StatusUnauthorized)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, r, session.Token)
	respondJSON(w, http.StatusOK, SessionResponse{User: session.User, Token: session.Token})
}

// LoginWithGoogle handles the federated login shortcut.
func (h *AuthHandlers) LoginWithGoogle(w http.ResponseWriter, r *http.Request) {
	session, err := h.authService.LoginWithProvider(r.Context())
	if err != nil {
		if errors.Is(err, auth.ErrNoSuchFederatedAccount) {
			respondError(w, "no federated account is provisioned", http.StatusUnauthorized)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, r, session.Token)
	respondJSON(w, http.StatusOK, SessionResponse{User: session.User, Token: session.Token})
}

// Signup registers a customer account and logs it in.
func (h *AuthHandlers) Signup(w http.ResponseWriter, r *http.Request) {
	var req SignupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	session, err := h.authService.Signup(r.Context(), req.Name, req.Email, req.Mobile, req.Pass)
	if err != nil {
		if errors.Is(err, repository.ErrDuplicateAccount) {
			respondError(w, "an account with this email or mobile already exists", http.StatusConflict)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}

	h.setSessionCookie(w, r, session.Token)
	respondJSON(w, http.StatusCreated, SessionResponse{User: session.User, Token: session.Token})
}

// Logout invalidates the current session.
func (h *AuthHandlers) Logout(w http.ResponseWriter, r *http.Request) {
	if token := middleware.TokenFromContext(r.Context()); token != "" {
		h.authService.Logout(token)
	}
	h.clearSessionCookie(w)
	respondJSON(w, http.StatusOK, map[string]string{"message": "logged out"})
}

// Me returns the authenticated identity.
func (h *AuthHandlers) Me(w http.ResponseWriter, r *http.Request) {
	identity, ok := middleware.IdentityFromContext(r.Context())
	if !ok {
		respondError(w, "unauthorized", http.StatusUnauthorized)
		return
	}
	respondJSON(w, http.StatusOK, identity)
}

// ListUsers returns every account, secrets stripped.
func (h *AuthHandlers) ListUsers(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.authService.ListUsers())
}

// UpdateUserRequest patches account fields. Absent fields are left alone;
// an empty pass also means "keep", matching the original account form where
// a blank password field never cleared anything.
type UpdateUserRequest struct {
	Name   *string `json:"name"`
	Email  *string `json:"email" validate:"omitempty,email"`
	Mobile *string `json:"mobile"`
	Pass   string  `json:"pass"`
}

// UpdateUser applies a credential patch to an account.
func (h *AuthHandlers) UpdateUser(w http.ResponseWriter, r *http.Request) {
	var req UpdateUserRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, "invalid request body", http.StatusBadRequest)
		return
	}
	if err := validate.Struct(req); err != nil {
		respondError(w, err.Error(), http.StatusBadRequest)
		return
	}

	patch := auth.CredentialPatch{
		Name:   req.Name,
		Email:  req.Email,
		Mobile: req.Mobile,
		Secret: auth.SetSecret(req.Pass),
	}
	if err := h.authService.UpdateCredentials(r.Context(), chi.URLParam(r, "userID"), patch); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, "user not found", http.StatusNotFound)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "account updated"})
}

// DeleteUser removes an account. The user's orders are kept for the sales
// record.
func (h *AuthHandlers) DeleteUser(w http.ResponseWriter, r *http.Request) {
	if err := h.authService.DeleteUser(r.Context(), chi.URLParam(r, "userID")); err != nil {
		if errors.Is(err, repository.ErrUserNotFound) {
			respondError(w, "user not found", http.StatusNotFound)
			return
		}
		respondError(w, err.Error(), http.StatusInternalServerError)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "account deleted"})
}

func (h *AuthHandlers) setSessionCookie(w http.ResponseWriter, r *http.Request, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    token,
		Path:     "/",
		Expires:  time.Now().Add(24 * time.Hour),
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteStrictMode,
	})
}

func (h *AuthHandlers) clearSessionCookie(w http.ResponseWriter) {
	http.SetCookie(w, &http.Cookie{
		Name:     "access_token",
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
}
