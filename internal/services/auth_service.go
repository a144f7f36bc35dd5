package services

import (
	"errors"
	"fmt"
	"strings"

	"porto/internal/models"
	"porto/internal/repositories"
	"porto/pkg/identity"
)

// IdentityProvider is the slice of the identity client this service needs.
type IdentityProvider interface {
	GetUser(token string) (*identity.User, error)
	SignIn(email, password string) (*identity.Session, error)
}

// AuthService resolves bearer tokens to identities and decides admin status.
// Admin status is a live allowlist lookup, never a token claim, so revoking
// an admin takes effect on the next request.
type AuthService struct {
	provider  IdentityProvider
	adminRepo repositories.AdminRepository
}

// NewAuthService creates a new AuthService.
func NewAuthService(provider IdentityProvider, adminRepo repositories.AdminRepository) *AuthService {
	return &AuthService{
		provider:  provider,
		adminRepo: adminRepo,
	}
}

// ResolveUser turns a raw Authorization header into an identity, or nil for
// anonymous. Malformed headers, rejected tokens and provider outages all
// resolve to anonymous; this never fails.
func (s *AuthService) ResolveUser(authHeader string) *models.User {
	if authHeader == "" {
		return nil
	}

	parts := strings.SplitN(authHeader, " ", 2)
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return nil
	}

	user, err := s.provider.GetUser(parts[1])
	if err != nil {
		return nil
	}
	return &models.User{ID: user.ID, Email: user.Email}
}

// IsAdmin reports whether the user id has an allowlist row. A failed lookup
// counts as not admin.
func (s *AuthService) IsAdmin(userID string) bool {
	isAdmin, err := s.adminRepo.IsAdmin(userID)
	if err != nil {
		return false
	}
	return isAdmin
}

// Login resolves the credentials to an email, verifies them with the
// identity provider and returns its token pair. An identifier containing
// "@" is used as the email directly; otherwise it is looked up as an admin
// username.
func (s *AuthService) Login(req models.LoginRequest) (*models.LoginResponse, error) {
	email := req.Email

	if email == "" && req.Identifier != "" {
		if strings.Contains(req.Identifier, "@") {
			email = req.Identifier
		} else {
			resolved, err := s.adminRepo.EmailByUsername(req.Identifier)
			if err != nil || resolved == "" {
				return nil, ErrInvalidUsername
			}
			email = resolved
		}
	}

	if email == "" || req.Password == "" {
		return nil, ErrMissingCredentials
	}

	session, err := s.provider.SignIn(email, req.Password)
	if err != nil {
		return nil, fmt.Errorf("login failed: %w", err)
	}

	return &models.LoginResponse{
		AccessToken:  session.AccessToken,
		RefreshToken: session.RefreshToken,
		User:         models.User{ID: session.User.ID, Email: session.User.Email},
	}, nil
}

// LoginFailureDetail extracts the provider-facing message from a Login
// error, keeping the known request-level codes intact.
func LoginFailureDetail(err error) string {
	if errors.Is(err, ErrInvalidUsername) {
		return ErrInvalidUsername.Error()
	}
	if errors.Is(err, ErrMissingCredentials) {
		return ErrMissingCredentials.Error()
	}
	return strings.TrimPrefix(err.Error(), "login failed: ")
}
