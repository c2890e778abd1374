package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"ballotbox/internal/auth"
	"ballotbox/internal/errors"
	"ballotbox/internal/logger"
	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

// BcryptCost is the work factor for password hashes.
const BcryptCost = 10

// AuthService handles authentication operations.
type AuthService interface {
	Register(ctx context.Context, name, email, password string) (*model.User, error)
	Login(ctx context.Context, email, password string) (token string, user *model.User, err error)
	Authorize(ctx context.Context, token string) (*auth.Claims, error)
	Me(ctx context.Context, userID uuid.UUID) (*model.User, error)
	Logout(ctx context.Context, claims *auth.Claims) error
}

type authService struct {
	userRepo   repository.UserRepository
	jwtService *auth.JWTService
	tokenStore auth.TokenStoreInterface
}

// NewAuthService creates a new authentication service.
func NewAuthService(userRepo repository.UserRepository, jwtService *auth.JWTService, tokenStore auth.TokenStoreInterface) AuthService {
	return &authService{
		userRepo:   userRepo,
		jwtService: jwtService,
		tokenStore: tokenStore,
	}
}

// NormalizeEmail lower-cases and trims an email address.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// HashPassword hashes a password with a per-hash salt.
func HashPassword(password string) (string, error) {
	hashed, err := bcrypt.GenerateFromPassword([]byte(password), BcryptCost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Register creates an unverified voter. It does not log the user in.
func (s *authService) Register(ctx context.Context, name, email, password string) (*model.User, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, fmt.Errorf("%w: name is required", errors.ErrInvalidInput)
	}
	email = NormalizeEmail(email)

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil && existing != nil {
		return nil, errors.ErrDuplicateEmail
	}
	if err != nil && !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("check email: %w", err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleVoter,
		IsVerified:   false,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// a concurrent registration can still hit the unique index
		if stderrors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, errors.ErrDuplicateEmail
		}
		return nil, fmt.Errorf("create user: %w", err)
	}

	logger.Log.Info("voter registered", "user_id", user.ID)
	return user, nil
}

// Login verifies credentials and issues a session token.
func (s *authService) Login(ctx context.Context, email, password string) (string, *model.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil, errors.ErrUserNotFound
		}
		return "", nil, fmt.Errorf("find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return "", nil, errors.ErrInvalidCredentials
	}

	if user.Role == model.RoleVoter && !user.IsVerified {
		return "", nil, errors.ErrNotApproved
	}

	token, err := s.jwtService.GenerateToken(user.ID, user.Role)
	if err != nil {
		return "", nil, fmt.Errorf("generate token: %w", err)
	}

	return token, user, nil
}

// Authorize validates a bearer token and rejects revoked ones.
func (s *authService) Authorize(ctx context.Context, token string) (*auth.Claims, error) {
	claims, err := s.jwtService.ValidateToken(token)
	if err != nil {
		return nil, errors.ErrUnauthenticated
	}

	revoked, err := s.tokenStore.IsRevoked(ctx, claims.ID)
	if err != nil {
		return nil, fmt.Errorf("check revocation: %w", err)
	}
	if revoked {
		return nil, errors.ErrUnauthenticated
	}

	return claims, nil
}

// Me returns the caller's profile.
func (s *authService) Me(ctx context.Context, userID uuid.UUID) (*model.User, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrUserNotFound
		}
		return nil, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// Logout revokes the presented token until it would have expired.
func (s *authService) Logout(ctx context.Context, claims *auth.Claims) error {
	if claims == nil {
		return errors.ErrUnauthenticated
	}
	ttl := auth.TokenExpiry
	if claims.ExpiresAt != nil {
		ttl = time.Until(claims.ExpiresAt.Time)
	}
	return s.tokenStore.Revoke(ctx, claims.ID, ttl)
}
