package service

import (
	"context"
	stderrors "errors"
	"fmt"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"ballotbox/internal/errors"
	"ballotbox/internal/logger"
	"ballotbox/internal/model"
	"ballotbox/internal/repository"
)

// AdminService handles voter approval.
type AdminService interface {
	ListPendingVoters(ctx context.Context) ([]model.User, error)
	ApproveVoter(ctx context.Context, id uuid.UUID) (*model.User, error)
	RejectVoter(ctx context.Context, id uuid.UUID) error
	EnsureAdmin(ctx context.Context, name, email, password string) (user *model.User, created bool, err error)
}

type adminService struct {
	userRepo repository.UserRepository
}

// NewAdminService creates a new admin service.
func NewAdminService(userRepo repository.UserRepository) AdminService {
	return &adminService{userRepo: userRepo}
}

func (s *adminService) findVoter(ctx context.Context, id uuid.UUID) (*model.User, error) {
	voter, err := s.userRepo.FindVoterByID(ctx, id)
	if err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrVoterNotFound
		}
		return nil, fmt.Errorf("find voter: %w", err)
	}
	return voter, nil
}

// ListPendingVoters lists voters that are not yet verified.
func (s *adminService) ListPendingVoters(ctx context.Context) ([]model.User, error) {
	voters, err := s.userRepo.ListPendingVoters(ctx)
	if err != nil {
		return nil, fmt.Errorf("list pending voters: %w", err)
	}
	return voters, nil
}

// ApproveVoter sets the verification flag on a voter account.
func (s *adminService) ApproveVoter(ctx context.Context, id uuid.UUID) (*model.User, error) {
	voter, err := s.findVoter(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.userRepo.SetVerified(ctx, id, true); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return nil, errors.ErrVoterNotFound
		}
		return nil, fmt.Errorf("approve voter: %w", err)
	}
	voter.IsVerified = true

	logger.Log.Info("voter approved", "user_id", id)
	return voter, nil
}

// RejectVoter deletes a voter account that is still awaiting approval.
// Approved voters may hold counted ballots, so they cannot be rejected.
func (s *adminService) RejectVoter(ctx context.Context, id uuid.UUID) error {
	voter, err := s.findVoter(ctx, id)
	if err != nil {
		return err
	}
	if voter.IsVerified {
		return errors.ErrVoterApproved
	}
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if stderrors.Is(err, gorm.ErrRecordNotFound) {
			return errors.ErrVoterNotFound
		}
		return fmt.Errorf("reject voter: %w", err)
	}

	logger.Log.Info("voter rejected", "user_id", id)
	return nil
}

// EnsureAdmin creates a verified admin account unless the email is already taken.
// An existing account is returned as is; its role is not changed.
func (s *adminService) EnsureAdmin(ctx context.Context, name, email, password string) (*model.User, bool, error) {
	email = NormalizeEmail(email)
	if email == "" || len(password) < 6 {
		return nil, false, fmt.Errorf("%w: admin email and a password of at least 6 characters are required", errors.ErrInvalidInput)
	}

	existing, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return existing, false, nil
	}
	if !stderrors.Is(err, gorm.ErrRecordNotFound) {
		return nil, false, fmt.Errorf("check email: %w", err)
	}

	hashed, err := HashPassword(password)
	if err != nil {
		return nil, false, err
	}
	admin := &model.User{
		ID:           uuid.New(),
		Name:         name,
		Email:        email,
		PasswordHash: hashed,
		Role:         model.RoleAdmin,
		IsVerified:   true,
	}
	if err := s.userRepo.Create(ctx, admin); err != nil {
		return nil, false, fmt.Errorf("create admin: %w", err)
	}
	return admin, true, nil
}
