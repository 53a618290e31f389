package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"itemtrack/internal/app/policy"
	"itemtrack/internal/common"
	"itemtrack/internal/common/security"
	"itemtrack/internal/domain/model"
	"itemtrack/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

// UserService implements account management: admin listing, self or admin
// edits, and transactional deletion with its item cascade.
type UserService struct {
	userRepo repository.UserRepository
	itemRepo repository.ItemRepository
	cache    SubjectCache
	db       *sql.DB // For transactions
	log      *logrus.Logger
}

func NewUserService(
	userRepo repository.UserRepository,
	itemRepo repository.ItemRepository,
	cache SubjectCache,
	db *sql.DB,
	log *logrus.Logger,
) *UserService {
	return &UserService{userRepo: userRepo, itemRepo: itemRepo, cache: cache, db: db, log: log}
}

type UpdateUserRequest struct {
	Email                *string `json:"email,omitempty"`
	Password             *string `json:"password,omitempty"`
	PasswordConfirmation *string `json:"password_confirmation,omitempty"`
	CurrentPassword      *string `json:"current_password,omitempty"`
	IsAdmin              *bool   `json:"is_admin,omitempty"`
}

// List returns every account. Admin only.
func (s *UserService) List(ctx context.Context, sub model.Subject) ([]model.UserSummary, error) {
	if err := policy.RequireAdmin(sub); err != nil {
		return nil, err
	}

	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, err
	}

	summaries := make([]model.UserSummary, 0, len(users))
	for i := range users {
		summaries = append(summaries, users[i].Summary())
	}
	return summaries, nil
}

func (s *UserService) Get(ctx context.Context, sub model.Subject, userID string) (*model.UserSummary, error) {
	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	summary := user.Summary()
	return &summary, nil
}

// Update applies account changes under the authorization policy: only the
// account holder or an admin may edit; password changes re-prove the current
// password unless an admin edits someone else; the admin flag is applied only
// when the acting subject is an admin and silently ignored otherwise.
func (s *UserService) Update(ctx context.Context, sub model.Subject, userID string, req UpdateUserRequest) (*model.UserSummary, error) {
	if !policy.CanManageUser(sub, userID) {
		return nil, common.ErrForbidden
	}

	target, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, err
	}

	if req.Password != nil && *req.Password != "" {
		if policy.NeedsCurrentPassword(sub, userID) {
			if req.CurrentPassword == nil ||
				!security.CheckPasswordHash(*req.CurrentPassword, target.PasswordHash) {
				return nil, common.ErrUnauthorized
			}
		}

		var messages []string
		if len(*req.Password) < minPasswordLength {
			messages = append(messages, msgPasswordTooShort)
		}
		if req.PasswordConfirmation != nil && *req.PasswordConfirmation != *req.Password {
			messages = append(messages, msgPasswordConfirmation)
		}
		if len(messages) > 0 {
			return nil, common.NewValidationError(messages...)
		}

		hashed, err := security.HashPassword(*req.Password)
		if err != nil {
			return nil, fmt.Errorf("failed to hash password: %w", err)
		}
		target.PasswordHash = hashed
	}

	if req.Email != nil && *req.Email != target.Email {
		if *req.Email == "" {
			return nil, common.NewValidationError(msgEmailBlank)
		}
		if !validEmail(*req.Email) {
			return nil, common.NewValidationError(msgEmailInvalid)
		}
		target.Email = *req.Email
	}

	if req.IsAdmin != nil && policy.CanSetAdminFlag(sub) {
		target.IsAdmin = *req.IsAdmin
	}

	if err := s.userRepo.Update(ctx, target); err != nil {
		if errors.Is(err, common.ErrConflict) {
			return nil, common.NewValidationError(msgEmailTaken)
		}
		return nil, err
	}

	s.cache.Invalidate(ctx, userID)
	s.log.WithFields(logrus.Fields{"user_id": userID, "actor_id": sub.ID}).Info("user updated")

	summary := target.Summary()
	return &summary, nil
}

// Delete removes the account and all of its items in one transaction.
func (s *UserService) Delete(ctx context.Context, sub model.Subject, userID string) error {
	if !policy.CanManageUser(sub, userID) {
		return common.ErrForbidden
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback() // Rollback if not committed

	if err := s.itemRepo.DeleteByOwner(ctx, tx, userID); err != nil {
		return err
	}
	if err := s.userRepo.Delete(ctx, tx, userID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	s.cache.Invalidate(ctx, userID)
	s.log.WithFields(logrus.Fields{"user_id": userID, "actor_id": sub.ID}).Info("user deleted")
	return nil
}
