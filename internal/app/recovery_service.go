package app

import (
	"fmt"
	"strings"

	"miniblog/internal/pkg/passhash"
	"miniblog/internal/repository"
)

// RecoveryService mutates a stored credential after the caller's identity
// has been established.
type RecoveryService struct {
	userRepo *repository.UserRepository
	hasher   *passhash.Hasher
}

type ChangeByIdentityInput struct {
	Username    string
	PhoneNumber string
	BirthDate   string
	NewPassword string
}

func NewRecoveryService(userRepo *repository.UserRepository, hasher *passhash.Hasher) *RecoveryService {
	return &RecoveryService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

// ChangePasswordByIdentity requires username, phone number and birth date to
// match one user simultaneously. This path is stricter than Verify: all
// three fields are mandatory and email is not accepted.
func (s *RecoveryService) ChangePasswordByIdentity(input ChangeByIdentityInput) error {
	username := strings.TrimSpace(input.Username)
	phone := strings.TrimSpace(input.PhoneNumber)
	password := strings.TrimSpace(input.NewPassword)
	if username == "" || phone == "" || password == "" {
		return ErrInvalidInput
	}
	birthDate, err := parseBirthDate(strings.TrimSpace(input.BirthDate))
	if err != nil {
		return err
	}

	user, err := s.userRepo.GetByExactIdentity(username, phone, birthDate)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.storeNewPassword(user.ID, password)
}

// ChangePasswordByID skips identity matching; callers are expected to have
// verified the user upstream.
func (s *RecoveryService) ChangePasswordByID(userID uint, newPassword string) error {
	password := strings.TrimSpace(newPassword)
	if userID == 0 || password == "" {
		return ErrInvalidInput
	}

	user, err := s.userRepo.GetByID(userID)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrUserNotFound
	}

	return s.storeNewPassword(user.ID, password)
}

func (s *RecoveryService) storeNewPassword(userID uint, plaintext string) error {
	hash, err := s.hasher.Hash(plaintext)
	if err != nil {
		return fmt.Errorf("hash password failed: %w", err)
	}
	return s.userRepo.UpdatePasswordHash(userID, hash)
}
