package app

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"miniblog/internal/model"
	"miniblog/internal/pkg/passhash"
	"miniblog/internal/repository"
)

type AuthService struct {
	userRepo *repository.UserRepository
	hasher   *passhash.Hasher
}

type RegisterInput struct {
	Username    string
	Email       string
	PhoneNumber string
	BirthDate   string
	Password    string
}

type LoginInput struct {
	Identifier string
	Password   string
}

func NewAuthService(userRepo *repository.UserRepository, hasher *passhash.Hasher) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		hasher:   hasher,
	}
}

func (s *AuthService) Register(input RegisterInput) (*model.User, error) {
	username := strings.TrimSpace(input.Username)
	email := strings.TrimSpace(strings.ToLower(input.Email))
	phone := strings.TrimSpace(input.PhoneNumber)
	password := strings.TrimSpace(input.Password)

	if username == "" || email == "" || phone == "" || password == "" {
		return nil, ErrInvalidInput
	}
	birthDate, err := parseBirthDate(strings.TrimSpace(input.BirthDate))
	if err != nil {
		return nil, err
	}

	conflicting, err := s.userRepo.HasConflicting(username, email, phone, birthDate)
	if err != nil {
		return nil, err
	}
	if conflicting {
		return nil, ErrUserExists
	}

	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("hash password failed: %w", err)
	}

	user := &model.User{
		Username:     username,
		Email:        email,
		PhoneNumber:  phone,
		BirthDate:    birthDate,
		PasswordHash: hash,
	}
	if err := s.userRepo.Create(user); err != nil {
		// The existence check above races with concurrent registrations; the
		// unique constraint is the final arbiter.
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return nil, ErrUserExists
		}
		return nil, err
	}
	return user, nil
}

func (s *AuthService) Login(input LoginInput) error {
	identifier := strings.TrimSpace(input.Identifier)
	password := strings.TrimSpace(input.Password)
	if identifier == "" || password == "" {
		return ErrInvalidInput
	}

	user, err := s.userRepo.GetByUsernameOrEmail(identifier)
	if err != nil {
		return err
	}
	if user == nil {
		return ErrInvalidCredential
	}
	if !s.hasher.Verify(password, user.PasswordHash) {
		return ErrInvalidCredential
	}
	return nil
}
