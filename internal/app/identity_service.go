package app

import (
	"strings"

	"miniblog/internal/repository"
)

// IdentityService resolves caller-supplied identifying claims to exactly one
// registered user. It is the precondition gate for credential recovery.
type IdentityService struct {
	userRepo *repository.UserRepository
}

// VerifyInput carries a partial claim set. BirthDate is always required; at
// least one of UsernameOrEmail and PhoneNumber must be present.
type VerifyInput struct {
	UsernameOrEmail string
	PhoneNumber     string
	BirthDate       string
}

func NewIdentityService(userRepo *repository.UserRepository) *IdentityService {
	return &IdentityService{userRepo: userRepo}
}

// Verify returns the id of the single user matching the claims. The birth
// date must match exactly; when both identifying fields are supplied, each
// must independently hold.
func (s *IdentityService) Verify(input VerifyInput) (uint, error) {
	identifier := strings.TrimSpace(input.UsernameOrEmail)
	phone := strings.TrimSpace(input.PhoneNumber)
	if identifier == "" && phone == "" {
		return 0, ErrMissingIdentifier
	}

	birthDate, err := parseBirthDate(strings.TrimSpace(input.BirthDate))
	if err != nil {
		return 0, err
	}

	user, err := s.userRepo.FindByClaims(identifier, phone, birthDate)
	if err != nil {
		return 0, err
	}
	if user == nil {
		return 0, ErrUserNotFound
	}
	return user.ID, nil
}

// FindUsername recovers a forgotten username from the phone number and birth
// date pair.
func (s *IdentityService) FindUsername(phoneNumber, birthDate string) (string, error) {
	phone := strings.TrimSpace(phoneNumber)
	if phone == "" {
		return "", ErrInvalidInput
	}
	parsed, err := parseBirthDate(strings.TrimSpace(birthDate))
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.GetByPhoneAndBirthDate(phone, parsed)
	if err != nil {
		return "", err
	}
	if user == nil {
		return "", ErrUserNotFound
	}
	return user.Username, nil
}
