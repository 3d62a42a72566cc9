package repository

import (
	"errors"
	"fmt"
	"time"

	"gorm.io/gorm"

	"miniblog/internal/model"
)

type UserRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) *UserRepository {
	return &UserRepository{db: db}
}

// Create inserts the user. A uniqueness violation on username, email or
// phone number surfaces as gorm.ErrDuplicatedKey in the wrapped error.
func (r *UserRepository) Create(user *model.User) error {
	if err := r.db.Create(user).Error; err != nil {
		return fmt.Errorf("create user failed: %w", err)
	}
	return nil
}

func (r *UserRepository) GetByID(id uint) (*model.User, error) {
	var user model.User
	if err := r.db.First(&user, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by id failed: %w", err)
	}
	return &user, nil
}

// GetByUsernameOrEmail resolves a login identifier that may be either field.
func (r *UserRepository) GetByUsernameOrEmail(identifier string) (*model.User, error) {
	var user model.User
	if err := r.db.Where("username = ? OR email = ?", identifier, identifier).First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by identifier failed: %w", err)
	}
	return &user, nil
}

func (r *UserRepository) GetByPhoneAndBirthDate(phoneNumber string, birthDate time.Time) (*model.User, error) {
	var user model.User
	err := r.db.Where("phone_number = ? AND birth_date = ?", phoneNumber, birthDate).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by phone and birth date failed: %w", err)
	}
	return &user, nil
}

// FindByClaims matches a user against a partial claim set. birthDate always
// applies; the identifier (matched against username or email) and the phone
// number each apply only when non-empty. Callers guarantee at least one of
// the two is present.
func (r *UserRepository) FindByClaims(usernameOrEmail, phoneNumber string, birthDate time.Time) (*model.User, error) {
	query := r.db.Where("birth_date = ?", birthDate)
	if usernameOrEmail != "" {
		query = query.Where("(username = ? OR email = ?)", usernameOrEmail, usernameOrEmail)
	}
	if phoneNumber != "" {
		query = query.Where("phone_number = ?", phoneNumber)
	}

	var user model.User
	if err := query.Order("id").First(&user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by claims failed: %w", err)
	}
	return &user, nil
}

// GetByExactIdentity requires username, phone number and birth date to match
// simultaneously. Email is deliberately not accepted on this path.
func (r *UserRepository) GetByExactIdentity(username, phoneNumber string, birthDate time.Time) (*model.User, error) {
	var user model.User
	err := r.db.Where(
		"username = ? AND phone_number = ? AND birth_date = ?",
		username, phoneNumber, birthDate,
	).First(&user).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, fmt.Errorf("query user by exact identity failed: %w", err)
	}
	return &user, nil
}

// HasConflicting reports whether any existing user already holds one of the
// registration fields. The birth date clause is part of the registration
// contract here even though the column itself is not unique.
func (r *UserRepository) HasConflicting(username, email, phoneNumber string, birthDate time.Time) (bool, error) {
	var count int64
	err := r.db.Model(&model.User{}).
		Where("username = ? OR email = ? OR phone_number = ? OR birth_date = ?",
			username, email, phoneNumber, birthDate).
		Count(&count).Error
	if err != nil {
		return false, fmt.Errorf("check conflicting user failed: %w", err)
	}
	return count > 0, nil
}

func (r *UserRepository) UpdatePasswordHash(id uint, passwordHash string) error {
	err := r.db.Model(&model.User{}).Where("id = ?", id).
		Update("password_hash", passwordHash).Error
	if err != nil {
		return fmt.Errorf("update password hash failed: %w", err)
	}
	return nil
}
