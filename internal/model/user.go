package model

import "time"

type User struct {
	ID           uint      `gorm:"primaryKey" json:"id"`
	Username     string    `gorm:"size:64;not null;uniqueIndex" json:"username"`
	Email        string    `gorm:"size:128;not null;uniqueIndex" json:"email"`
	PhoneNumber  string    `gorm:"size:32;not null;uniqueIndex" json:"phone_number"`
	BirthDate    time.Time `gorm:"type:date;not null;index" json:"birth_date"`
	PasswordHash string    `gorm:"size:255;not null" json:"-"`
	CreatedAt    time.Time `json:"created_at"`
}
