package model

import (
	"time"
)

// UserModel mirrors the 'users' table. Email and username carry
// case-insensitive unique indexes (created as LOWER() expression indexes
// in the migration), matching the uniqueness rule the use cases enforce.
type UserModel struct {
	ID           string `gorm:"type:uuid;primaryKey"`
	Email        string `gorm:"type:varchar(255);uniqueIndex;not null"`
	Username     string `gorm:"type:varchar(100);uniqueIndex;not null"`
	PasswordHash string `gorm:"type:varchar(255);not null"`
	CreatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
