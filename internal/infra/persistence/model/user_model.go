package model

import (
	"time"

	"github.com/google/uuid"
)

// UserModel mirrors the 'users' table. Username and email carry unique
// indexes; concurrent federated sign-ins rely on the username constraint
// to serialize account creation.
type UserModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:gen_random_uuid()"`
	Username     string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Email        string    `gorm:"type:varchar(255);uniqueIndex;not null"`
	Nickname     string    `gorm:"type:varchar(100)"`
	PasswordHash string    `gorm:"type:varchar(255)"`
	Role         string    `gorm:"type:varchar(20);not null"`
	Provider     string    `gorm:"type:varchar(20);not null"`
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// TableName explicitly sets the table name for GORM.
func (UserModel) TableName() string {
	return "users"
}
