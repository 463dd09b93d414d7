package models

import (
	"time"

	"github.com/angelmondragon/vibeoutfit-backend/pkg/enums"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// User is a storefront account.
type User struct {
	ID           uuid.UUID      `gorm:"column:id;type:uuid;primaryKey"`
	Email        string         `gorm:"column:email;type:varchar(254);not null;uniqueIndex"`
	PasswordHash string         `gorm:"column:password_hash;not null"`
	FirstName    string         `gorm:"column:first_name;type:varchar(150);not null;default:''"`
	LastName     string         `gorm:"column:last_name;type:varchar(150);not null;default:''"`
	IsActive     bool           `gorm:"column:is_active;not null"`
	SystemRole   enums.UserRole `gorm:"column:system_role;type:varchar(20);not null;default:'customer'"`
	LastLoginAt  *time.Time     `gorm:"column:last_login_at"`
	CreatedAt    time.Time      `gorm:"column:created_at;autoCreateTime"`
	UpdatedAt    time.Time      `gorm:"column:updated_at;autoUpdateTime"`
}

func (u *User) BeforeCreate(*gorm.DB) error {
	assignID(&u.ID)
	return nil
}
