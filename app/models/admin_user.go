package models

import "time"

const (
	RoleStaff     = "staff"
	RoleSuperuser = "superuser"
)

// AdminUser is an operator allowed into the admin console.
type AdminUser struct {
	ID        uint      `gorm:"primaryKey"                    json:"id"`
	Username  string    `gorm:"uniqueIndex;size:150;not null" json:"username"`
	Password  string    `gorm:"size:255;not null"             json:"-"` // bcrypt hash
	Role      string    `gorm:"size:20;not null;default:staff" json:"role"`
	CreatedAt time.Time `gorm:"autoCreateTime"                json:"created_at"`
}
