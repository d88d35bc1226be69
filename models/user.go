package models

import (
	"time"
)

// Role values. Stored as plain strings on the user row.
const (
	RoleUploader = "uploader"
	RoleApprover = "approver"
	RoleCEO      = "ceo"
	RoleAdmin    = "admin"
)

// ValidRole reports whether role is one of the known role values.
func ValidRole(role string) bool {
	switch role {
	case RoleUploader, RoleApprover, RoleCEO, RoleAdmin:
		return true
	}
	return false
}

type User struct {
	UserID       int        `gorm:"primaryKey;column:user_id" json:"user_id"`
	Email        string     `gorm:"column:email;unique" json:"email"`
	Password     string     `gorm:"column:password" json:"-"`
	Name         string     `gorm:"column:name" json:"name"`
	Role         string     `gorm:"column:role" json:"role"`
	Department   *string    `gorm:"column:department" json:"department,omitempty"`
	Position     *string    `gorm:"column:position" json:"position,omitempty"`
	SignatureURL *string    `gorm:"column:signature_url" json:"signature_url,omitempty"`
	StampURL     *string    `gorm:"column:stamp_url" json:"stamp_url,omitempty"`
	IsActive     bool       `gorm:"column:is_active;default:true" json:"is_active"`
	CreateAt     *time.Time `gorm:"column:create_at;autoCreateTime" json:"create_at"`
	UpdateAt     *time.Time `gorm:"column:update_at;autoUpdateTime" json:"update_at"`
}

func (User) TableName() string {
	return "users"
}
