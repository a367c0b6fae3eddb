package domain

import "time"

// StaffAccount is a relational staff identity. Rows are created at
// bootstrap, by the seed tool, or lazily when a file-backed admin first
// needs to own a ban. They are never deleted, only deactivated.
type StaffAccount struct {
	ID           int64     `json:"id" gorm:"primaryKey"`
	Username     string    `json:"username" gorm:"size:80;uniqueIndex;not null"`
	Email        string    `json:"email" gorm:"size:120;uniqueIndex;not null"`
	PasswordHash string    `json:"-" gorm:"size:256;not null"`
	IsAdmin      bool      `json:"is_admin"`
	IsActive     bool      `json:"is_active"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (StaffAccount) TableName() string { return "staff" }
