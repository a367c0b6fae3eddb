package domain

import "time"

type BanType string

const (
	BanPermanent BanType = "permanent"
	BanTemporary BanType = "temporary"
)

func (t BanType) Valid() bool {
	return t == BanPermanent || t == BanTemporary
}

// Ban blocks a game player id from play. Removal deactivates the row
// rather than deleting it, so revoked bans stay visible in history.
type Ban struct {
	ID         int64         `json:"id" gorm:"primaryKey"`
	PlayerID   string        `json:"player_id" gorm:"size:100;index;not null"`
	PlayerName string        `json:"player_name,omitempty" gorm:"size:100"`
	Reason     string        `json:"reason" gorm:"type:text;not null"`
	BanType    BanType       `json:"ban_type" gorm:"size:50;default:permanent"`
	ExpiresAt  *time.Time    `json:"expires_at,omitempty"`
	IsActive   bool          `json:"is_active"`
	CreatedAt  time.Time     `json:"created_at"`
	UpdatedAt  time.Time     `json:"updated_at"`
	BannedByID int64         `json:"-" gorm:"not null"`
	BannedBy   *StaffAccount `json:"-" gorm:"foreignKey:BannedByID"`
}

func (Ban) TableName() string { return "game_bans" }

// IsExpired reports whether a temporary ban has run out. Permanent bans
// never expire, whatever expires_at holds.
func (b *Ban) IsExpired() bool {
	if b.BanType == BanTemporary && b.ExpiresAt != nil {
		return time.Now().After(*b.ExpiresAt)
	}
	return false
}

// TimeRemaining returns the time left on a temporary, unexpired ban, or
// nil when the ban is permanent, expired, or has no expiry set.
func (b *Ban) TimeRemaining() *time.Duration {
	if b.BanType == BanTemporary && b.ExpiresAt != nil && !b.IsExpired() {
		d := time.Until(*b.ExpiresAt)
		return &d
	}
	return nil
}

// BannedByUsername is a display helper for listings where the staff row
// was preloaded.
func (b *Ban) BannedByUsername() string {
	if b.BannedBy != nil {
		return b.BannedBy.Username
	}
	return ""
}
