package ban

import "strings"

// HoursValue tolerates both JSON numbers and strings for
// expires_in_hours; parsing happens in the service so an unparsable
// value maps to ErrInvalidExpiration instead of a bind failure.
type HoursValue string

func (h *HoursValue) UnmarshalJSON(data []byte) error {
	s := strings.TrimSpace(string(data))
	s = strings.Trim(s, `"`)
	if s == "null" {
		s = ""
	}
	*h = HoursValue(s)
	return nil
}

type CreateBanRequest struct {
	PlayerID       string     `json:"player_id" form:"player_id"`
	PlayerName     string     `json:"player_name" form:"player_name"`
	Reason         string     `json:"reason" form:"reason"`
	BanType        string     `json:"ban_type" form:"ban_type"`
	ExpiresInHours HoursValue `json:"expires_in_hours" form:"expires_in_hours"`
}

// BanView is the API shape of a ban, expiry computed at render time.
type BanView struct {
	ID            int64  `json:"id"`
	PlayerID      string `json:"player_id"`
	PlayerName    string `json:"player_name,omitempty"`
	Reason        string `json:"reason"`
	BanType       string `json:"ban_type"`
	IsExpired     bool   `json:"is_expired"`
	IsActive      bool   `json:"is_active"`
	CreatedAt     string `json:"created_at"`
	BannedBy      string `json:"banned_by"`
	ExpiresAt     string `json:"expires_at,omitempty"`
	TimeRemaining string `json:"time_remaining,omitempty"`
}
