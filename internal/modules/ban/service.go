package ban

import (
	"context"
	"errors"
	"strconv"
	"strings"
	"time"

	"gorm.io/gorm"

	"banwatch/internal/domain"
	"banwatch/internal/repository"
)

const (
	pageSize      = 5
	searchLimit   = 5
	defaultReason = "No reason provided"
	timeLayout    = time.RFC3339
)

// Actor is the resolved identity performing a ban mutation. StaffID is
// zero for file-backed admins; the service upserts a staff row for them
// so the banned_by foreign key always resolves.
type Actor struct {
	Username string
	StaffID  int64
}

type CreateBanInput struct {
	PlayerID       string
	PlayerName     string
	Reason         string
	BanType        string
	ExpiresInHours string
}

type Stats struct {
	Total         int    `json:"total"`
	Active        int    `json:"active"`
	Permanent     int    `json:"permanent"`
	Temporary     int    `json:"temporary"`
	TopStaff      string `json:"top_staff,omitempty"`
	TopStaffCount int    `json:"top_staff_count,omitempty"`
}

type Page struct {
	Bans       []domain.Ban
	Number     int
	TotalPages int
	Total      int
}

type Service struct {
	bans  *repository.BanRepository
	staff *repository.StaffRepository
}

func NewService(bans *repository.BanRepository, staff *repository.StaffRepository) *Service {
	return &Service{bans: bans, staff: staff}
}

// List returns all is_active bans, newest first. Expired temporary bans
// are included (still active until revoked) and marked via the view.
func (s *Service) List(ctx context.Context) ([]domain.Ban, error) {
	return s.bans.ListActive(ctx)
}

// ListUnexpired filters List down to bans that still bite.
func (s *Service) ListUnexpired(ctx context.Context) ([]domain.Ban, error) {
	all, err := s.bans.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]domain.Ban, 0, len(all))
	for i := range all {
		if !all[i].IsExpired() {
			out = append(out, all[i])
		}
	}
	return out, nil
}

// Create enforces the single-active-ban invariant and the expiration
// rules, then persists the ban under the actor's staff identity.
func (s *Service) Create(ctx context.Context, in CreateBanInput, actor Actor) (*domain.Ban, error) {
	playerID := strings.TrimSpace(in.PlayerID)
	if playerID == "" {
		return nil, ErrValidation
	}

	banType := domain.BanType(in.BanType)
	if in.BanType == "" {
		banType = domain.BanPermanent
	}
	if !banType.Valid() {
		return nil, ErrValidation
	}

	existing, err := s.bans.FindActiveByPlayer(ctx, playerID)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}
	if existing != nil && !existing.IsExpired() {
		return nil, ErrDuplicateBan
	}

	// Permanent bans ignore any supplied hours.
	var expiresAt *time.Time
	if banType == domain.BanTemporary && strings.TrimSpace(in.ExpiresInHours) != "" {
		hours, err := strconv.Atoi(strings.TrimSpace(in.ExpiresInHours))
		if err != nil {
			return nil, ErrInvalidExpiration
		}
		t := time.Now().Add(time.Duration(hours) * time.Hour)
		expiresAt = &t
	}

	staffID := actor.StaffID
	if staffID == 0 {
		account, err := s.staff.EnsureByUsername(ctx, actor.Username)
		if err != nil {
			return nil, err
		}
		staffID = account.ID
	}

	reason := strings.TrimSpace(in.Reason)
	if reason == "" {
		reason = defaultReason
	}

	b := &domain.Ban{
		PlayerID:   playerID,
		PlayerName: strings.TrimSpace(in.PlayerName),
		Reason:     reason,
		BanType:    banType,
		ExpiresAt:  expiresAt,
		IsActive:   true,
		BannedByID: staffID,
	}
	if err := s.bans.Create(ctx, b); err != nil {
		return nil, err
	}
	return s.bans.GetByID(ctx, b.ID)
}

func (s *Service) Revoke(ctx context.Context, id int64) (*domain.Ban, error) {
	b, err := s.bans.Revoke(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, err
	}
	return b, nil
}

// Check returns the enforceable ban for a player, or nil when the player
// is clear (no active ban, or only an expired one).
func (s *Service) Check(ctx context.Context, playerID string) (*domain.Ban, error) {
	b, err := s.bans.FindActiveByPlayer(ctx, playerID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if b.IsExpired() {
		return nil, nil
	}
	return b, nil
}

func (s *Service) Search(ctx context.Context, term string) ([]domain.Ban, error) {
	return s.bans.Search(ctx, term, searchLimit)
}

// PageOf paginates the unexpired listing for the bot, clamping page to
// [1, totalPages].
func (s *Service) PageOf(ctx context.Context, page int) (*Page, error) {
	bans, err := s.ListUnexpired(ctx)
	if err != nil {
		return nil, err
	}
	if len(bans) == 0 {
		return &Page{Bans: nil, Number: 1, TotalPages: 1, Total: 0}, nil
	}

	totalPages := (len(bans) + pageSize - 1) / pageSize
	page = clamp(page, 1, totalPages)
	start := (page - 1) * pageSize
	end := min(start+pageSize, len(bans))

	return &Page{
		Bans:       bans[start:end],
		Number:     page,
		TotalPages: totalPages,
		Total:      len(bans),
	}, nil
}

func (s *Service) Stats(ctx context.Context) (*Stats, error) {
	all, err := s.bans.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	st := &Stats{Total: len(all)}
	byStaff := map[string]int{}
	for i := range all {
		b := &all[i]
		if b.IsExpired() {
			continue
		}
		st.Active++
		if b.BanType == domain.BanPermanent {
			st.Permanent++
		} else {
			st.Temporary++
		}
		byStaff[b.BannedByUsername()]++
	}
	for name, n := range byStaff {
		if n > st.TopStaffCount {
			st.TopStaff, st.TopStaffCount = name, n
		}
	}
	return st, nil
}

// Summary backs the dashboard landing view: total is_active rows and how
// many of those still bite.
func (s *Service) Summary(ctx context.Context) (total, active int, err error) {
	all, err := s.bans.ListActive(ctx)
	if err != nil {
		return 0, 0, err
	}
	for i := range all {
		if !all[i].IsExpired() {
			active++
		}
	}
	return len(all), active, nil
}

// View renders a ban for API responses, computing expiry lazily.
func View(b *domain.Ban) BanView {
	v := BanView{
		ID:         b.ID,
		PlayerID:   b.PlayerID,
		PlayerName: b.PlayerName,
		Reason:     b.Reason,
		BanType:    string(b.BanType),
		IsExpired:  b.IsExpired(),
		IsActive:   b.IsActive,
		CreatedAt:  b.CreatedAt.Format(timeLayout),
		BannedBy:   b.BannedByUsername(),
	}
	if b.BanType == domain.BanTemporary && b.ExpiresAt != nil {
		v.ExpiresAt = b.ExpiresAt.Format(timeLayout)
		if remaining := b.TimeRemaining(); remaining != nil {
			v.TimeRemaining = remaining.Round(time.Second).String()
		}
	}
	return v
}

func Views(bans []domain.Ban) []BanView {
	out := make([]BanView, 0, len(bans))
	for i := range bans {
		out = append(out, View(&bans[i]))
	}
	return out
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
