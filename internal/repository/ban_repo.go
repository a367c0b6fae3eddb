package repository

import (
	"context"
	"strings"
	"time"

	"gorm.io/gorm"

	"banwatch/internal/domain"
)

type BanRepository struct {
	db *gorm.DB
}

func NewBanRepository(db *gorm.DB) *BanRepository {
	return &BanRepository{db: db}
}

// ListActive returns all is_active bans, newest first. Expiry is not
// filtered here: callers decide lazily via Ban.IsExpired.
func (r *BanRepository) ListActive(ctx context.Context) ([]domain.Ban, error) {
	var bans []domain.Ban
	tx := r.db.WithContext(ctx).
		Preload("BannedBy").
		Where("is_active = ?", true).
		Order("created_at DESC").
		Find(&bans)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bans, nil
}

func (r *BanRepository) FindActiveByPlayer(ctx context.Context, playerID string) (*domain.Ban, error) {
	var ban domain.Ban
	tx := r.db.WithContext(ctx).
		Preload("BannedBy").
		Where("player_id = ? AND is_active = ?", playerID, true).
		First(&ban)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &ban, nil
}

func (r *BanRepository) GetByID(ctx context.Context, id int64) (*domain.Ban, error) {
	var ban domain.Ban
	tx := r.db.WithContext(ctx).Preload("BannedBy").First(&ban, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &ban, nil
}

func (r *BanRepository) Create(ctx context.Context, ban *domain.Ban) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return tx.Create(ban).Error
	})
}

// Revoke deactivates a ban in place. Returns gorm.ErrRecordNotFound when
// no row has that id; the row itself is never deleted.
func (r *BanRepository) Revoke(ctx context.Context, id int64) (*domain.Ban, error) {
	var ban domain.Ban
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Preload("BannedBy").First(&ban, id).Error; err != nil {
			return err
		}
		now := time.Now()
		if err := tx.Model(&domain.Ban{}).Where("id = ?", id).Updates(map[string]any{
			"is_active":  false,
			"updated_at": now,
		}).Error; err != nil {
			return err
		}
		ban.IsActive = false
		ban.UpdatedAt = now
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &ban, nil
}

// Search matches term as a case-insensitive substring of player_id or
// player_name over active bans, newest first.
func (r *BanRepository) Search(ctx context.Context, term string, limit int) ([]domain.Ban, error) {
	pattern := "%" + strings.ToLower(strings.TrimSpace(term)) + "%"

	var bans []domain.Ban
	tx := r.db.WithContext(ctx).
		Preload("BannedBy").
		Where("is_active = ?", true).
		Where("LOWER(player_id) LIKE ? OR LOWER(player_name) LIKE ?", pattern, pattern).
		Order("created_at DESC").
		Limit(limit).
		Find(&bans)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return bans, nil
}
