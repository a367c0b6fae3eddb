package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"banwatch/internal/domain"
)

type StaffRepository struct {
	db *gorm.DB
}

func NewStaffRepository(db *gorm.DB) *StaffRepository {
	return &StaffRepository{db: db}
}

func (r *StaffRepository) Create(ctx context.Context, s *domain.StaffAccount) error {
	return r.db.WithContext(ctx).Create(s).Error
}

func (r *StaffRepository) GetByUsername(ctx context.Context, username string) (*domain.StaffAccount, error) {
	var s domain.StaffAccount
	tx := r.db.WithContext(ctx).
		Where("username = ?", strings.TrimSpace(username)).
		First(&s)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return &s, nil
}

func (r *StaffRepository) GetByID(ctx context.Context, id int64) (*domain.StaffAccount, error) {
	var s domain.StaffAccount
	if err := r.db.WithContext(ctx).First(&s, id).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StaffRepository) List(ctx context.Context) ([]domain.StaffAccount, error) {
	var staff []domain.StaffAccount
	tx := r.db.WithContext(ctx).Order("created_at DESC").Find(&staff)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return staff, nil
}

func (r *StaffRepository) Count(ctx context.Context) (int64, error) {
	var n int64
	tx := r.db.WithContext(ctx).Model(&domain.StaffAccount{}).Count(&n)
	return n, tx.Error
}

// EnsureByUsername returns the staff row for username, creating one when
// it does not exist. File-backed admins have no relational identity until
// they first need to own a ban; the synthesized row gets a placeholder
// password hash and can only be used through the file credentials.
func (r *StaffRepository) EnsureByUsername(ctx context.Context, username string) (*domain.StaffAccount, error) {
	username = strings.TrimSpace(username)

	existing, err := r.GetByUsername(ctx, username)
	if err == nil {
		return existing, nil
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte("temp_password"), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	s := &domain.StaffAccount{
		Username:     username,
		Email:        fmt.Sprintf("%s@admin.local", username),
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     true,
	}
	if err := r.db.WithContext(ctx).Create(s).Error; err != nil {
		// Lost a race with a concurrent upsert for the same username.
		if again, lookupErr := r.GetByUsername(ctx, username); lookupErr == nil {
			return again, nil
		}
		return nil, err
	}
	return s, nil
}
