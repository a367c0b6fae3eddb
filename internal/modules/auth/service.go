package auth

import (
	"context"
	"errors"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"

	"banwatch/internal/credstore"
	"banwatch/internal/repository"
)

const (
	BackingFile = "file"
	BackingDB   = "db"
)

// Identity is the merged login result. Backing records which credential
// source matched; StaffID is zero for file-backed identities until
// something needs a relational row for them.
type Identity struct {
	Username string
	IsAdmin  bool
	Backing  string
	StaffID  int64
}

// Service is the auth gateway merging the two credential sources into a
// single authenticate contract.
type Service struct {
	admins *credstore.Store
	staff  *repository.StaffRepository
}

func NewService(admins *credstore.Store, staff *repository.StaffRepository) *Service {
	return &Service{admins: admins, staff: staff}
}

// Authenticate tries the flat-file admin list first; a match there
// short-circuits the staff lookup, so a file admin and a staff account
// sharing a username are independent identities. Failures never reveal
// which source was consulted.
func (s *Service) Authenticate(ctx context.Context, username, password string) (*Identity, error) {
	if s.admins.CheckAdmin(username, password) {
		return &Identity{
			Username: username,
			IsAdmin:  true,
			Backing:  BackingFile,
		}, nil
	}

	account, err := s.staff.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if !account.IsActive {
		return nil, ErrInvalidCredentials
	}
	if bcrypt.CompareHashAndPassword([]byte(account.PasswordHash), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	return &Identity{
		Username: account.Username,
		IsAdmin:  account.IsAdmin,
		Backing:  BackingDB,
		StaffID:  account.ID,
	}, nil
}
