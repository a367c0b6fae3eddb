package auth

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"banwatch/internal/credstore"
	"banwatch/internal/database"
	"banwatch/internal/domain"
	"banwatch/internal/repository"
)

func setupGateway(t *testing.T) (*Service, *credstore.Store, *repository.StaffRepository) {
	t.Helper()

	dir := t.TempDir()
	admins, err := credstore.New(filepath.Join(dir, "admins.json"), filepath.Join(dir, "logs.json"), credstore.Options{})
	require.NoError(t, err)

	db, err := database.Connect(":memory:")
	require.NoError(t, err)
	require.NoError(t, database.Migrate(db))
	staff := repository.NewStaffRepository(db)

	return NewService(admins, staff), admins, staff
}

func createStaff(t *testing.T, staff *repository.StaffRepository, username, password string, active bool) *domain.StaffAccount {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	s := &domain.StaffAccount{
		Username:     username,
		Email:        username + "@game.com",
		PasswordHash: string(hash),
		IsAdmin:      true,
		IsActive:     active,
	}
	require.NoError(t, staff.Create(context.Background(), s))
	return s
}

func TestAuthenticateFileAdmin(t *testing.T) {
	svc, admins, _ := setupGateway(t)
	require.True(t, admins.AddAdmin("zion", "zionbest", "test", "Web"))

	ident, err := svc.Authenticate(context.Background(), "zion", "zionbest")
	require.NoError(t, err)
	assert.Equal(t, "zion", ident.Username)
	assert.True(t, ident.IsAdmin)
	assert.Equal(t, BackingFile, ident.Backing)
	assert.Zero(t, ident.StaffID)
}

func TestAuthenticateStaffAccount(t *testing.T) {
	svc, _, staff := setupGateway(t)
	account := createStaff(t, staff, "mod", "modpass", true)

	ident, err := svc.Authenticate(context.Background(), "mod", "modpass")
	require.NoError(t, err)
	assert.Equal(t, BackingDB, ident.Backing)
	assert.Equal(t, account.ID, ident.StaffID)

	_, err = svc.Authenticate(context.Background(), "mod", "wrong")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateInactiveStaffRejected(t *testing.T) {
	svc, _, staff := setupGateway(t)
	createStaff(t, staff, "gone", "pw", false)

	_, err := svc.Authenticate(context.Background(), "gone", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestAuthenticateUnknownUser(t *testing.T) {
	svc, _, _ := setupGateway(t)

	_, err := svc.Authenticate(context.Background(), "ghost", "pw")
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

// A file admin and a staff account sharing a username are independent
// identities: the file source is tried first and wins when it matches.
func TestAuthenticateFileSourceWins(t *testing.T) {
	svc, admins, staff := setupGateway(t)
	require.True(t, admins.AddAdmin("alice", "filepass", "test", "Web"))
	createStaff(t, staff, "alice", "dbpass", true)

	ident, err := svc.Authenticate(context.Background(), "alice", "filepass")
	require.NoError(t, err)
	assert.Equal(t, BackingFile, ident.Backing)
	assert.Zero(t, ident.StaffID)

	// The staff password still works and resolves to the db identity.
	ident, err = svc.Authenticate(context.Background(), "alice", "dbpass")
	require.NoError(t, err)
	assert.Equal(t, BackingDB, ident.Backing)
	assert.NotZero(t, ident.StaffID)
}
