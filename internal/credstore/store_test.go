package credstore

import (
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T, opts Options) *Store {
	t.Helper()
	dir := t.TempDir()
	s, err := New(filepath.Join(dir, "admins.json"), filepath.Join(dir, "logs.json"), opts)
	require.NoError(t, err)
	return s
}

func TestBootstrapAdmin(t *testing.T) {
	s := newTestStore(t, Options{BootstrapUser: "root", BootstrapPassword: "rootpw"})

	assert.True(t, s.CheckAdmin("root", "rootpw"))
	assert.False(t, s.CheckAdmin("root", "wrong"))
	assert.Equal(t, 1, s.Count())
}

func TestFirstRunWithoutBootstrapIsEmpty(t *testing.T) {
	s := newTestStore(t, Options{})

	assert.Equal(t, 0, s.Count())
	assert.Empty(t, s.LoadAdmins())
}

func TestAddAdminDuplicateKeepsFirstPassword(t *testing.T) {
	s := newTestStore(t, Options{})

	require.True(t, s.AddAdmin("alice", "pw1", "root", "Web"))
	assert.False(t, s.AddAdmin("alice", "pw2", "root", "Web"))

	assert.True(t, s.CheckAdmin("alice", "pw1"))
	assert.False(t, s.CheckAdmin("alice", "pw2"))
}

func TestDeleteAdmin(t *testing.T) {
	s := newTestStore(t, Options{})
	require.True(t, s.AddAdmin("bob", "pw", "root", "Web"))
	before := len(s.Logs(0))

	// Deleting a missing admin fails and leaves the audit log untouched.
	assert.False(t, s.DeleteAdmin("nobody", "root", "Web"))
	assert.Len(t, s.Logs(0), before)

	// Deleting an existing admin appends exactly one DelAdmin entry.
	assert.True(t, s.DeleteAdmin("bob", "root", "Web"))
	logs := s.Logs(0)
	require.Len(t, logs, before+1)
	last := logs[len(logs)-1]
	assert.Equal(t, "DelAdmin (Web)", last.Action)
	assert.Equal(t, "bob", last.Target)
	assert.Equal(t, "root", last.Author)

	assert.False(t, s.CheckAdmin("bob", "pw"))
}

func TestUpdatePassword(t *testing.T) {
	s := newTestStore(t, Options{})
	require.True(t, s.AddAdmin("carol", "old", "root", "Web"))

	assert.True(t, s.UpdatePassword("carol", "new"))
	assert.True(t, s.CheckAdmin("carol", "new"))
	assert.False(t, s.CheckAdmin("carol", "old"))

	assert.False(t, s.UpdatePassword("nobody", "x"))
}

func TestListAdminsOmitsPasswords(t *testing.T) {
	s := newTestStore(t, Options{})
	require.True(t, s.AddAdmin("dave", "secret", "root", "Web"))

	admins := s.ListAdmins()
	require.Len(t, admins, 1)
	assert.Equal(t, "dave", admins[0].Username)
}

func TestAuditLogCapAndOrder(t *testing.T) {
	s := newTestStore(t, Options{})

	for i := 0; i < 120; i++ {
		s.AddLog("TestAction", fmt.Sprintf("target-%d", i), "tester")
	}

	logs := s.Logs(0)
	require.Len(t, logs, 100)
	// Oldest trimmed, insertion order preserved.
	assert.Equal(t, "target-20", logs[0].Target)
	assert.Equal(t, "target-119", logs[99].Target)

	recent := s.Logs(50)
	require.Len(t, recent, 50)
	assert.Equal(t, "target-70", recent[0].Target)
	assert.Equal(t, "target-119", recent[49].Target)
}

func TestLoadAdminsSoftFailsOnCorruptFile(t *testing.T) {
	dir := t.TempDir()
	adminFile := filepath.Join(dir, "admins.json")
	s, err := New(adminFile, filepath.Join(dir, "logs.json"), Options{})
	require.NoError(t, err)

	require.NoError(t, os.WriteFile(adminFile, []byte("{not json"), 0o600))
	assert.Empty(t, s.LoadAdmins())
	assert.False(t, s.CheckAdmin("anyone", "pw"))
}
