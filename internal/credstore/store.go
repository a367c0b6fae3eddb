// Package credstore manages the flat-file admin list and its capped audit
// log. The file formats are plaintext JSON and every mutation is a full
// rewrite, so all writers serialize behind the store mutex.
package credstore

import (
	"encoding/json"
	"fmt"
	"log"
	"os"
	"sync"
	"time"
)

const maxAuditEntries = 100

type AdminRecord struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// AdminSummary is the password-free view handed to listings.
type AdminSummary struct {
	Username string `json:"username"`
}

type AuditEntry struct {
	Timestamp time.Time `json:"timestamp"`
	Action    string    `json:"action"`
	Target    string    `json:"target"`
	Author    string    `json:"author"`
}

type Store struct {
	mu        sync.Mutex
	adminFile string
	auditFile string
}

// Options controls first-run bootstrap. When the admin file does not exist
// and BootstrapUser is set, the store seeds a single admin record with it.
type Options struct {
	BootstrapUser     string
	BootstrapPassword string
}

func New(adminFile, auditFile string, opts Options) (*Store, error) {
	s := &Store{adminFile: adminFile, auditFile: auditFile}

	if _, err := os.Stat(adminFile); os.IsNotExist(err) {
		seed := []AdminRecord{}
		if opts.BootstrapUser != "" {
			seed = append(seed, AdminRecord{Username: opts.BootstrapUser, Password: opts.BootstrapPassword})
			log.Printf("WARNING: credstore: seeding bootstrap admin %q into %s; rotate this credential", opts.BootstrapUser, adminFile)
		}
		if !s.writeAdmins(seed) {
			return nil, fmt.Errorf("credstore: cannot initialize %s", adminFile)
		}
	}

	log.Printf("WARNING: credstore: %s stores admin passwords in plaintext", adminFile)
	return s, nil
}

// LoadAdmins returns the current admin records. Read or parse failures are
// logged and yield an empty list rather than an error.
func (s *Store) LoadAdmins() []AdminRecord {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.loadAdmins()
}

func (s *Store) loadAdmins() []AdminRecord {
	data, err := os.ReadFile(s.adminFile)
	if err != nil {
		log.Printf("credstore: load admins: %v", err)
		return []AdminRecord{}
	}
	var admins []AdminRecord
	if err := json.Unmarshal(data, &admins); err != nil {
		log.Printf("credstore: parse admins: %v", err)
		return []AdminRecord{}
	}
	return admins
}

// SaveAdmins overwrites the admin file with the given records.
func (s *Store) SaveAdmins(admins []AdminRecord) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.writeAdmins(admins)
}

func (s *Store) writeAdmins(admins []AdminRecord) bool {
	data, err := json.MarshalIndent(admins, "", "  ")
	if err != nil {
		log.Printf("credstore: encode admins: %v", err)
		return false
	}
	if err := os.WriteFile(s.adminFile, data, 0o600); err != nil {
		log.Printf("credstore: save admins: %v", err)
		return false
	}
	return true
}

// CheckAdmin reports whether an exact username+password pair exists.
func (s *Store) CheckAdmin(username, password string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, a := range s.loadAdmins() {
		if a.Username == username && a.Password == password {
			return true
		}
	}
	return false
}

// AddAdmin appends a new record and audit-logs the action. source labels
// the surface the mutation came from ("Web", "Telegram").
func (s *Store) AddAdmin(username, password, author, source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := s.loadAdmins()
	for _, a := range admins {
		if a.Username == username {
			return false
		}
	}
	admins = append(admins, AdminRecord{Username: username, Password: password})
	if !s.writeAdmins(admins) {
		return false
	}
	s.appendLog(fmt.Sprintf("AddAdmin (%s)", source), username, author)
	return true
}

// DeleteAdmin removes a record and audit-logs the action.
func (s *Store) DeleteAdmin(username, author, source string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := s.loadAdmins()
	kept := admins[:0]
	for _, a := range admins {
		if a.Username != username {
			kept = append(kept, a)
		}
	}
	if len(kept) == len(admins) {
		return false
	}
	if !s.writeAdmins(kept) {
		return false
	}
	s.appendLog(fmt.Sprintf("DelAdmin (%s)", source), username, author)
	return true
}

// UpdatePassword replaces the stored password for username.
func (s *Store) UpdatePassword(username, newPassword string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := s.loadAdmins()
	for i := range admins {
		if admins[i].Username == username {
			admins[i].Password = newPassword
			return s.writeAdmins(admins)
		}
	}
	return false
}

// ListAdmins returns usernames only; passwords never leave the store.
func (s *Store) ListAdmins() []AdminSummary {
	s.mu.Lock()
	defer s.mu.Unlock()

	admins := s.loadAdmins()
	out := make([]AdminSummary, 0, len(admins))
	for _, a := range admins {
		out = append(out, AdminSummary{Username: a.Username})
	}
	return out
}

func (s *Store) Count() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.loadAdmins())
}

// AddLog appends one audit entry with the current timestamp. Persistence
// failures are logged, never raised.
func (s *Store) AddLog(action, target, author string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.appendLog(action, target, author)
}

func (s *Store) appendLog(action, target, author string) {
	logs := s.loadLogs()
	logs = append(logs, AuditEntry{
		Timestamp: time.Now(),
		Action:    action,
		Target:    target,
		Author:    author,
	})
	if len(logs) > maxAuditEntries {
		logs = logs[len(logs)-maxAuditEntries:]
	}

	data, err := json.MarshalIndent(logs, "", "  ")
	if err != nil {
		log.Printf("credstore: encode audit log: %v", err)
		return
	}
	if err := os.WriteFile(s.auditFile, data, 0o600); err != nil {
		log.Printf("credstore: save audit log: %v", err)
	}
}

// Logs returns the most recent limit entries in chronological order.
func (s *Store) Logs(limit int) []AuditEntry {
	s.mu.Lock()
	defer s.mu.Unlock()

	logs := s.loadLogs()
	if limit > 0 && len(logs) > limit {
		logs = logs[len(logs)-limit:]
	}
	return logs
}

func (s *Store) loadLogs() []AuditEntry {
	data, err := os.ReadFile(s.auditFile)
	if err != nil {
		if !os.IsNotExist(err) {
			log.Printf("credstore: load audit log: %v", err)
		}
		return []AuditEntry{}
	}
	var logs []AuditEntry
	if err := json.Unmarshal(data, &logs); err != nil {
		log.Printf("credstore: parse audit log: %v", err)
		return []AuditEntry{}
	}
	return logs
}
