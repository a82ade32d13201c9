package auth

import (
	"errors"
	"fmt"

	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/civic-tracker/internal/models"
)

// ErrInvalidCredentials is returned when no table entry matches the pair.
var ErrInvalidCredentials = errors.New("invalid username or password")

// CredentialConfig carries the passwords of the static credential table.
// Every directorate account shares DirectoratePassword.
type CredentialConfig struct {
	AdminPassword       string
	StaffPassword       string
	DirectoratePassword string
	Cost                int
}

type credential struct {
	principal models.Principal
	hash      []byte
}

// CredentialStore resolves username/password pairs against the static table:
// the admin and staff accounts plus one account per directorate.
type CredentialStore struct {
	byUsername   map[string]credential
	directorates map[int64]models.Directorate
	byName       map[string]models.Directorate
	catalog      []models.Directorate
}

// NewCredentialStore hashes the table once and indexes the directorate catalog.
func NewCredentialStore(cfg CredentialConfig, directorates []models.Directorate) (*CredentialStore, error) {
	cost := cfg.Cost
	if cost == 0 {
		cost = bcrypt.DefaultCost
	}
	s := &CredentialStore{
		byUsername:   make(map[string]credential, len(directorates)+2),
		directorates: make(map[int64]models.Directorate, len(directorates)),
		byName:       make(map[string]models.Directorate, len(directorates)),
		catalog:      append([]models.Directorate(nil), directorates...),
	}

	add := func(p models.Principal, password string) error {
		if _, dup := s.byUsername[p.Username]; dup {
			return fmt.Errorf("duplicate username %q in credential table", p.Username)
		}
		hash, err := bcrypt.GenerateFromPassword([]byte(password), cost)
		if err != nil {
			return fmt.Errorf("hash password for %q: %w", p.Username, err)
		}
		s.byUsername[p.Username] = credential{principal: p, hash: hash}
		return nil
	}

	if err := add(models.Principal{Username: "admin", Role: models.RoleAdmin}, cfg.AdminPassword); err != nil {
		return nil, err
	}
	if err := add(models.Principal{Username: "staff", Role: models.RoleStaff}, cfg.StaffPassword); err != nil {
		return nil, err
	}
	// bcrypt of one shared password, reused for every directorate entry.
	dirHash, err := bcrypt.GenerateFromPassword([]byte(cfg.DirectoratePassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash directorate password: %w", err)
	}
	for _, d := range directorates {
		if d.ID <= 0 {
			return nil, fmt.Errorf("directorate %q has non-positive id %d", d.Name, d.ID)
		}
		if _, dup := s.byUsername[d.Name]; dup {
			return nil, fmt.Errorf("duplicate username %q in credential table", d.Name)
		}
		s.byUsername[d.Name] = credential{
			principal: models.Principal{Username: d.Name, Role: models.RoleDirectorate, DirectorateID: d.ID},
			hash:      dirHash,
		}
		s.directorates[d.ID] = d
		s.byName[d.Name] = d
	}
	return s, nil
}

// Authenticate returns the principal whose username matches exactly and whose
// password verifies.
func (s *CredentialStore) Authenticate(username, password string) (models.Principal, error) {
	entry, ok := s.byUsername[username]
	if !ok {
		return models.Principal{}, ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword(entry.hash, []byte(password)); err != nil {
		return models.Principal{}, ErrInvalidCredentials
	}
	return entry.principal, nil
}

// Directorate looks up a directorate by id.
func (s *CredentialStore) Directorate(id int64) (models.Directorate, bool) {
	d, ok := s.directorates[id]
	return d, ok
}

// DirectorateByName looks up a directorate by its exact name.
func (s *CredentialStore) DirectorateByName(name string) (models.Directorate, bool) {
	d, ok := s.byName[name]
	return d, ok
}

// Directorates returns a copy of the catalog in table order.
func (s *CredentialStore) Directorates() []models.Directorate {
	return append([]models.Directorate(nil), s.catalog...)
}
