package auth

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/hongminglow/civic-tracker/internal/models"
)

func newTestStore(t *testing.T) *CredentialStore {
	t.Helper()
	store, err := NewCredentialStore(CredentialConfig{
		AdminPassword:       "admin123",
		StaffPassword:       "staff123",
		DirectoratePassword: "Belediye22",
		Cost:                bcrypt.MinCost,
	}, models.Directorates())
	require.NoError(t, err)
	return store
}

func TestAuthenticateTableEntries(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		username string
		password string
		want     models.Principal
	}{
		{"admin", "admin123", models.Principal{Username: "admin", Role: models.RoleAdmin}},
		{"staff", "staff123", models.Principal{Username: "staff", Role: models.RoleStaff}},
	}
	for _, d := range models.Directorates() {
		cases = append(cases, struct {
			username string
			password string
			want     models.Principal
		}{d.Name, "Belediye22", models.Principal{Username: d.Name, Role: models.RoleDirectorate, DirectorateID: d.ID}})
	}

	for _, tc := range cases {
		t.Run(tc.username, func(t *testing.T) {
			got, err := store.Authenticate(tc.username, tc.password)
			require.NoError(t, err)
			assert.Equal(t, tc.want, got)
			assert.NoError(t, got.Validate())
		})
	}
}

func TestAuthenticateRejectsMismatches(t *testing.T) {
	store := newTestStore(t)

	cases := []struct {
		name     string
		username string
		password string
	}{
		{"unknown user", "root", "admin123"},
		{"wrong password", "admin", "staff123"},
		{"case sensitive username", "Admin", "admin123"},
		{"case sensitive password", "staff", "STAFF123"},
		{"padded username", " admin", "admin123"},
		{"directorate wrong password", "Fen İşleri Müdürlüğü", "belediye22"},
		{"cross account password", "staff", "Belediye22"},
		{"empty", "", ""},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := store.Authenticate(tc.username, tc.password)
			assert.ErrorIs(t, err, ErrInvalidCredentials)
		})
	}
}

func TestDirectorateLookups(t *testing.T) {
	store := newTestStore(t)

	d, ok := store.Directorate(5)
	require.True(t, ok)
	assert.Equal(t, "Fen İşleri Müdürlüğü", d.Name)

	byName, ok := store.DirectorateByName("Su ve Kanalizasyon Müdürlüğü")
	require.True(t, ok)
	assert.Equal(t, int64(16), byName.ID)

	_, ok = store.Directorate(99)
	assert.False(t, ok)
	assert.Len(t, store.Directorates(), 20)
}

func TestNewCredentialStoreRejectsDuplicates(t *testing.T) {
	_, err := NewCredentialStore(CredentialConfig{Cost: bcrypt.MinCost}, []models.Directorate{{ID: 1, Name: "admin"}})
	require.Error(t, err)

	_, err = NewCredentialStore(CredentialConfig{Cost: bcrypt.MinCost}, []models.Directorate{{ID: 0, Name: "Zabıta Müdürlüğü"}})
	require.Error(t, err)
}
