// Package adminsession implements the admin console gate on the client side.
//
// Credentials and the session flag live in the local store only. The server never
// verifies them: a valid session merely makes the client send the admin header.
package adminsession

import (
	"errors"
	"strings"
	"time"

	"github.com/alexedwards/argon2id"

	"github.com/authorsite/authorsite/internal/localstore"
)

const (
	// TTL is how long a login stays valid.
	TTL = 24 * time.Hour

	// MinPasswordLength is the shortest accepted password.
	MinPasswordLength = 6
)

var (
	// ErrMissingCredentials is returned when username or password is blank.
	ErrMissingCredentials = errors.New("username and password are required")
	// ErrPasswordTooShort is returned for passwords below MinPasswordLength.
	ErrPasswordTooShort = errors.New("password must be at least 6 characters")
	// ErrInvalidCredentials is returned when username or password do not match.
	ErrInvalidCredentials = errors.New("invalid username or password")
)

type (
	// Credentials are created on the first login.
	Credentials struct {
		Username     string    `json:"username"`
		PasswordHash string    `json:"passwordHash"`
		CreatedAt    time.Time `json:"createdAt"`
	}

	// Session is the stored login state.
	Session struct {
		IsLoggedIn bool      `json:"isLoggedIn"`
		LoginTime  time.Time `json:"loginTime"`
		Username   string    `json:"username"`
	}
)

// Valid reports whether s is logged in and younger than TTL at now.
func (s Session) Valid(now time.Time) bool {
	return s.IsLoggedIn && now.Sub(s.LoginTime) < TTL
}

// Manager reads and writes credentials and session in a local store.
type Manager struct {
	Store *localstore.Store
	Now   func() time.Time
}

// New creates a manager using the wall clock.
func New(store *localstore.Store) *Manager {
	return &Manager{Store: store, Now: time.Now}
}

// HasCredentials reports whether a first login already created credentials.
func (m *Manager) HasCredentials() (bool, error) {
	var c Credentials
	return m.Store.GetJSON(localstore.KeyCredentials, &c)
}

// Login starts a session. The first login stores the given credentials, later logins
// must match them.
func (m *Manager) Login(username, password string) (Session, error) {
	username = strings.TrimSpace(username)

	if username == "" || strings.TrimSpace(password) == "" {
		return Session{}, ErrMissingCredentials
	}

	var creds Credentials

	found, err := m.Store.GetJSON(localstore.KeyCredentials, &creds)
	if err != nil {
		return Session{}, err
	}

	if !found {
		if len(password) < MinPasswordLength {
			return Session{}, ErrPasswordTooShort
		}

		hash, err := argon2id.CreateHash(password, argon2id.DefaultParams)
		if err != nil {
			return Session{}, err
		}

		creds = Credentials{Username: username, PasswordHash: hash, CreatedAt: m.Now()}
		if err = m.Store.SetJSON(localstore.KeyCredentials, creds); err != nil {
			return Session{}, err
		}
	} else {
		match, err := argon2id.ComparePasswordAndHash(password, creds.PasswordHash)
		if err != nil {
			return Session{}, err
		}

		if !match || username != creds.Username {
			return Session{}, ErrInvalidCredentials
		}
	}

	s := Session{IsLoggedIn: true, LoginTime: m.Now(), Username: username}

	return s, m.Store.SetJSON(localstore.KeySession, s)
}

// Logout removes the session. Credentials are kept.
func (m *Manager) Logout() error {
	return m.Store.Delete(localstore.KeySession)
}

// Current returns the stored session and whether it is still valid. An expired
// session is removed.
func (m *Manager) Current() (Session, bool, error) {
	var s Session

	found, err := m.Store.GetJSON(localstore.KeySession, &s)
	if err != nil || !found {
		return Session{}, false, err
	}

	if !s.Valid(m.Now()) {
		return s, false, m.Logout()
	}

	return s, true, nil
}
