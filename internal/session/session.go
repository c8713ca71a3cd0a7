// Package session manages devotee sessions: a SQLite-persisted record per
// login with a sliding inactivity window, referenced by a signed cookie.
// The token is the devotee's mobile number; the configured admin number is
// a distinguished token with unrestricted list visibility.
package session

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	apperrors "github.com/dasHimanshuSekhar/account-ui/internal/errors"
)

// CookieName is the cookie carrying the signed session reference.
const CookieName = "portal_session"

// Session is one devotee login. LastSeen slides forward on every
// authenticated request; the session dies once the inactivity window
// elapses.
type Session struct {
	ID           string `gorm:"primaryKey"`
	MobileNumber string
	LastSeen     time.Time
	CreatedAt    time.Time
}

// Manager owns session persistence and cookie signing.
type Manager struct {
	db          *gorm.DB
	secret      []byte
	timeout     time.Duration
	adminMobile string
}

// Open opens (or creates) the session database at the given path.
func Open(path string) (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{})
	if err != nil {
		return nil, fmt.Errorf("failed to open session database: %w", err)
	}
	return db, nil
}

// NewManager creates a session manager, migrating the session table.
func NewManager(db *gorm.DB, secret string, timeout time.Duration, adminMobile string) (*Manager, error) {
	if err := db.AutoMigrate(&Session{}); err != nil {
		return nil, fmt.Errorf("failed to migrate session table: %w", err)
	}
	return &Manager{
		db:          db,
		secret:      []byte(secret),
		timeout:     timeout,
		adminMobile: adminMobile,
	}, nil
}

// Create starts a session for the given mobile number and returns the
// signed cookie value referencing it.
func (m *Manager) Create(mobileNumber string) (string, error) {
	s := Session{
		ID:           uuid.New().String(),
		MobileNumber: mobileNumber,
		LastSeen:     time.Now(),
		CreatedAt:    time.Now(),
	}
	if err := m.db.Create(&s).Error; err != nil {
		return "", fmt.Errorf("failed to create session: %w", err)
	}

	claims := jwt.RegisteredClaims{
		Subject:  s.ID,
		IssuedAt: jwt.NewNumericDate(s.CreatedAt),
		Issuer:   "account-portal",
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign session cookie: %w", err)
	}
	return signed, nil
}

// sessionID verifies the cookie signature and extracts the session ID.
func (m *Manager) sessionID(cookieValue string) (string, error) {
	claims := &jwt.RegisteredClaims{}
	token, err := jwt.ParseWithClaims(cookieValue, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", token.Header["alg"])
		}
		return m.secret, nil
	})
	if err != nil || !token.Valid {
		return "", apperrors.ErrUnauthorized
	}
	return claims.Subject, nil
}

// Resolve loads the session behind a cookie value and slides its
// inactivity window. An expired session is deleted and reported as
// ErrSessionExpired so the gate can tell the user why they were logged
// out.
func (m *Manager) Resolve(cookieValue string, now time.Time) (*Session, error) {
	id, err := m.sessionID(cookieValue)
	if err != nil {
		return nil, err
	}

	var s Session
	if err := m.db.First(&s, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperrors.ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to load session: %w", err)
	}

	if now.Sub(s.LastSeen) > m.timeout {
		m.db.Delete(&s)
		return nil, apperrors.ErrSessionExpired
	}

	s.LastSeen = now
	if err := m.db.Model(&s).Update("last_seen", now).Error; err != nil {
		return nil, fmt.Errorf("failed to touch session: %w", err)
	}
	return &s, nil
}

// Destroy removes the session behind a cookie value. Unverifiable cookies
// are ignored: logout always succeeds.
func (m *Manager) Destroy(cookieValue string) {
	id, err := m.sessionID(cookieValue)
	if err != nil {
		return
	}
	m.db.Delete(&Session{}, "id = ?", id)
}

// IsAdmin reports whether the mobile number is the distinguished admin
// token.
func (m *Manager) IsAdmin(mobileNumber string) bool {
	return mobileNumber == m.adminMobile
}

// Timeout returns the configured inactivity window.
func (m *Manager) Timeout() time.Duration {
	return m.timeout
}
