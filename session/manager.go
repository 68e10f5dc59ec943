package session

import (
	"context"
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"
)

type claims struct {
	SessionID string `json:"sid"`
	Kind      Kind   `json:"kind"`
	jwt.RegisteredClaims
}

// Session is a resolved, live session.
type Session struct {
	ID      string
	Kind    Kind
	Subject string
}

// Manager issues and checks session tokens. A token is only honoured while
// its record is still in the store, so revoking a session takes effect
// before the token expires.
type Manager struct {
	store  Store
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

func NewManager(store Store, secret string, ttl time.Duration) *Manager {
	return &Manager{store: store, secret: []byte(secret), ttl: ttl, now: time.Now}
}

func (m *Manager) TTL() time.Duration {
	return m.ttl
}

// Issue creates a session for subject and returns the signed token.
func (m *Manager) Issue(ctx context.Context, kind Kind, subject string) (string, error) {
	id := uuid.NewString()
	now := m.now()

	if err := m.store.Save(ctx, id, Record{Kind: kind, Subject: subject, CreatedAt: now}, m.ttl); err != nil {
		return "", err
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims{
		SessionID: id,
		Kind:      kind,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   subject,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(m.ttl)),
		},
	})
	return token.SignedString(m.secret)
}

// Resolve returns the live session named by token, or ErrNotFound.
func (m *Manager) Resolve(ctx context.Context, token string) (*Session, error) {
	c, err := m.parse(token, jwt.NewParser(jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name})))
	if err != nil {
		return nil, ErrNotFound
	}

	rec, err := m.store.Load(ctx, c.SessionID)
	if err != nil {
		return nil, err
	}
	if rec == nil || rec.Kind != c.Kind {
		return nil, ErrNotFound
	}
	return &Session{ID: c.SessionID, Kind: rec.Kind, Subject: rec.Subject}, nil
}

// Revoke deletes the session named by token. Expired tokens are still
// accepted so their record can be cleaned up; a missing, malformed or
// already revoked token is not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	if token == "" {
		return nil
	}
	parser := jwt.NewParser(
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Name}),
		jwt.WithoutClaimsValidation(),
	)
	c, err := m.parse(token, parser)
	if err != nil {
		return nil
	}
	return m.store.Delete(ctx, c.SessionID)
}

func (m *Manager) parse(token string, parser *jwt.Parser) (*claims, error) {
	var c claims
	parsed, err := parser.ParseWithClaims(token, &c, func(*jwt.Token) (interface{}, error) {
		return m.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || c.SessionID == "" {
		return nil, errors.New("invalid session token")
	}
	return &c, nil
}
