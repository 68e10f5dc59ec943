// Package session keeps login state on the server. The client only holds a
// signed token naming a session id; the record itself lives in a Store.
package session

import (
	"context"
	"errors"
	"time"
)

type Kind string

const (
	KindUser   Kind = "user"
	KindSeller Kind = "seller"
)

// ErrNotFound is returned when a token is malformed, badly signed, expired
// or names a session that no longer exists.
var ErrNotFound = errors.New("session not found")

// Record is what the store keeps per session id.
type Record struct {
	Kind      Kind      `json:"kind"`
	Subject   string    `json:"subject"`
	CreatedAt time.Time `json:"createdAt"`
}

// Store persists session records with a time to live. Load returns
// (nil, nil) for an unknown or expired id; Delete of an unknown id is not an
// error.
type Store interface {
	Save(ctx context.Context, id string, rec Record, ttl time.Duration) error
	Load(ctx context.Context, id string) (*Record, error)
	Delete(ctx context.Context, id string) error
}
