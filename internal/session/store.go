// Package session holds the admin authentication state shared by every
// outbound backend call: the bearer token, the authenticated flag and the
// last-known admin email, persisted together in a KV backend and cleared
// together on logout or rejection.
package session

import (
	"context"
	"log"
	"os"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

// Storage keys. These match the keys the dashboard has always used, so a
// file backend written by an older deployment keeps working.
const (
	KeyToken = "admin_token"
	KeyAuth  = "admin_auth"
	KeyEmail = "admin_email"
)

func debugf(format string, v ...interface{}) {
	if os.Getenv("LOG_LEVEL") == "debug" {
		log.Printf(format, v...)
	}
}

// Extra carries auxiliary session flags written alongside the token.
type Extra struct {
	Email string
}

// Store owns the session lifecycle: written on login, read by every
// outbound call, cleared on logout, 401 or expiry detection.
type Store struct {
	kv KV
}

// NewStore binds a Store to a KV backend.
func NewStore(kv KV) *Store {
	return &Store{kv: kv}
}

// SetSession writes the token and auxiliary flags.
func (s *Store) SetSession(ctx context.Context, token string, extra *Extra) error {
	if err := s.kv.Set(ctx, KeyToken, token); err != nil {
		return err
	}
	if err := s.kv.Set(ctx, KeyAuth, "true"); err != nil {
		return err
	}
	if extra != nil && extra.Email != "" {
		return s.kv.Set(ctx, KeyEmail, extra.Email)
	}
	return nil
}

// ClearSession removes the token and all auxiliary flags. Idempotent.
func (s *Store) ClearSession(ctx context.Context) error {
	return s.kv.Delete(ctx, KeyToken, KeyAuth, KeyEmail)
}

// Token returns the stored token, if any. Backend read failures count as
// no session so callers fail closed into unauthenticated behavior.
func (s *Store) Token(ctx context.Context) (string, bool) {
	v, err := s.kv.Get(ctx, KeyToken)
	if err != nil {
		if err != ErrNotFound {
			debugf("session: token read failed: %v", err)
		}
		return "", false
	}
	return v, v != ""
}

// Email returns the last-known admin email, if any.
func (s *Store) Email(ctx context.Context) (string, bool) {
	v, err := s.kv.Get(ctx, KeyEmail)
	if err != nil || v == "" {
		return "", false
	}
	return v, true
}

// IsValid reports whether a token is still usable.
//
// Structured expiring credentials (JWTs) have their payload decoded and the
// expiry compared to the current time; a three-segment token whose payload
// cannot be decoded is invalid. Opaque tokens and JWTs without an expiry
// claim are treated as valid, the backend being the final authority.
func (s *Store) IsValid(token string) bool {
	if token == "" {
		return false
	}
	if strings.Count(token, ".") != 2 {
		// Opaque credential, nothing to decode.
		return true
	}
	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		debugf("session: token decode failed: %v", err)
		return false
	}
	exp, err := claims.GetExpirationTime()
	if err != nil {
		return false
	}
	if exp == nil {
		return true
	}
	return exp.After(nowFunc())
}

// Validate reports whether a non-expired token is present, clearing the
// session when the held token turns out to be invalid. This is the single
// source of the authenticated flag.
func (s *Store) Validate(ctx context.Context) bool {
	token, ok := s.Token(ctx)
	if !ok {
		return false
	}
	if !s.IsValid(token) {
		debugf("session: held token invalid, clearing")
		if err := s.ClearSession(ctx); err != nil {
			debugf("session: clear failed: %v", err)
		}
		return false
	}
	return true
}
