// Package auth resolves the user identity that progress records are keyed
// by. Remote backends require a signed-in session; file-backed local stores
// use a fixed local identity and need no sign-in.
package auth

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/google/uuid"

	"github.com/julianstephens/ascend/internal/constants"
	"github.com/julianstephens/ascend/internal/keyring"
	"github.com/julianstephens/ascend/internal/logger"
)

var (
	// ErrNotSignedIn is returned when a remote backend is used without a
	// stored session.
	ErrNotSignedIn = errors.New("not signed in, run 'ascend login' first")
	// ErrSessionExpired is returned when the stored token's expiry has passed.
	ErrSessionExpired = errors.New("session expired, run 'ascend login' again")
)

// Identity is the signed-in user as derived from the session token.
type Identity struct {
	UserID    string
	Email     string
	SessionID string
	ExpiresAt time.Time
}

// Session resolves and manages the current identity. The token itself lives
// in the OS keyring; only derived claims are held in memory.
type Session struct {
	now func() time.Time
}

// NewSession returns a session manager using the wall clock.
func NewSession() *Session {
	return &Session{now: time.Now}
}

// claims is the subset of token claims ascend reads. Tokens are issued and
// verified by the sync service; the client only decodes them to learn who
// it is acting as and when to prompt for a fresh login.
type claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

func parseIdentity(token string, now time.Time) (Identity, error) {
	var c claims
	parser := jwt.NewParser()
	if _, _, err := parser.ParseUnverified(token, &c); err != nil {
		return Identity{}, fmt.Errorf("invalid session token: %w", err)
	}
	if c.Subject == "" {
		return Identity{}, errors.New("invalid session token: missing subject")
	}

	id := Identity{
		UserID:    c.Subject,
		Email:     c.Email,
		SessionID: c.ID,
	}
	if id.SessionID == "" {
		id.SessionID = uuid.New().String()
	}
	if c.ExpiresAt != nil {
		id.ExpiresAt = c.ExpiresAt.Time
		if !id.ExpiresAt.After(now) {
			return Identity{}, ErrSessionExpired
		}
	}
	return id, nil
}

// SignIn validates the token shape and stores it in the OS keyring.
func (s *Session) SignIn(token string) (Identity, error) {
	id, err := parseIdentity(token, s.now())
	if err != nil {
		return Identity{}, err
	}
	if err := keyring.SetSessionToken(token); err != nil {
		return Identity{}, err
	}
	logger.Info("Signed in", "user", id.UserID, "session", id.SessionID)
	return id, nil
}

// SignOut removes the stored session. Progress stays in the backend; the
// user can sign back in anytime to continue the challenge.
func (s *Session) SignOut() error {
	err := keyring.DeleteSessionToken()
	if errors.Is(err, keyring.ErrNotFound) {
		return ErrNotSignedIn
	}
	return err
}

// CurrentUser returns the signed-in identity, or ErrNotSignedIn /
// ErrSessionExpired when no usable session exists.
func (s *Session) CurrentUser() (Identity, error) {
	token, err := keyring.GetSessionToken()
	if err != nil {
		if errors.Is(err, keyring.ErrNotFound) {
			return Identity{}, ErrNotSignedIn
		}
		return Identity{}, err
	}
	return parseIdentity(token, s.now())
}

// LocalIdentity is the identity used by file-backed stores.
func LocalIdentity() Identity {
	return Identity{UserID: constants.LocalUserID}
}
