package auth

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"log"
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/utakatalp/nba-tracker/internal/league"
)

const sessionIssuer = "nba-tracker"

// ErrInvalidSession is returned for tokens that are malformed, expired or
// signed with another key.
var ErrInvalidSession = errors.New("invalid session")

// Session identifies the logged-in user of a request.
type Session struct {
	UserID    int64
	Username  string
	ExpiresAt time.Time
}

type sessionClaims struct {
	jwt.RegisteredClaims
	Username string `json:"username"`
}

// Sessions issues and verifies HS256 session tokens.
type Sessions struct {
	secret []byte
	ttl    time.Duration
	now    func() time.Time
}

// NewSessions returns a token issuer. An empty secret is replaced by a
// random one, which invalidates sessions on every restart.
func NewSessions(secret string, ttl time.Duration) (*Sessions, error) {
	key := []byte(secret)
	if len(key) == 0 {
		key = make([]byte, 32)
		if _, err := rand.Read(key); err != nil {
			return nil, fmt.Errorf("generating session secret: %w", err)
		}
		log.Printf("auth: no session secret configured, using a random one")
	}
	return &Sessions{secret: key, ttl: ttl, now: time.Now}, nil
}

// TTL is how long issued sessions stay valid.
func (s *Sessions) TTL() time.Duration {
	return s.ttl
}

// Issue signs a session token for user.
func (s *Sessions) Issue(user league.User) (string, Session, error) {
	now := s.now().UTC()
	sess := Session{UserID: user.ID, Username: user.Username, ExpiresAt: now.Add(s.ttl)}
	claims := sessionClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    sessionIssuer,
			Subject:   strconv.FormatInt(user.ID, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(sess.ExpiresAt),
		},
		Username: user.Username,
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return "", Session{}, fmt.Errorf("signing session: %w", err)
	}
	return token, sess, nil
}

// Parse verifies a token and returns its session.
func (s *Sessions) Parse(token string) (Session, error) {
	var claims sessionClaims
	_, err := jwt.ParseWithClaims(token, &claims, func(*jwt.Token) (any, error) {
		return s.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithIssuer(sessionIssuer),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(s.now),
	)
	if err != nil {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidSession, err)
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil {
		return Session{}, fmt.Errorf("%w: bad subject %q", ErrInvalidSession, claims.Subject)
	}
	return Session{UserID: id, Username: claims.Username, ExpiresAt: claims.ExpiresAt.Time}, nil
}

type sessionContextKey struct{}

// WithSession stores the request's session in ctx.
func WithSession(ctx context.Context, sess Session) context.Context {
	return context.WithValue(ctx, sessionContextKey{}, sess)
}

// SessionFrom returns the session stored in ctx, if any.
func SessionFrom(ctx context.Context) (Session, bool) {
	if ctx == nil {
		return Session{}, false
	}
	sess, ok := ctx.Value(sessionContextKey{}).(Session)
	return sess, ok
}
