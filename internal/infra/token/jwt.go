// Package token signs and verifies the session cookie.
package token

import (
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

var ErrInvalidToken = errors.New("invalid session token")

// Session is what a verified cookie carries.
type Session struct {
	ID        string
	Email     string
	ExpiresAt time.Time
}

// JWT issues and parses HS256 session tokens.
type JWT struct {
	secret []byte
	ttl    time.Duration
}

// DI
func NewJWT(secret string, ttl time.Duration) *JWT {
	return &JWT{secret: []byte(secret), ttl: ttl}
}

func (j *JWT) TTL() time.Duration {
	return j.ttl
}

// Issue signs a token for sessionID. email is omitted when empty.
func (j *JWT) Issue(sessionID string, email string, now time.Time) (string, time.Time, error) {
	if sessionID == "" {
		return "", time.Time{}, errors.New("empty session id")
	}
	expiresAt := now.Add(j.ttl)

	claims := jwt.MapClaims{
		"sub": sessionID,
		"iat": now.Unix(),
		"exp": expiresAt.Unix(),
	}
	if email != "" {
		claims["email"] = email
	}

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString(j.secret)
	if err != nil {
		return "", time.Time{}, err
	}
	return signed, expiresAt, nil
}

// Parse verifies raw as of now.
func (j *JWT) Parse(raw string, now time.Time) (Session, error) {
	tok, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
		return j.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(func() time.Time { return now }),
	)
	if err != nil || tok == nil || !tok.Valid {
		return Session{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}

	claims, ok := tok.Claims.(jwt.MapClaims)
	if !ok {
		return Session{}, ErrInvalidToken
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return Session{}, ErrInvalidToken
	}

	var email string
	if v, ok := claims["email"]; ok {
		s, ok := v.(string)
		if !ok {
			return Session{}, ErrInvalidToken
		}
		email = s
	}

	exp, err := claims.GetExpirationTime()
	if err != nil || exp == nil {
		return Session{}, ErrInvalidToken
	}

	return Session{ID: sub, Email: email, ExpiresAt: exp.Time}, nil
}
