// Package auth resolves a bearer credential to a subject id.
package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// ErrUnauthenticated is returned when a credential is missing or invalid.
var ErrUnauthenticated = errors.New("unauthenticated")

// Verifier checks a bearer token and returns the subject it identifies.
// An empty token means the request carried no bearer credential.
type Verifier interface {
	Verify(ctx context.Context, token string) (subject string, err error)
}

// Modes accepted by New.
const (
	ModeAPIKey = "apikey"
	ModeJWT    = "jwt"
	ModeNone   = "none"
)

// Config selects and configures a Verifier.
type Config struct {
	Mode    string    `yaml:"mode"`
	APIKeys []string  `yaml:"api_keys"`
	JWT     JWTConfig `yaml:"jwt"`
}

// New builds the Verifier named by cfg.Mode.
func New(cfg Config) (Verifier, error) {
	switch strings.ToLower(cfg.Mode) {
	case ModeAPIKey, "":
		if len(cfg.APIKeys) == 0 {
			return nil, errors.New("auth: apikey mode requires at least one key")
		}
		return NewAPIKeyVerifier(cfg.APIKeys), nil
	case ModeJWT:
		v, err := NewJWTVerifier(cfg.JWT)
		if err != nil {
			return nil, err
		}
		return v, nil
	case ModeNone:
		return Anonymous{}, nil
	default:
		return nil, fmt.Errorf("auth: unknown mode %q", cfg.Mode)
	}
}

// AnonymousSubject is the subject assigned by the Anonymous verifier.
const AnonymousSubject = "anonymous"

// Anonymous accepts every request as AnonymousSubject. Meant for local use.
type Anonymous struct{}

// Verify always succeeds.
func (Anonymous) Verify(context.Context, string) (string, error) {
	return AnonymousSubject, nil
}

type subjectKey struct{}

// WithSubject returns a copy of ctx carrying subject.
func WithSubject(ctx context.Context, subject string) context.Context {
	return context.WithValue(ctx, subjectKey{}, subject)
}

// SubjectFrom returns the subject stored by WithSubject.
func SubjectFrom(ctx context.Context) (string, bool) {
	s, ok := ctx.Value(subjectKey{}).(string)
	return s, ok && s != ""
}

// BearerToken extracts the token from an Authorization header value.
// It returns "" when the header is absent or not a bearer credential.
func BearerToken(header string) string {
	const prefix = "bearer "
	if len(header) < len(prefix) || !strings.EqualFold(header[:len(prefix)], prefix) {
		return ""
	}
	return strings.TrimSpace(header[len(prefix):])
}
