package auth

import (
	"context"
	"crypto/sha256"
	"crypto/subtle"
	"encoding/hex"
	"strings"
)

type apiKey struct {
	subject string
	key     []byte
}

// APIKeyVerifier accepts a fixed set of static keys.
type APIKeyVerifier struct {
	keys []apiKey
}

// NewAPIKeyVerifier builds a verifier from entries of the form
// "subject:key" or a bare "key". A bare key gets a subject derived from its
// hash so the key itself never reaches storage.
func NewAPIKeyVerifier(entries []string) *APIKeyVerifier {
	v := &APIKeyVerifier{}
	for _, e := range entries {
		e = strings.TrimSpace(e)
		if e == "" {
			continue
		}
		subject, key, ok := strings.Cut(e, ":")
		if !ok {
			key = e
			sum := sha256.Sum256([]byte(e))
			subject = "key-" + hex.EncodeToString(sum[:6])
		}
		if key == "" || subject == "" {
			continue
		}
		v.keys = append(v.keys, apiKey{subject: subject, key: []byte(key)})
	}
	return v
}

// Verify returns the subject bound to token.
func (v *APIKeyVerifier) Verify(_ context.Context, token string) (string, error) {
	if token == "" {
		return "", ErrUnauthenticated
	}
	subject := ""
	for _, k := range v.keys {
		// compare against every key so timing does not reveal the match position
		if subtle.ConstantTimeCompare(k.key, []byte(token)) == 1 && subject == "" {
			subject = k.subject
		}
	}
	if subject == "" {
		return "", ErrUnauthenticated
	}
	return subject, nil
}

// ParseAPIKeys parses a comma-separated list of API key entries.
func ParseAPIKeys(s string) []string {
	var keys []string
	for _, k := range strings.Split(s, ",") {
		if v := strings.TrimSpace(k); v != "" {
			keys = append(keys, v)
		}
	}
	return keys
}
