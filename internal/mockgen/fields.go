package mockgen

import (
	"errors"
	"fmt"
	"regexp"
	"strings"
)

// ErrInvalidSchema is returned when an endpoint name or field list is rejected.
var ErrInvalidSchema = errors.New("invalid schema")

// MaxFields bounds the number of fields one endpoint may declare.
const MaxFields = 100

// Field declares one column of a mock record.
type Field struct {
	Name string `json:"name" yaml:"name"`
	Type string `json:"type" yaml:"type"`
}

// Record keys that every generated record carries.
const (
	KeyID        = "id"
	KeyCreatedAt = "createdAt"
	KeyUpdatedAt = "updatedAt"
)

var endpointPattern = regexp.MustCompile(`^[A-Za-z0-9][A-Za-z0-9_.-]{0,63}$`)

// ValidateEndpoint checks that name can be used as an endpoint path segment.
func ValidateEndpoint(name string) error {
	if !endpointPattern.MatchString(name) {
		return fmt.Errorf("%w: endpoint name %q must be 1-64 letters, digits, '.', '_' or '-'", ErrInvalidSchema, name)
	}
	return nil
}

// ValidateFields checks names are present and unique, ignoring case.
// Types are not checked: unknown types fall back at generation time.
func ValidateFields(fields []Field) error {
	if len(fields) > MaxFields {
		return fmt.Errorf("%w: %d fields exceeds the limit of %d", ErrInvalidSchema, len(fields), MaxFields)
	}
	seen := make(map[string]int, len(fields))
	for i, f := range fields {
		name := strings.TrimSpace(f.Name)
		if name == "" {
			return fmt.Errorf("%w: field %d has an empty name", ErrInvalidSchema, i)
		}
		key := strings.ToLower(name)
		switch key {
		case strings.ToLower(KeyID), strings.ToLower(KeyCreatedAt), strings.ToLower(KeyUpdatedAt):
			return fmt.Errorf("%w: field name %q is reserved", ErrInvalidSchema, f.Name)
		}
		if j, dup := seen[key]; dup {
			return fmt.Errorf("%w: field %d duplicates field %d (%q)", ErrInvalidSchema, i, j, f.Name)
		}
		seen[key] = i
	}
	return nil
}

// nameOverrides maps field-name substrings to the type they imply. Order
// matters: the first match wins, so longer, more specific keys come first.
var nameOverrides = []struct {
	substr string
	typ    string
}{
	{"email", "email"},
	{"username", "username"},
	{"firstname", "firstname"},
	{"lastname", "lastname"},
	{"fullname", "fullname"},
	{"company", "company"},
	{"phone", "phone"},
	{"address", "address"},
	{"city", "city"},
	{"country", "country"},
	{"zipcode", "zipcode"},
	{"postalcode", "zipcode"},
	{"zip", "zipcode"},
	{"website", "url"},
	{"url", "url"},
	{"name", "fullname"},
}

// ResolveType returns the type used to generate values for f. With
// heuristics on, a recognizable field name overrides the declared type.
func ResolveType(f Field, heuristics bool) string {
	if heuristics {
		norm := strings.NewReplacer("_", "", "-", "", " ", "").Replace(strings.ToLower(f.Name))
		for _, o := range nameOverrides {
			if strings.Contains(norm, o.substr) {
				return o.typ
			}
		}
	}
	return strings.ToLower(strings.TrimSpace(f.Type))
}

// NormalizeFields returns a copy of fields with names and types trimmed.
func NormalizeFields(fields []Field) []Field {
	out := make([]Field, len(fields))
	for i, f := range fields {
		out[i] = Field{Name: strings.TrimSpace(f.Name), Type: strings.TrimSpace(f.Type)}
	}
	return out
}
