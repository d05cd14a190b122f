package mockgen

import (
	"net/url"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cast"
	"golang.org/x/text/cases"
)

// Reserved query parameters; every other key is a filter.
const (
	ParamSelect = "select"
	ParamCount  = "count"
)

// Filter is a case-insensitive substring predicate on one field.
type Filter struct {
	Field string
	Value string
}

// Query is the parsed form of a read request's query string.
type Query struct {
	// Select lists lower-cased field names to keep. Empty keeps all.
	Select []string

	// Count is the requested number of records before clamping.
	Count int

	// Filters are ANDed together.
	Filters []Filter
}

// Pagination summarizes a result set.
type Pagination struct {
	Count int `json:"count"`
	Total int `json:"total"`
}

// Result is the response envelope of a read request.
type Result struct {
	Data       []Record   `json:"data"`
	Pagination Pagination `json:"pagination"`
}

// ParseQuery reads select, count and filters from values. A missing or
// malformed count falls back to defaultCount. Filter keys and values are
// lower-cased; for a repeated key only the first value is used.
func ParseQuery(values url.Values, defaultCount int) Query {
	q := Query{Count: defaultCount}

	if raw := values.Get(ParamSelect); raw != "" {
		for _, name := range strings.Split(raw, ",") {
			if name = strings.ToLower(strings.TrimSpace(name)); name != "" {
				q.Select = append(q.Select, name)
			}
		}
	}

	if raw := strings.TrimSpace(values.Get(ParamCount)); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil {
			q.Count = n
		}
	}

	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		if k == ParamSelect || k == ParamCount || len(values[k]) == 0 {
			continue
		}
		q.Filters = append(q.Filters, Filter{
			Field: strings.ToLower(k),
			Value: strings.ToLower(values[k][0]),
		})
	}
	return q
}

// Apply filters records, truncates them to the clamped count and applies
// the select projection. fields supplies the schema order for projection.
func (q Query) Apply(records []Record, fields []Field) Result {
	fold := cases.Fold()
	filters := make([]Filter, len(q.Filters))
	for i, f := range q.Filters {
		filters[i] = Filter{Field: f.Field, Value: fold.String(f.Value)}
	}

	kept := make([]Record, 0, len(records))
	for _, rec := range records {
		if matchAll(rec, filters, fold) {
			kept = append(kept, rec)
		}
	}
	total := len(kept)
	if n := ClampCount(q.Count); len(kept) > n {
		kept = kept[:n]
	}

	if len(q.Select) > 0 {
		for i, rec := range kept {
			kept[i] = project(rec, fields, q.Select)
		}
	}
	return Result{Data: kept, Pagination: Pagination{Count: len(kept), Total: total}}
}

func matchAll(rec Record, filters []Filter, fold cases.Caser) bool {
	for _, f := range filters {
		var s string
		if v, ok := rec.Lookup(f.Field); ok {
			s = fold.String(cast.ToString(v))
		}
		if !strings.Contains(s, f.Value) {
			return false
		}
	}
	return true
}

// project keeps id plus the selected schema fields, in schema order.
func project(rec Record, fields []Field, selected []string) Record {
	want := make(map[string]struct{}, len(selected))
	for _, s := range selected {
		want[s] = struct{}{}
	}
	out := NewRecord(1 + len(selected))
	if v, ok := rec.Get(KeyID); ok {
		out.Set(KeyID, v)
	}
	for _, f := range fields {
		if _, ok := want[strings.ToLower(f.Name)]; !ok {
			continue
		}
		if v, ok := rec.Get(f.Name); ok {
			out.Set(f.Name, v)
		}
	}
	return out
}
