package mockgen

import (
	"encoding/json"
	"net/url"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseQuery(t *testing.T) {
	values, err := url.ParseQuery("select=Name,%20Email,,&count=7&City=NEW%20York&zip=021&zip=999")
	require.NoError(t, err)

	q := ParseQuery(values, 100)
	assert.Equal(t, []string{"name", "email"}, q.Select)
	assert.Equal(t, 7, q.Count)
	assert.Equal(t, []Filter{
		{Field: "city", Value: "new york"},
		{Field: "zip", Value: "021"},
	}, q.Filters)
}

func TestParseQuery_Count(t *testing.T) {
	tests := map[string]int{
		"":     25,
		"abc":  25,
		"1.5":  25,
		"0":    0,
		"-5":   -5,
		" 12 ": 12,
		"500":  500,
	}
	for raw, want := range tests {
		q := ParseQuery(url.Values{"count": {raw}}, 25)
		assert.Equal(t, want, q.Count, "count=%q", raw)
	}
}

func TestParseQuery_Empty(t *testing.T) {
	q := ParseQuery(nil, 100)
	assert.Empty(t, q.Select)
	assert.Empty(t, q.Filters)
	assert.Equal(t, 100, q.Count)
}

func TestQueryApply_Unicode(t *testing.T) {
	rec := NewRecord(2)
	rec.Set(KeyID, "x_1")
	rec.Set("street", "Große Straße")
	q := Query{Count: 10, Filters: []Filter{{Field: "street", Value: "STRASSE"}}}
	res := q.Apply([]Record{rec}, []Field{{Name: "street", Type: "string"}})
	assert.Len(t, res.Data, 1, "filter should match under full case folding")
}

func TestRecord_MarshalOrder(t *testing.T) {
	rec := NewRecord(0)
	rec.Set("zeta", 1)
	rec.Set("alpha", "a")
	rec.Set("Mid", true)
	rec.Set("zeta", 2)

	b, err := json.Marshal(rec)
	require.NoError(t, err)
	assert.Equal(t, `{"zeta":2,"alpha":"a","Mid":true}`, string(b))
}

func TestRecord_Lookup(t *testing.T) {
	var rec Record
	rec.Set("createdAt", "now")

	v, ok := rec.Lookup("createdat")
	assert.True(t, ok)
	assert.Equal(t, "now", v)

	_, ok = rec.Lookup("missing")
	assert.False(t, ok)

	_, ok = rec.Get("createdat")
	assert.False(t, ok, "Get is exact")
}
