package mockgen

import (
	"math/rand/v2"
	"strconv"
	"time"
)

// Count bounds for a single request.
const (
	MinCount = 1
	MaxCount = 100
)

// TimestampLayout formats createdAt/updatedAt: ISO-8601 with milliseconds.
const TimestampLayout = "2006-01-02T15:04:05.000Z07:00"

// Engine assembles records for a schema and answers queries over them.
// An Engine holds no mutable state and is safe for concurrent use.
type Engine struct {
	heuristics bool
	now        func() time.Time
	seeded     bool
	seed       uint64
}

// Option configures an Engine.
type Option func(*Engine)

// WithNameHeuristics toggles the field-name override table.
func WithNameHeuristics(on bool) Option {
	return func(e *Engine) { e.heuristics = on }
}

// WithClock sets the time source used for timestamps and date values.
func WithClock(now func() time.Time) Option {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// WithSeed makes every call draw from a fresh PCG source seeded with seed,
// so identical calls yield identical records.
func WithSeed(seed uint64) Option {
	return func(e *Engine) {
		e.seeded = true
		e.seed = seed
	}
}

// NewEngine returns an Engine with name heuristics enabled.
func NewEngine(opts ...Option) *Engine {
	e := &Engine{heuristics: true, now: time.Now}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// ClampCount bounds n to [MinCount, MaxCount].
func ClampCount(n int) int {
	return max(MinCount, min(MaxCount, n))
}

func (e *Engine) newRand() *rand.Rand {
	if !e.seeded {
		return nil
	}
	return rand.New(rand.NewPCG(e.seed, e.seed^0x9e3779b97f4a7c15))
}

// Records generates ClampCount(n) records for endpoint. Record i (1-based)
// gets the id "<endpoint>_<i>".
func (e *Engine) Records(endpoint string, fields []Field, n int) []Record {
	n = ClampCount(n)
	rng := e.newRand()
	now := e.now().UTC()
	ts := now.Format(TimestampLayout)

	types := make([]string, len(fields))
	for i, f := range fields {
		types[i] = ResolveType(f, e.heuristics)
	}

	records := make([]Record, n)
	for i := range records {
		index := i + 1
		rec := NewRecord(3 + len(fields))
		rec.Set(KeyID, endpoint+"_"+strconv.Itoa(index))
		rec.Set(KeyCreatedAt, ts)
		rec.Set(KeyUpdatedAt, ts)
		ctx := Context{Index: index, Now: now, Rand: rng}
		for j, f := range fields {
			rec.Set(f.Name, Generate(types[j], ctx))
		}
		records[i] = rec
	}
	return records
}

// Run generates records for q.Count, then filters, truncates and projects
// them. Pagination reports the post-filter size.
func (e *Engine) Run(endpoint string, fields []Field, q Query) Result {
	records := e.Records(endpoint, fields, q.Count)
	return q.Apply(records, fields)
}
