// Package mockgen synthesizes mock records from a stored field schema and
// applies the select/filter/count query contract to them.
package mockgen

import (
	"fmt"
	"math"
	"math/rand/v2"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
)

// Context carries the per-value inputs of a generator call.
type Context struct {
	// Index is the 1-based position of the record being generated.
	Index int

	// Now anchors time-based values. Zero means time.Now().
	Now time.Time

	// Rand is the randomness source. Nil uses the global math/rand/v2
	// source, which is safe for concurrent use.
	Rand *rand.Rand
}

type valueFunc func(ctx Context) any

// generators is the type dispatch table, keyed by lower-cased type tag.
var generators = map[string]valueFunc{
	"string":    genPhrase,
	"text":      genSentence,
	"lorem":     genSentence,
	"number":    genNumber,
	"integer":   genNumber,
	"int":       genNumber,
	"float":     genFloat,
	"decimal":   genFloat,
	"boolean":   genBool,
	"bool":      genBool,
	"date":      genDate,
	"datetime":  genDate,
	"email":     genEmail,
	"phone":     genPhone,
	"url":       genURL,
	"uuid":      genUUID,
	"firstname": genFirstName,
	"lastname":  genLastName,
	"fullname":  genFullName,
	"name":      genFullName,
	"username":  genUsername,
	"company":   genCompany,
	"address":   genAddress,
	"city":      genCity,
	"country":   genCountry,
	"zipcode":   genZipcode,
	"ipv4":      genIPv4,
	"ipv6":      genIPv6,
	"mac":       genMAC,
	"color":     genColor,
	"sequence":  genSequence,
}

// Generate returns one synthetic value for the given type tag. Type matching
// is case-insensitive; unrecognized types produce lorem text.
func Generate(fieldType string, ctx Context) any {
	if fn, ok := generators[strings.ToLower(strings.TrimSpace(fieldType))]; ok {
		return fn(ctx)
	}
	return genSentence(ctx)
}

// IsKnownType reports whether fieldType has a dedicated generator.
func IsKnownType(fieldType string) bool {
	_, ok := generators[strings.ToLower(strings.TrimSpace(fieldType))]
	return ok
}

// Types returns the recognized type tags in sorted order.
func Types() []string {
	types := make([]string, 0, len(generators))
	for t := range generators {
		types = append(types, t)
	}
	sort.Strings(types)
	return types
}

// intN returns a random int in [0, n) from rng, or from the global source
// when rng is nil.
func intN(rng *rand.Rand, n int) int {
	if n <= 0 {
		return 0
	}
	if rng != nil {
		return rng.IntN(n)
	}
	return rand.IntN(n)
}

func float64N(rng *rand.Rand) float64 {
	if rng != nil {
		return rng.Float64()
	}
	return rand.Float64()
}

func pick(rng *rand.Rand, list []string) string {
	return list[intN(rng, len(list))]
}

func words(rng *rand.Rand, n int) string {
	out := make([]string, n)
	for i := range out {
		out[i] = pick(rng, loremWords)
	}
	return strings.Join(out, " ")
}

func genPhrase(ctx Context) any {
	return words(ctx.Rand, 2+intN(ctx.Rand, 3))
}

func genSentence(ctx Context) any {
	s := words(ctx.Rand, 6+intN(ctx.Rand, 6))
	return strings.ToUpper(s[:1]) + s[1:] + "."
}

func genNumber(ctx Context) any {
	return intN(ctx.Rand, 1000)
}

func genFloat(ctx Context) any {
	return math.Floor(float64N(ctx.Rand)*100000) / 100
}

func genBool(ctx Context) any {
	return intN(ctx.Rand, 2) == 1
}

// genDate returns a timestamp within the year preceding ctx.Now.
func genDate(ctx Context) any {
	now := ctx.Now
	if now.IsZero() {
		now = time.Now()
	}
	back := time.Duration(intN(ctx.Rand, 365*24*60*60)) * time.Second
	return now.Add(-back).UTC().Format(time.RFC3339)
}

func genEmail(ctx Context) any {
	return fmt.Sprintf("%s.%s%d@%s",
		strings.ToLower(pick(ctx.Rand, firstNames)),
		strings.ToLower(pick(ctx.Rand, lastNames)),
		intN(ctx.Rand, 100),
		pick(ctx.Rand, emailDomains))
}

func genPhone(ctx Context) any {
	return fmt.Sprintf("+1 (%03d) %03d-%04d",
		200+intN(ctx.Rand, 800), 200+intN(ctx.Rand, 800), intN(ctx.Rand, 10000))
}

func genURL(ctx Context) any {
	return fmt.Sprintf("https://www.%s.%s/%s",
		pick(ctx.Rand, loremWords), pick(ctx.Rand, topLevelDomains), pick(ctx.Rand, loremWords))
}

// genUUID draws the UUID bytes from ctx.Rand when set so seeded runs repeat.
func genUUID(ctx Context) any {
	if ctx.Rand == nil {
		return uuid.NewString()
	}
	id, err := uuid.NewRandomFromReader(rngReader{ctx.Rand})
	if err != nil {
		return uuid.NewString()
	}
	return id.String()
}

func genFirstName(ctx Context) any {
	return pick(ctx.Rand, firstNames)
}

func genLastName(ctx Context) any {
	return pick(ctx.Rand, lastNames)
}

func genFullName(ctx Context) any {
	return pick(ctx.Rand, firstNames) + " " + pick(ctx.Rand, lastNames)
}

func genUsername(ctx Context) any {
	return fmt.Sprintf("%s_%s%d", pick(ctx.Rand, handleWords), pick(ctx.Rand, handleWords), intN(ctx.Rand, 100))
}

func genCompany(ctx Context) any {
	return pick(ctx.Rand, companyPrefixes) + " " + pick(ctx.Rand, companySuffixes)
}

func genAddress(ctx Context) any {
	return fmt.Sprintf("%d %s %s", 1+intN(ctx.Rand, 9999), pick(ctx.Rand, streetNames), pick(ctx.Rand, streetSuffixes))
}

func genCity(ctx Context) any {
	return pick(ctx.Rand, cities)
}

func genCountry(ctx Context) any {
	return pick(ctx.Rand, countries)
}

func genZipcode(ctx Context) any {
	return fmt.Sprintf("%05d", intN(ctx.Rand, 100000))
}

func genIPv4(ctx Context) any {
	return fmt.Sprintf("%d.%d.%d.%d",
		intN(ctx.Rand, 256), intN(ctx.Rand, 256), intN(ctx.Rand, 256), intN(ctx.Rand, 256))
}

func genIPv6(ctx Context) any {
	groups := make([]string, 8)
	for i := range groups {
		groups[i] = fmt.Sprintf("%04x", intN(ctx.Rand, 65536))
	}
	return strings.Join(groups, ":")
}

func genMAC(ctx Context) any {
	octets := make([]string, 6)
	for i := range octets {
		octets[i] = fmt.Sprintf("%02x", intN(ctx.Rand, 256))
	}
	return strings.Join(octets, ":")
}

func genColor(ctx Context) any {
	return fmt.Sprintf("#%06x", intN(ctx.Rand, 1<<24))
}

func genSequence(ctx Context) any {
	return ctx.Index
}

// rngReader adapts a *rand.Rand to io.Reader.
type rngReader struct {
	rng *rand.Rand
}

func (r rngReader) Read(p []byte) (int, error) {
	for i := range p {
		p[i] = byte(r.rng.IntN(256))
	}
	return len(p), nil
}
