package hexun

import (
	"fmt"
	"strconv"
	"strings"

	"quotewatch/internal/quote"
	"quotewatch/internal/security"
)

// The provider wraps the comma-separated value list in a JSONP-like
// envelope of fixed width. The framing below is a magic-number artifact of
// that envelope and must not be "simplified": any change silently corrupts
// every parsed field instead of failing loudly.
const (
	envelopePrefixLen = 3
	envelopeSuffixLen = 7
)

// fieldCount is how many leading values map onto quote.Data.
const fieldCount = 7

// unitDivisor converts the provider's fixed-point encoding to decimal
// currency units. Hong Kong quotes use a finer unit than the others.
func unitDivisor(m security.Market) float64 {
	if m == security.HongKong {
		return 1000.0
	}
	return 100.0
}

// parseQuote turns a raw response body into a quote. Every malformed-body
// condition comes back as an error, never a panic; callers collapse it to
// a no-data Result.
func parseQuote(body string, id security.Identifier) (*quote.Data, error) {
	_, payload, ok := strings.Cut(body, ":")
	if !ok {
		return nil, fmt.Errorf("quote envelope has no colon separator")
	}
	if len(payload) <= envelopePrefixLen+envelopeSuffixLen {
		return nil, fmt.Errorf("quote payload too short (%d bytes)", len(payload))
	}
	payload = payload[envelopePrefixLen : len(payload)-envelopeSuffixLen]

	tokens := strings.Split(payload, ",")
	if len(tokens) < fieldCount {
		return nil, fmt.Errorf("quote payload has %d fields, want at least %d", len(tokens), fieldCount)
	}

	div := unitDivisor(id.Market)
	var vals [fieldCount]float64
	for i := 0; i < fieldCount; i++ {
		f, err := strconv.ParseFloat(tokens[i], 64)
		if err != nil {
			return nil, fmt.Errorf("quote field %d: %w", i, err)
		}
		vals[i] = f / div
	}

	return &quote.Data{
		Price:         vals[0],
		Open:          vals[1],
		High:          vals[2],
		Low:           vals[3],
		Change:        vals[4],
		ChangeRate:    vals[5],
		TurnoverRatio: vals[6],
	}, nil
}
