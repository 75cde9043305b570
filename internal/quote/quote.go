package quote

import (
	"context"

	"quotewatch/internal/security"
)

// Data is the normalized quote for one security, in decimal currency units.
type Data struct {
	Price         float64 `json:"price"`
	Open          float64 `json:"open"`
	High          float64 `json:"high"`
	Low           float64 `json:"low"`
	Change        float64 `json:"change"`
	ChangeRate    float64 `json:"change_rate"`
	TurnoverRatio float64 `json:"turnover_ratio"`
}

// Result pairs a security with its fetched quote. Data == nil means no data:
// transport failure, bad status and parse failure all collapse to it.
type Result struct {
	Security security.Security `json:"security"`
	Data     *Data             `json:"data,omitempty"`
	// Err records why Data is missing. Diagnostic only, never serialized.
	Err error `json:"-"`
}

// Client fetches the quote for a single security.
type Client interface {
	Quote(ctx context.Context, id security.Identifier) (*Data, error)
}

// Fetcher fetches quotes for a whole watchlist. The returned slice always
// has the same length and order as the input, one Result per security.
type Fetcher interface {
	Fetch(ctx context.Context, secs []security.Security) []Result
}
