package security

import (
	"encoding/json"
	"fmt"
)

// Market designates the exchange a security trades on.
type Market int

const (
	Shanghai Market = iota + 1
	Shenzhen
	HongKong
	Nasdaq
)

// marketTags maps watchlist "type" tags to markets.
var marketTags = map[string]Market{
	"SH":   Shanghai,
	"SZ":   Shenzhen,
	"HK":   HongKong,
	"NSDQ": Nasdaq,
}

func (m Market) String() string {
	switch m {
	case Shanghai:
		return "SH"
	case Shenzhen:
		return "SZ"
	case HongKong:
		return "HK"
	case Nasdaq:
		return "NSDQ"
	}
	return fmt.Sprintf("Market(%d)", int(m))
}

// Identifier tags a market-local code with the market it belongs to.
// Constructed once when the watchlist is decoded, never mutated.
type Identifier struct {
	Market Market
	Code   string
}

type identifierJSON struct {
	Type string `json:"type"`
	Code string `json:"code"`
}

func (id *Identifier) UnmarshalJSON(b []byte) error {
	var raw identifierJSON
	if err := json.Unmarshal(b, &raw); err != nil {
		return err
	}
	m, ok := marketTags[raw.Type]
	if !ok {
		return fmt.Errorf("unknown market type %q", raw.Type)
	}
	id.Market = m
	id.Code = raw.Code
	return nil
}

func (id Identifier) MarshalJSON() ([]byte, error) {
	return json.Marshal(identifierJSON{Type: id.Market.String(), Code: id.Code})
}

// Security is a named instrument on a watchlist.
type Security struct {
	Name string     `json:"name"`
	ID   Identifier `json:"code"`
}
