package watchlist

import (
	"encoding/json"
	"fmt"
	"os"

	"quotewatch/internal/security"
)

// Load reads a watchlist file: a JSON array of securities, each a display
// name plus a tagged market code. No validation beyond what the decoder
// already guarantees.
func Load(path string) ([]security.Security, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read watchlist: %w", err)
	}
	return Decode(b)
}

// Decode parses watchlist JSON.
func Decode(b []byte) ([]security.Security, error) {
	var secs []security.Security
	if err := json.Unmarshal(b, &secs); err != nil {
		return nil, fmt.Errorf("parse watchlist: %w", err)
	}
	return secs, nil
}
