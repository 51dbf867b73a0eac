// README: Pricing feed file format used to seed the store.
package pricing

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// LoadFile reads a JSON array of RegionPrices. Region codes must be unique
// and non-empty and prices non-negative; duplicate cities are left to
// NewTable, which keeps the first.
func LoadFile(path string) ([]RegionPrices, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", path, err)
	}
	var regions []RegionPrices
	if err := json.Unmarshal(raw, &regions); err != nil {
		return nil, fmt.Errorf("decoding %s: %w", path, err)
	}
	seen := make(map[string]bool, len(regions))
	for i, r := range regions {
		code := strings.TrimSpace(r.Code)
		if code == "" {
			return nil, fmt.Errorf("%s: region %d has no code", path, i)
		}
		if seen[code] {
			return nil, fmt.Errorf("%s: duplicate region code %q", path, code)
		}
		seen[code] = true
		for _, c := range r.Cities {
			if c.BasePrice < 0 {
				return nil, fmt.Errorf("%s: negative price for %s/%s", path, code, c.City)
			}
		}
	}
	return regions, nil
}
