// README: Immutable price table keyed by normalized (region, city).
package pricing

import (
	"go.uber.org/zap"

	"porter/internal/names"
)

type key struct {
	region string
	city   string
}

func keyOf(region, city string) key {
	return key{region: names.Canonical(region), city: names.Normalize(city)}
}

// Table is built once from a price list and never changes afterwards.
type Table struct {
	entries map[key]Entry
}

// NewTable indexes entries by normalized (region, city). When two entries
// normalize to the same key the first one in load order is kept.
func NewTable(entries []Entry, log *zap.Logger) *Table {
	if log == nil {
		log = zap.NewNop()
	}
	t := &Table{entries: make(map[key]Entry, len(entries))}
	for _, e := range entries {
		k := keyOf(e.Region, e.City)
		if prev, dup := t.entries[k]; dup {
			log.Warn("duplicate city price ignored",
				zap.String("region", e.Region),
				zap.String("city", e.City),
				zap.Int64("kept", prev.BasePrice.Amount),
				zap.Int64("ignored", e.BasePrice.Amount),
			)
			continue
		}
		t.entries[k] = e
	}
	return t
}

func (t *Table) Len() int {
	if t == nil {
		return 0
	}
	return len(t.entries)
}

// Quote looks up the base price for a resolved city. An empty or missing
// table is no_pricing; a table without the pair is no_match.
func (t *Table) Quote(city, region string) Quote {
	if t.Len() == 0 {
		return Quote{Status: StatusNoPricing}
	}
	e, ok := t.entries[keyOf(region, city)]
	if !ok {
		return Quote{Status: StatusNoMatch}
	}
	return Quote{Fee: e.BasePrice, Status: StatusOK}
}
