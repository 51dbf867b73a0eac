// README: Shipment identifiers: YYYYMMDD + facility code + 4 random characters.
package shipment

import (
	"crypto/rand"
	"fmt"
	"io"
	"time"

	"porter/internal/types"
)

const (
	DefaultFacility = "NAIA"
	idAlphabet      = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	idSuffixLen     = 4
)

var manila = loadManila()

func loadManila() *time.Location {
	if loc, err := time.LoadLocation("Asia/Manila"); err == nil {
		return loc
	}
	return time.FixedZone("PHT", 8*60*60)
}

// NewID builds a shipment id dated in Manila time. Uniqueness is left to
// the store's primary key.
func NewID(now time.Time, facility string) (types.ID, error) {
	return newID(now, facility, rand.Reader)
}

func newID(now time.Time, facility string, r io.Reader) (types.ID, error) {
	if facility == "" {
		facility = DefaultFacility
	}
	suffix := make([]byte, 0, idSuffixLen)
	var b [1]byte
	for len(suffix) < idSuffixLen {
		if _, err := io.ReadFull(r, b[:]); err != nil {
			return "", fmt.Errorf("shipment id: %w", err)
		}
		// 252 is the largest multiple of 36 below 256.
		if b[0] >= 252 {
			continue
		}
		suffix = append(suffix, idAlphabet[int(b[0])%len(idAlphabet)])
	}
	return types.ID(now.In(manila).Format("20060102") + facility + string(suffix)), nil
}
