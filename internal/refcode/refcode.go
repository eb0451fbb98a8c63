// Package refcode encodes the engine's sidecar metadata into the one freely
// writable text field of an external ledger entry, and decodes it back. The
// grammar lives here and nowhere else.
package refcode

import (
	"strings"
	"time"

	"github.com/tillpoint/cashbook_app/internal/core/domain"
)

// Prefix marks an entry as engine-owned inside the shared external system.
// Changing it orphans every previously posted entry; treat it as frozen.
const Prefix = "CASHBOOK"

// sep never appears in ISO dates or in category codes ([A-Z0-9_]).
const sep = "|"

const dateLayout = "2006-01-02"

// Decoded is the metadata recovered from an engine-owned reference.
type Decoded struct {
	Date         time.Time
	CategoryCode string
	Direction    domain.Direction
}

// Encode builds the reference text for an entry:
// <prefix>|<YYYY-MM-DD>|<CODE>|<IN|OUT>.
func Encode(date time.Time, categoryCode string, direction domain.Direction) string {
	return strings.Join([]string{
		Prefix,
		date.Format(dateLayout),
		categoryCode,
		string(direction),
	}, sep)
}

// Decode parses a reference produced by Encode. Any text not written by this
// package — wrong prefix, wrong field count, bad date, bad direction — yields
// ok=false. It never panics; the aggregation path feeds it arbitrary foreign
// references from the shared system.
func Decode(text string) (Decoded, bool) {
	parts := strings.Split(text, sep)
	if len(parts) != 4 || parts[0] != Prefix {
		return Decoded{}, false
	}
	date, err := time.Parse(dateLayout, parts[1])
	if err != nil {
		return Decoded{}, false
	}
	if parts[2] == "" {
		return Decoded{}, false
	}
	dir := domain.Direction(parts[3])
	if dir != domain.In && dir != domain.Out {
		return Decoded{}, false
	}
	return Decoded{Date: date, CategoryCode: parts[2], Direction: dir}, true
}
