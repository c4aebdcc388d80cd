package article

import (
	"time"

	"github.com/goodsign/monday"
)

// FormatDateFR renders an ISO date as "15 octobre 2026". Input that does
// not parse is returned unchanged.
func FormatDateFR(iso string) string {
	t, err := time.Parse(ISODate, iso)
	if err != nil {
		return iso
	}
	return monday.Format(t, "2 January 2006", monday.LocaleFrFR)
}
