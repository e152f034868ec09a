package validation

import (
	"strings"
	"time"
)

// CanonicalDateFormat is the day/month/4-digit-year form every stored
// birth date is normalized to.
const CanonicalDateFormat = "02/01/2006"

// DateInputFormats are the accepted input layouts, tried in order.
// ISO first, then day-first slash/dash variants, then 2-digit years,
// then month-first fallbacks. The first layout that parses wins.
var DateInputFormats = []string{
	"2006-01-02",
	"02/01/2006",
	"02-01-2006",
	"02/01/06",
	"02-01-06",
	"01/02/2006",
	"01-02-2006",
}

// NormalizeDate parses value against the candidate layouts and returns it
// re-rendered in CanonicalDateFormat. When nothing parses the raw value is
// returned together with ok=false so the caller can reject the field.
func NormalizeDate(value string) (string, bool) {
	value = strings.TrimSpace(value)
	for _, layout := range DateInputFormats {
		if t, err := time.Parse(layout, value); err == nil {
			return t.Format(CanonicalDateFormat), true
		}
	}
	return value, false
}

// ValidCanonicalDate reports whether value is already in canonical form.
func ValidCanonicalDate(value string) bool {
	_, err := time.Parse(CanonicalDateFormat, value)
	return err == nil
}
