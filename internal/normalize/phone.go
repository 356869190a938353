package normalize

import (
	"github.com/nyaruka/phonenumbers"
)

const defaultRegion = "BR"

// formatPhone renders a parseable, valid number in national format, e.g.
// "(11) 98765-4321". Other values are returned unchanged.
func formatPhone(s string) string {
	if s == "" {
		return s
	}
	num, err := phonenumbers.Parse(s, defaultRegion)
	if err != nil || !phonenumbers.IsValidNumber(num) {
		return s
	}
	if phonenumbers.GetRegionCodeForNumber(num) != defaultRegion {
		return phonenumbers.Format(num, phonenumbers.INTERNATIONAL)
	}
	return phonenumbers.Format(num, phonenumbers.NATIONAL)
}
