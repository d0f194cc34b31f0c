package resolver

import (
	"regexp"
	"strings"
)

// AddressPredicate reports whether free text looks like a postal address
// and should be geocoded when text search finds nothing.
type AddressPredicate func(text string) bool

var (
	reLeadingNumber = regexp.MustCompile(`^\d+[A-Za-z]?(?:[-/]\d+[A-Za-z]?)?\b`)

	reStreetKeyword = regexp.MustCompile(`(?i)\b(?:st|street|ave|av|avenue|rd|road|blvd|boulevard|dr|drive|ln|lane|way|ct|court|pl|place|pkwy|parkway|hwy|highway|ter|terrace|cir|circle|sq|square|trl|trail|pike|row|aly|alley|expy|expressway|fwy|freeway)\b\.?`)

	reUnitKeyword = regexp.MustCompile(`(?i)(?:\b(?:apt|apartment|suite|ste|unit|fl|floor|bldg|building|rm|room)\b|#\s*\d)`)

	reTrailingStateZip = regexp.MustCompile(`,\s*[A-Z]{2}(?:\s+\d{5}(?:-\d{4})?)?$`)
)

// LooksLikeAddress is the default AddressPredicate: a leading house number
// and at least one of a street-type keyword, a unit keyword, or a trailing
// ", ST" / ", ST ZIP". Text without a leading number is never an address.
func LooksLikeAddress(text string) bool {
	s := strings.TrimSpace(text)
	if !reLeadingNumber.MatchString(s) {
		return false
	}
	rest := reLeadingNumber.ReplaceAllString(s, "")
	return reStreetKeyword.MatchString(rest) ||
		reUnitKeyword.MatchString(rest) ||
		reTrailingStateZip.MatchString(s)
}
