package service

import (
	"regexp"
	"strings"
)

// ukMetros are major UK cities recognized anywhere in a free-text address.
// A slice, not a map, so normalization is deterministic when an address
// names more than one metro.
var ukMetros = []string{
	"london",
	"manchester",
	"birmingham",
	"leeds",
	"liverpool",
	"sheffield",
	"bristol",
	"newcastle",
	"nottingham",
	"leicester",
	"coventry",
	"bradford",
	"glasgow",
	"edinburgh",
	"cardiff",
	"belfast",
	"brighton",
	"southampton",
	"portsmouth",
	"oxford",
	"cambridge",
}

// londonBoroughs all normalize to "london" so that an applicant in Hackney
// matches a shelter listed under Camden.
var londonBoroughs = map[string]bool{
	"barking":        true,
	"barnet":         true,
	"bexley":         true,
	"brent":          true,
	"bromley":        true,
	"camden":         true,
	"croydon":        true,
	"ealing":         true,
	"enfield":        true,
	"greenwich":      true,
	"hackney":        true,
	"hammersmith":    true,
	"haringey":       true,
	"harrow":         true,
	"havering":       true,
	"hillingdon":     true,
	"hounslow":       true,
	"islington":      true,
	"kensington":     true,
	"kingston":       true,
	"lambeth":        true,
	"lewisham":       true,
	"merton":         true,
	"newham":         true,
	"redbridge":      true,
	"richmond":       true,
	"southwark":      true,
	"sutton":         true,
	"tower hamlets":  true,
	"waltham forest": true,
	"wandsworth":     true,
	"westminster":    true,
}

// countryTokens are address segments that identify a country rather than a
// city and carry no matching signal.
var countryTokens = map[string]bool{
	"uk":               true,
	"united kingdom":   true,
	"great britain":    true,
	"england":          true,
	"scotland":         true,
	"wales":            true,
	"northern ireland": true,
}

// ukPostcodePattern matches full UK postcodes ("SW1A 1AA") and bare outward
// codes ("SW1A", "M1") so they can be stripped from address segments.
var ukPostcodePattern = regexp.MustCompile(`(?i)\b[A-Z]{1,2}[0-9][0-9A-Z]?(\s*[0-9][A-Z]{2})?\b`)

// NormalizeCity extracts a comparable lowercase city token from a free-text
// address. Recognized metro names win over positional heuristics, London
// boroughs collapse to "london", and otherwise the last non-country,
// non-postcode comma segment is used. Returns "" when no token can be
// derived, which fails the location gate.
func NormalizeCity(location string) string {
	cleaned := strings.ToLower(strings.TrimSpace(location))
	if cleaned == "" {
		return ""
	}

	// Metro and borough names are authoritative wherever they appear. When
	// an address names two metros ("Manchester Road, London") the city comes
	// after the street, so the rightmost occurrence wins.
	best, bestPos := "", -1
	for _, name := range ukMetros {
		if pos := lastWordIndex(cleaned, name); pos > bestPos {
			best, bestPos = name, pos
		}
	}
	if best != "" {
		return best
	}
	for borough := range londonBoroughs {
		if containsWord(cleaned, borough) {
			return "london"
		}
	}

	// Fall back to the last comma segment that is not a postcode or country
	segments := strings.Split(cleaned, ",")
	for i := len(segments) - 1; i >= 0; i-- {
		segment := strings.TrimSpace(ukPostcodePattern.ReplaceAllString(segments[i], ""))
		segment = strings.Trim(segment, " -.")
		if segment == "" || countryTokens[segment] {
			continue
		}
		return segment
	}

	return ""
}

// containsWord reports whether text contains term bounded by non-letters,
// so "londonderry" does not register as "london".
func containsWord(text, term string) bool {
	return lastWordIndex(text, term) >= 0
}

// lastWordIndex returns the start of the rightmost occurrence of term in
// text bounded by non-letters, or -1 when there is none.
func lastWordIndex(text, term string) int {
	found := -1
	idx := 0
	for {
		i := strings.Index(text[idx:], term)
		if i < 0 {
			return found
		}
		start := idx + i
		end := start + len(term)
		beforeOK := start == 0 || !isLetter(text[start-1])
		afterOK := end == len(text) || !isLetter(text[end])
		if beforeOK && afterOK {
			found = start
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'a' && b <= 'z') || (b >= 'A' && b <= 'Z')
}
