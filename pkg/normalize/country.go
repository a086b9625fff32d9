package normalize

import (
	"strings"
)

// countryAliases maps free-text country aliases (abbreviations, native-
// language names, common misformattings) to fixed ISO country names. The
// classifier is deny-by-default: anything not confidently matched maps to
// "" and is dropped, never passed through as-is, to keep garbage out of the
// canonical store.
var countryAliases = map[string]string{
	// United States
	"us":                       "United States",
	"usa":                      "United States",
	"u.s.":                     "United States",
	"u.s.a.":                   "United States",
	"united states":            "United States",
	"united states of america": "United States",
	"america":                  "United States",
	"美国":                       "United States",

	// United Kingdom
	"uk":             "United Kingdom",
	"u.k.":           "United Kingdom",
	"gb":             "United Kingdom",
	"great britain":  "United Kingdom",
	"united kingdom": "United Kingdom",
	"england":        "United Kingdom",
	"英国":             "United Kingdom",

	// China
	"cn":              "China",
	"prc":             "China",
	"china":           "China",
	"mainland china":  "China",
	"people's republic of china": "China",
	"中国": "China",

	// Germany
	"de":          "Germany",
	"germany":     "Germany",
	"deutschland": "Germany",
	"德国":          "Germany",

	// France
	"fr":     "France",
	"france": "France",
	"法国":     "France",

	// Japan
	"jp":    "Japan",
	"japan": "Japan",
	"日本":    "Japan",

	// South Korea
	"kr":                "South Korea",
	"korea":             "South Korea",
	"south korea":       "South Korea",
	"republic of korea": "South Korea",
	"한국":                "South Korea",
	"대한민국":              "South Korea",

	// Canada
	"ca":     "Canada",
	"canada": "Canada",

	// Australia
	"au":        "Australia",
	"australia": "Australia",

	// Israel
	"il":     "Israel",
	"israel": "Israel",

	// Singapore
	"sg":        "Singapore",
	"singapore": "Singapore",
	"新加坡":       "Singapore",

	// India
	"in":    "India",
	"india": "India",

	// Sweden
	"se":     "Sweden",
	"sweden": "Sweden",

	// Norway
	"no":     "Norway",
	"norway": "Norway",

	// Netherlands
	"nl":              "Netherlands",
	"netherlands":     "Netherlands",
	"the netherlands": "Netherlands",
	"holland":         "Netherlands",

	// Switzerland
	"ch":          "Switzerland",
	"switzerland": "Switzerland",
	"schweiz":     "Switzerland",
}

// countryCodes maps ISO country names to their two-letter codes.
var countryCodes = map[string]string{
	"United States":  "US",
	"United Kingdom": "GB",
	"China":          "CN",
	"Germany":        "DE",
	"France":         "FR",
	"Japan":          "JP",
	"South Korea":    "KR",
	"Canada":         "CA",
	"Australia":      "AU",
	"Israel":         "IL",
	"Singapore":      "SG",
	"India":          "IN",
	"Sweden":         "SE",
	"Norway":         "NO",
	"Netherlands":    "NL",
	"Switzerland":    "CH",
}

// Country maps a free-text country value to an ISO country name, or returns
// "" when the input cannot be confidently matched. Job-listing fragments and
// other noise therefore drop out instead of polluting the canonical store.
func Country(raw string) string {
	key := strings.ToLower(strings.TrimSpace(raw))
	if key == "" {
		return ""
	}
	return countryAliases[key]
}

// CountryCode returns the two-letter code for an ISO country name produced
// by Country, or "" when unknown.
func CountryCode(country string) string {
	return countryCodes[strings.TrimSpace(country)]
}
