package roadgraph

import (
	"strings"
	"unicode"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// suffixTable maps every spelling of a street type to its full form.
type suffixTable map[string]string

var suffixTables = map[language.Base]suffixTable{
	language.MustParseBase("en"): {
		"st": "street", "street": "street",
		"ave": "avenue", "av": "avenue", "avenue": "avenue",
		"rd": "road", "road": "road",
		"blvd": "boulevard", "boulevard": "boulevard",
		"dr": "drive", "drive": "drive",
		"ln": "lane", "lane": "lane",
		"ct": "court", "court": "court",
		"pl": "place", "place": "place",
		"hwy": "highway", "highway": "highway",
		"pkwy": "parkway", "parkway": "parkway",
		"ter": "terrace", "terrace": "terrace",
		"cir": "circle", "circle": "circle",
		"way": "way",
	},
	language.MustParseBase("de"): {
		"str": "straße", "strasse": "straße", "straße": "straße",
		"weg": "weg", "pl": "platz", "platz": "platz",
		"allee": "allee", "gasse": "gasse",
	},
}

// German street types are usually glued onto the name ("Hauptstraße").
var compoundSuffixes = map[language.Base][]string{
	language.MustParseBase("de"): {"straße", "strasse", "str", "weg", "platz", "allee", "gasse"},
}

// SuffixStandardizer folds case for the locale and normalizes street type
// suffixes from a small per-language table. Unknown languages use English.
type SuffixStandardizer struct{}

var _ Standardizer = SuffixStandardizer{}

// Standardize returns the canonical form of name for the given mode.
func (SuffixStandardizer) Standardize(locale language.Tag, name string, mode StandardizeMode) string {
	base, _ := locale.Base()
	table, ok := suffixTables[base]
	if !ok {
		base = language.MustParseBase("en")
		table = suffixTables[base]
	}

	lower := cases.Lower(locale).String(name)
	words := strings.FieldsFunc(lower, func(r rune) bool {
		return unicode.IsSpace(r) || r == '.' || r == ','
	})
	if len(words) == 0 {
		return ""
	}

	switch mode {
	case FullName:
		for i, w := range words {
			if full, ok := table[w]; ok {
				words[i] = full
			}
		}
	case BaseName:
		last := words[len(words)-1]
		if _, ok := table[last]; ok && len(words) > 1 {
			words = words[:len(words)-1]
		} else {
			for _, suffix := range compoundSuffixes[base] {
				if len(last) > len(suffix) && strings.HasSuffix(last, suffix) {
					words[len(words)-1] = strings.TrimSuffix(last, suffix)
					break
				}
			}
		}
	}
	return strings.Join(words, " ")
}
