package roadgraph

import (
	"testing"

	"golang.org/x/text/language"
)

func TestSuffixStandardizer(t *testing.T) {
	s := SuffixStandardizer{}
	tests := []struct {
		locale language.Tag
		name   string
		mode   StandardizeMode
		want   string
	}{
		{language.AmericanEnglish, "Main Street", BaseName, "main"},
		{language.AmericanEnglish, "Main St.", BaseName, "main"},
		{language.AmericanEnglish, "Main St", FullName, "main street"},
		{language.AmericanEnglish, "N Lake Shore Dr", FullName, "n lake shore drive"},
		{language.AmericanEnglish, "Broadway", BaseName, "broadway"},
		{language.AmericanEnglish, "Street", BaseName, "street"},
		{language.German, "Hauptstraße", BaseName, "haupt"},
		{language.German, "Berliner Str.", FullName, "berliner straße"},
		{language.French, "Avenue Road", BaseName, "avenue"},
		{language.AmericanEnglish, "   ", BaseName, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := s.Standardize(tt.locale, tt.name, tt.mode); got != tt.want {
				t.Errorf("Standardize(%q) = %q, want %q", tt.name, got, tt.want)
			}
		})
	}
}
