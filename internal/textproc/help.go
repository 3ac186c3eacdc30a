package textproc

import "strings"

// Phrases that mark a comment as help-seeking. Deliberately naive
// substring matching over the lowercased text; "confus" and "struggl"
// catch the inflected forms.
var helpMarkers = []string{
	"help",
	"question",
	"?",
	"dunno",
	"n't know",
	"confus",
	"struggl",
	"lost",
	"stuck",
	"know how",
}

func IsHelpRequest(text string) bool {
	lower := strings.ToLower(text)
	for _, marker := range helpMarkers {
		if strings.Contains(lower, marker) {
			return true
		}
	}
	return false
}
