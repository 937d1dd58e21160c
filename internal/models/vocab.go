package models

import "strings"

// Colors is the hold-colour palette used to tag a climb.
var Colors = []string{"Red", "Orange", "Yellow", "Green", "Blue", "Purple", "Pink", "White", "Black", "Grey", "Teal", "Brown"}

// Styles is the fixed wall/hold style vocabulary.
var Styles = []string{"Slab", "Overhang", "Vertical", "Roof", "Arete", "Dyno", "Comp Style", "Crimpy", "Juggy", "Techy"}

// NormalizeColor returns the canonical palette spelling, or "" if unknown.
func NormalizeColor(input string) string {
	if strings.EqualFold(strings.TrimSpace(input), "gray") {
		return "Grey"
	}
	return lookupFold(input, Colors)
}

// NormalizeStyle returns the canonical style spelling, or "" if unknown.
// Dashes and underscores count as spaces so "comp-style" matches.
func NormalizeStyle(input string) string {
	s := strings.NewReplacer("-", " ", "_", " ").Replace(input)
	return lookupFold(s, Styles)
}

func lookupFold(input string, vocab []string) string {
	s := strings.TrimSpace(input)
	for _, v := range vocab {
		if strings.EqualFold(v, s) {
			return v
		}
	}
	return ""
}
