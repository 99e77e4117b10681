package utils

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// FoldName returns the case-folded, trimmed form of a display name so that
// names can be compared without regard to case.
func FoldName(name string) string {
	return cases.Fold().String(strings.TrimSpace(name))
}

// EqualNames reports whether two display names match under Unicode case folding.
func EqualNames(a, b string) bool {
	return FoldName(a) == FoldName(b)
}

// TitleCase renders a lower-case tag such as "dumbbell" for display.
func TitleCase(s string) string {
	return cases.Title(language.English).String(strings.ReplaceAll(s, "_", " "))
}
