// Package util provides common formatting helpers used across the analyser.
package util

import (
	"fmt"
	"strings"
)

// UnescapeClanTag converts the escaped clan-tag markup embedded in player
// names to plain text. Tags arrive as "&lt;TAG&gt;<sp/>Name".
func UnescapeClanTag(s string) string {
	s = strings.ReplaceAll(s, "&lt;", "<")
	s = strings.ReplaceAll(s, "&gt;", ">")
	return strings.ReplaceAll(s, "<sp/>", " ")
}

// FormatSupply renders a supply pair for display, e.g. "42/200".
func FormatSupply(used, cap int32) string {
	return fmt.Sprintf("%d/%d", used, cap)
}

// FormatResources renders a mineral/vespene pair for display.
func FormatResources(minerals, vespene int32) string {
	return fmt.Sprintf("%d minerals, %d gas", minerals, vespene)
}

// MapLink builds the Liquipedia URL for a map title. Spaces become
// underscores; the ".SC2Map" suffix is dropped if the title carries one.
func MapLink(title string) string {
	title = strings.TrimSuffix(title, ".SC2Map")
	title = strings.ReplaceAll(title, " ", "_")
	return "https://liquipedia.net/starcraft2/" + title
}
