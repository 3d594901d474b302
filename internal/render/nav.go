package render

import (
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// NavItem is one entry of the inline navigation present on every page.
type NavItem struct {
	Label string
	Href  string
}

var titleCaser = cases.Title(language.English)

// NavLabel derives a display label from a route path: "/" becomes "Home",
// "/about" becomes "About", "/blog/1" becomes "Blog".
func NavLabel(path string) string {
	if path == "/" {
		return "Home"
	}
	seg := strings.Trim(path, "/")
	if i := strings.Index(seg, "/"); i >= 0 {
		seg = seg[:i]
	}
	return titleCaser.String(seg)
}

// Nav builds the navigation list for the given route paths, collapsing
// routes that share a first segment (the blog posts) into one entry.
func Nav(paths []string) []NavItem {
	var items []NavItem
	seen := make(map[string]bool)
	for _, p := range paths {
		label := NavLabel(p)
		if seen[label] {
			continue
		}
		seen[label] = true
		items = append(items, NavItem{Label: label, Href: p})
	}
	return items
}
