package site

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/marcinsydor/sitegen/internal/content"
)

// InteractiveRoute is the one route whose page is composed from a resolved
// module bundle instead of being fully rendered at build time.
const InteractiveRoute = "/contact"

// Route is a logical page path in the fixed route list.
type Route struct {
	Path        string
	Interactive bool
}

// Routes builds the fixed route list for a run: the static pages, the
// interactive page and one route per blog post.
func Routes(posts []content.Post) []Route {
	routes := []Route{
		{Path: "/"},
		{Path: "/about"},
		{Path: InteractiveRoute, Interactive: true},
	}
	for _, p := range posts {
		routes = append(routes, Route{Path: fmt.Sprintf("/blog/%d", p.ID)})
	}
	return routes
}

// Paths returns just the path strings, in route order.
func Paths(routes []Route) []string {
	paths := make([]string, len(routes))
	for i, r := range routes {
		paths[i] = r.Path
	}
	return paths
}

// OutputPath maps a route to its file path relative to the output root:
// "/" becomes index.html, any other route /seg becomes seg/index.html, so
// direct navigation to a route resolves to a self-contained file.
func OutputPath(route string) string {
	if route == "/" {
		return "index.html"
	}
	return filepath.Join(strings.Trim(route, "/"), "index.html")
}
