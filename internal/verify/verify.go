// Package verify checks a generated output tree after a build: every page
// must parse as HTML with a doctype and a non-empty title, and every
// internal link or asset reference must resolve to a file inside the tree.
package verify

import (
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"golang.org/x/net/html"

	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
)

// Problem describes one finding in a generated page.
type Problem struct {
	Page    string // Page path relative to the output root
	Message string
}

func (p Problem) String() string {
	return fmt.Sprintf("%s: %s", p.Page, p.Message)
}

// Run verifies every .html file under outputDir. It returns a BuildError
// with StageVerify listing the findings when any page is malformed or any
// internal reference is broken.
func Run(outputDir string) error {
	if _, err := os.Stat(outputDir); err != nil {
		return sgerrors.Wrap(err, sgerrors.StageVerify, "output directory not found")
	}

	var problems []Problem
	err := filepath.WalkDir(outputDir, func(p string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".html") {
			return nil
		}
		rel, err := filepath.Rel(outputDir, p)
		if err != nil {
			return err
		}
		problems = append(problems, checkPage(outputDir, rel)...)
		return nil
	})
	if err != nil {
		return sgerrors.Wrap(err, sgerrors.StageVerify, "failed to walk output tree")
	}

	if len(problems) > 0 {
		msgs := make([]string, len(problems))
		for i, p := range problems {
			msgs[i] = p.String()
		}
		return sgerrors.New(sgerrors.StageVerify, fmt.Sprintf("%d problem(s) found", len(problems))).
			WithContext("problems", msgs)
	}
	return nil
}

func checkPage(outputDir, rel string) []Problem {
	var problems []Problem

	data, err := os.ReadFile(filepath.Join(outputDir, rel))
	if err != nil {
		return []Problem{{Page: rel, Message: fmt.Sprintf("unreadable: %v", err)}}
	}

	if !strings.HasPrefix(strings.ToLower(strings.TrimSpace(string(data))), "<!doctype") {
		problems = append(problems, Problem{Page: rel, Message: "missing doctype"})
	}

	doc, err := html.Parse(strings.NewReader(string(data)))
	if err != nil {
		return append(problems, Problem{Page: rel, Message: fmt.Sprintf("unparsable: %v", err)})
	}

	if title := textOf(find(doc, "title")); strings.TrimSpace(title) == "" {
		problems = append(problems, Problem{Page: rel, Message: "missing or empty title"})
	}

	for _, ref := range internalRefs(doc) {
		if !resolves(outputDir, rel, ref) {
			problems = append(problems, Problem{Page: rel, Message: fmt.Sprintf("broken internal reference: %s", ref)})
		}
	}
	return problems
}

// internalRefs extracts href/src values pointing inside the site.
func internalRefs(doc *html.Node) []string {
	var refs []string
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			for _, attr := range n.Attr {
				if attr.Key != "href" && attr.Key != "src" {
					continue
				}
				if isInternal(attr.Val) {
					refs = append(refs, attr.Val)
				}
			}
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(doc)
	return refs
}

func isInternal(ref string) bool {
	if ref == "" || strings.HasPrefix(ref, "#") || strings.HasPrefix(ref, "//") {
		return false
	}
	if strings.Contains(ref, "://") || strings.HasPrefix(ref, "mailto:") || strings.HasPrefix(ref, "data:") {
		return false
	}
	return true
}

// resolves reports whether ref points at an existing file in the tree.
// Route-style links ("/about") resolve through their index file.
func resolves(outputDir, page, ref string) bool {
	if i := strings.IndexAny(ref, "?#"); i >= 0 {
		ref = ref[:i]
	}
	if ref == "" {
		return true
	}

	var target string
	if strings.HasPrefix(ref, "/") {
		target = strings.TrimPrefix(ref, "/")
	} else {
		target = path.Join(path.Dir(filepath.ToSlash(page)), ref)
	}

	full := filepath.Join(outputDir, filepath.FromSlash(target))
	if info, err := os.Stat(full); err == nil {
		if !info.IsDir() {
			return true
		}
		_, err := os.Stat(filepath.Join(full, "index.html"))
		return err == nil
	}
	// "/about" style route without trailing slash
	_, err := os.Stat(filepath.Join(full, "index.html"))
	return err == nil
}

func find(n *html.Node, element string) *html.Node {
	if n.Type == html.ElementNode && n.Data == element {
		return n
	}
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if found := find(c, element); found != nil {
			return found
		}
	}
	return nil
}

func textOf(n *html.Node) string {
	if n == nil {
		return ""
	}
	var sb strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			sb.WriteString(c.Data)
		}
	}
	return sb.String()
}
