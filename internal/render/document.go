// Package render produces complete HTML documents for the site's routes.
// Renderers are pure: content and metadata in, document string out, no I/O.
package render

import (
	"html/template"
	"strings"

	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
)

// Meta is the static page metadata emitted into the document head.
type Meta struct {
	Title       string
	Description string
	Path        string // Route path, used for canonical/og:url links
}

// Site carries site-wide values shared by every page.
type Site struct {
	Title       string
	Description string
	Author      string
	BaseURL     string
}

// shellData is the input of the document shell template.
type shellData struct {
	Site      Site
	Meta      Meta
	Nav       []NavItem
	Body      template.HTML
	HeadExtra template.HTML
}

var shellTmpl = template.Must(template.New("shell").Parse(`<!DOCTYPE html>
<html lang="en">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1">
    <title>{{.Meta.Title}}</title>
    <meta name="description" content="{{.Meta.Description}}">
{{- if .Site.Author}}
    <meta name="author" content="{{.Site.Author}}">
{{- end}}

    <link rel="stylesheet" href="/assets/styling/main.css">
    <link rel="icon" href="/assets/favicon.ico">
{{- if and .Site.BaseURL .Meta.Path}}
    <link rel="canonical" href="{{.Site.BaseURL}}{{.Meta.Path}}">
{{- end}}

    <meta property="og:title" content="{{.Meta.Title}}">
    <meta property="og:description" content="{{.Meta.Description}}">
    <meta property="og:type" content="website">
{{- if and .Site.BaseURL .Meta.Path}}
    <meta property="og:url" content="{{.Site.BaseURL}}{{.Meta.Path}}">
{{- end}}
    <meta name="twitter:card" content="summary">
    <meta name="twitter:title" content="{{.Meta.Title}}">
    <meta name="twitter:description" content="{{.Meta.Description}}">
    {{.HeadExtra}}
</head>
<body>
    <div id="navbar">
{{- range .Nav}}
        <a href="{{.Href}}">{{.Label}}</a>
{{- end}}
    </div>
    <div id="main">{{.Body}}</div>
</body>
</html>
`))

// Document assembles a full standalone HTML document: doctype, head with
// SEO tags, inline navigation and the page body.
func Document(site Site, meta Meta, nav []NavItem, body template.HTML, headExtra template.HTML) (string, error) {
	var sb strings.Builder
	err := shellTmpl.Execute(&sb, shellData{
		Site:      site,
		Meta:      meta,
		Nav:       nav,
		Body:      body,
		HeadExtra: headExtra,
	})
	if err != nil {
		return "", sgerrors.Wrap(err, sgerrors.StageRender, "document shell execution failed")
	}
	return sb.String(), nil
}

// renderBody executes a body template into template.HTML for embedding in
// the shell.
func renderBody(t *template.Template, data any) (template.HTML, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", sgerrors.Wrap(err, sgerrors.StageRender, "body template execution failed").
			WithContext("template", t.Name())
	}
	return template.HTML(sb.String()), nil
}
