// Package hybrid composes the one interactive page: static markup with a
// placeholder element and a loader script that mounts the resolved module
// into it at runtime. Everything browser-side is progressive enhancement;
// the only build-time failure mode is an unresolved bundle, which aborts
// the run upstream.
package hybrid

import (
	"html/template"
	"strings"
	texttemplate "text/template"

	"github.com/marcinsydor/sitegen/internal/assets"
	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
	"github.com/marcinsydor/sitegen/internal/render"
)

// PlaceholderID is the element the loader script mounts into.
const PlaceholderID = "contact-form-placeholder"

// Page describes the interactive page to compose.
type Page struct {
	Site         render.Site
	Nav          []render.NavItem
	Bundle       assets.Bundle
	Marker       string // Mount entry point exported by the script module
	ContactEmail string // Shown in the browser-side fallback message
}

type bodyData struct {
	PlaceholderID string
	ScriptHref    string
	BinaryHref    string
	Marker        string
	ContactEmail  string
}

// The body is rendered with text/template: every interpolated value is a
// build input (resolved artifact names, the owner's own contact email),
// and the loader script must reference the script path byte-for-byte.
var bodyTmpl = texttemplate.Must(texttemplate.New("contact").Parse(`<div class="contact-container">
        <header class="contact-header">
            <h1 class="contact-title">Contact Me</h1>
            <p class="contact-subtitle">Get in touch! This form is progressively enhanced with a compiled module.</p>
        </header>

        <div class="contact-form-section">
            <h2>Send a Message</h2>
            <div id="{{.PlaceholderID}}" class="contact-form-placeholder">
                <p>Loading the interactive contact form...</p>
            </div>
        </div>
    </div>

<script type="module">
    const placeholder = document.getElementById('{{.PlaceholderID}}');
    try {
        const mod = await import('{{.ScriptHref}}');
        if (typeof mod.default === 'function') {
            await mod.default();
        }
        mod['{{.Marker}}']();
    } catch (error) {
        placeholder.innerHTML =
            '<div class="contact-form-error">' +
            '<h3>Contact form failed to load</h3>' +
            '<p>Please refresh the page{{if .ContactEmail}} or email me directly at <a href="mailto:{{.ContactEmail}}">{{.ContactEmail}}</a>{{end}}.</p>' +
            '</div>';
    }
</script>

<noscript>
    <div class="noscript-notice">
        <p>This page requires JavaScript for the interactive contact form.</p>
    </div>
</noscript>`))

var headTmpl = texttemplate.Must(texttemplate.New("contact-head").Parse(
	`<link rel="preload" as="script" href="{{.ScriptHref}}" crossorigin>
    <link rel="preload" as="fetch" href="{{.BinaryHref}}" crossorigin>`))

// Compose renders the interactive page document referencing the resolved
// bundle under /assets/.
func Compose(p Page) (string, error) {
	data := bodyData{
		PlaceholderID: PlaceholderID,
		ScriptHref:    "/assets/" + p.Bundle.Script,
		BinaryHref:    "/assets/" + p.Bundle.Binary,
		Marker:        p.Marker,
		ContactEmail:  p.ContactEmail,
	}

	body, err := execute(bodyTmpl, data)
	if err != nil {
		return "", err
	}
	head, err := execute(headTmpl, data)
	if err != nil {
		return "", err
	}

	meta := render.Meta{
		Title:       "Contact - " + p.Site.Title,
		Description: "Get in touch with me through this interactive contact form",
		Path:        "/contact",
	}
	return render.Document(p.Site, meta, p.Nav, body, head)
}

func execute(t *texttemplate.Template, data bodyData) (template.HTML, error) {
	var sb strings.Builder
	if err := t.Execute(&sb, data); err != nil {
		return "", sgerrors.Wrap(err, sgerrors.StageCompose, "loader template execution failed")
	}
	return template.HTML(sb.String()), nil
}
