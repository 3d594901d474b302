package render

import (
	"fmt"
	"html/template"

	"github.com/marcinsydor/sitegen/internal/content"
)

var homeTmpl = template.Must(template.New("home").Parse(`<div class="container">
        <h1>Welcome to {{.Site.Title}}</h1>
        <p>This is the home page of my statically generated website.</p>
        <nav>
            <ul>
                <li><a href="/about">Learn about me</a></li>
                <li><a href="/blog/1">Read my blog</a></li>
            </ul>
        </nav>
    </div>`))

// Home renders the home page document.
func Home(site Site, nav []NavItem) (string, error) {
	body, err := renderBody(homeTmpl, struct{ Site Site }{site})
	if err != nil {
		return "", err
	}
	desc := site.Description
	if desc == "" {
		desc = "Welcome to my personal website"
	}
	meta := Meta{
		Title:       "Home - " + site.Title,
		Description: desc,
		Path:        "/",
	}
	return Document(site, meta, nav, body, "")
}

var aboutTmpl = template.Must(template.New("about").Parse(`<div class="about-container">
        <header class="about-header">
            <h1 class="about-name">{{.Name}}</h1>
            <h2 class="about-title">{{.Title}}</h2>
            {{- if .Location}}
            <p class="about-location">{{.Location}}</p>
            {{- end}}
        </header>

        <section class="about-bio-section">
            <h3 class="about-section-title">About Me</h3>
            <p class="about-bio-text">{{.Bio}}</p>
        </section>

        <section class="about-section">
            <h3 class="about-section-title">Skills</h3>
            <div class="skills-grid">
{{- range .Skills}}
                <span class="skill-tag">{{.}}</span>
{{- end}}
            </div>
        </section>

        <section class="about-section">
            <h3 class="about-section-title">Experience</h3>
{{- range .Experience}}
            <div class="experience-card">
                <div class="experience-header">
                    <div>
                        <h4 class="experience-position">{{.Position}}</h4>
                        <p class="experience-company">{{.Company}}</p>
                    </div>
                    <span class="experience-duration">{{.Duration}}</span>
                </div>
                <p class="experience-description">{{.Description}}</p>
            </div>
{{- end}}
        </section>

        <section class="about-section">
            <h3 class="about-section-title">Interests</h3>
            <div class="interests-grid">
{{- range .Interests}}
                <div class="interest-item">{{.}}</div>
{{- end}}
            </div>
        </section>

        <section class="contact-section">
            <h3 class="about-section-title">Contact</h3>
            <div class="contact-grid">
                <div class="contact-item">
                    <a href="mailto:{{.Contact.Email}}" class="contact-link">{{.Contact.Email}}</a>
                </div>
                {{- if .Contact.Website}}
                <div class="contact-item">
                    <a href="{{.Contact.Website}}" target="_blank" class="contact-link">Website</a>
                </div>
                {{- end}}
                {{- if .Contact.GitHub}}
                <div class="contact-item">
                    <a href="https://github.com/{{.Contact.GitHub}}" target="_blank" class="contact-link">GitHub</a>
                </div>
                {{- end}}
            </div>
        </section>

        <footer class="about-footer">
            {{- if .Updated}}
            <p class="footer-updated">Last updated: {{.Updated}}</p>
            {{- end}}
            <p class="footer-note">Generated statically at build time</p>
        </footer>
    </div>`))

// About renders the about page document from the profile payload.
func About(site Site, nav []NavItem, profile content.Profile) (string, error) {
	body, err := renderBody(aboutTmpl, profile)
	if err != nil {
		return "", err
	}
	meta := Meta{
		Title:       "About - " + site.Title,
		Description: "Learn more about me and my work",
		Path:        "/about",
	}
	return Document(site, meta, nav, body, "")
}

type blogPostData struct {
	Post content.Post
	Prev *content.Post
	Next *content.Post
}

var blogTmpl = template.Must(template.New("blog").Parse(`<div class="container">
        <h1>{{.Post.Title}}</h1>
        {{- if .Post.Date}}
        <p class="blog-date">{{.Post.Date}}</p>
        {{- end}}
        <div class="blog-content">
{{.Post.Body}}
            <nav class="blog-nav">
                <a href="/">Back to Home</a>
                {{- if .Prev}}
                <a href="/blog/{{.Prev.ID}}">Previous</a>
                {{- end}}
                {{- if .Next}}
                <a href="/blog/{{.Next.ID}}">Next</a>
                {{- end}}
            </nav>
        </div>
    </div>`))

// BlogPost renders one blog post document with prev/next navigation.
func BlogPost(site Site, nav []NavItem, post content.Post, prev, next *content.Post) (string, error) {
	body, err := renderBody(blogTmpl, blogPostData{Post: post, Prev: prev, Next: next})
	if err != nil {
		return "", err
	}
	meta := Meta{
		Title:       fmt.Sprintf("%s - %s", post.Title, site.Title),
		Description: post.Description,
		Path:        fmt.Sprintf("/blog/%d", post.ID),
	}
	return Document(site, meta, nav, body, "")
}
