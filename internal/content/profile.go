// Package content loads the build-time content sources: the profile JSON
// payload backing the about page and the markdown blog posts. Content
// defects (missing or malformed optional fields) are recovered with
// fallback values and never abort a build.
package content

import (
	"encoding/json"
	"log/slog"
	"os"
)

// Fallback values substituted for absent profile fields. The strings must
// survive HTML escaping unchanged so rendered pages contain them verbatim.
const (
	FallbackName  = "Site Author"
	FallbackTitle = "Software Engineer"
	FallbackBio   = "The author of this site has not written a bio yet."
)

// Profile is the semantic content of the about page, loaded once per run
// and read-only thereafter.
type Profile struct {
	Name       string       `json:"name"`
	Title      string       `json:"title"`
	Location   string       `json:"location"`
	Bio        string       `json:"bio"`
	Skills     []string     `json:"skills"`
	Experience []Experience `json:"experience"`
	Interests  []string     `json:"interests"`
	Contact    Contact      `json:"contact"`
	Updated    string       `json:"updated"`
}

// Experience is one entry of the work history list.
type Experience struct {
	Position    string `json:"position"`
	Company     string `json:"company"`
	Duration    string `json:"duration"`
	Description string `json:"description"`
}

// Contact carries the contact-info record.
type Contact struct {
	Email   string `json:"email"`
	Website string `json:"website"`
	GitHub  string `json:"github"`
}

// LoadProfile reads the profile payload from path. A missing or malformed
// payload is a content defect, not a build failure: the returned profile
// always has non-empty required fields, substituting fallbacks where the
// source is silent.
func LoadProfile(path string) Profile {
	var p Profile

	data, err := os.ReadFile(path)
	if err != nil {
		slog.Warn("Profile payload not readable, using fallback content", "path", path, "error", err)
		return p.withFallbacks()
	}

	if err := json.Unmarshal(data, &p); err != nil {
		slog.Warn("Profile payload malformed, using fallback content", "path", path, "error", err)
		return Profile{}.withFallbacks()
	}

	return p.withFallbacks()
}

// withFallbacks substitutes defaults for absent required fields. Optional
// lists stay empty; the renderer omits their sections entirely.
func (p Profile) withFallbacks() Profile {
	if p.Name == "" {
		p.Name = FallbackName
	}
	if p.Title == "" {
		p.Title = FallbackTitle
	}
	if p.Bio == "" {
		p.Bio = FallbackBio
	}
	if p.Skills == nil {
		p.Skills = []string{}
	}
	if p.Experience == nil {
		p.Experience = []Experience{}
	}
	if p.Interests == nil {
		p.Interests = []string{}
	}
	return p
}
