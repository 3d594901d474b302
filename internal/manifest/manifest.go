// Package manifest records what a generation run produced: the pages
// written with their content hashes and the resolved bundle. The manifest
// is written next to the output tree, not inside it, so that identical
// inputs keep producing byte-identical output trees.
package manifest

import (
	"crypto/sha256"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"
)

// Status values for a completed run.
const (
	StatusSuccess = "success"
	StatusFailed  = "failed"
)

// Manifest is the record of one generation run.
type Manifest struct {
	ID         string    `json:"id"`
	Timestamp  time.Time `json:"timestamp"`
	DurationMS int64     `json:"duration_ms"`
	Status     string    `json:"status"`
	Pages      []Page    `json:"pages"`
	Bundle     *Bundle   `json:"bundle,omitempty"`
}

// Page records one written document.
type Page struct {
	Route  string `json:"route"`
	Path   string `json:"path"` // Output path relative to the output root
	SHA256 string `json:"sha256"`
}

// Bundle records the resolved interactive-page artifacts.
type Bundle struct {
	Script string `json:"script"`
	Binary string `json:"binary"`
}

// New starts a manifest for a run beginning now.
func New() *Manifest {
	return &Manifest{
		ID:        uuid.NewString(),
		Timestamp: time.Now().UTC(),
	}
}

// AddPage records a written page and its content hash.
func (m *Manifest) AddPage(route, path string, content []byte) {
	m.Pages = append(m.Pages, Page{
		Route:  route,
		Path:   path,
		SHA256: fmt.Sprintf("%x", sha256.Sum256(content)),
	})
}

// SetBundle records the resolved bundle pair.
func (m *Manifest) SetBundle(script, binary string) {
	m.Bundle = &Bundle{Script: script, Binary: binary}
}

// Finish stamps the run status and duration.
func (m *Manifest) Finish(status string, started time.Time) {
	m.Status = status
	m.DurationMS = time.Since(started).Milliseconds()
}

// Write persists the manifest as indented JSON.
func (m *Manifest) Write(path string) error {
	data, err := json.MarshalIndent(m, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal manifest: %w", err)
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("failed to write manifest: %w", err)
	}
	return nil
}

// Read loads a previously written manifest.
func Read(path string) (*Manifest, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read manifest: %w", err)
	}
	var m Manifest
	if err := json.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("failed to unmarshal manifest: %w", err)
	}
	return &m, nil
}
