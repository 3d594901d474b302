// Package config loads the site configuration from YAML, expanding
// environment variables and applying defaults so that a bare config file
// still produces a buildable site.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config represents the generator configuration.
type Config struct {
	Site    SiteConfig    `yaml:"site"`
	Content ContentConfig `yaml:"content"`
	Modules ModulesConfig `yaml:"modules"`
	Output  OutputConfig  `yaml:"output"`
}

// SiteConfig carries site-wide metadata used by every rendered page.
type SiteConfig struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description,omitempty"`
	BaseURL     string `yaml:"base_url,omitempty"`
	Author      string `yaml:"author,omitempty"`
}

// ContentConfig locates the content sources.
type ContentConfig struct {
	Dir     string `yaml:"dir"`     // Root content directory
	Profile string `yaml:"profile"` // JSON payload for the about page
	BlogDir string `yaml:"blog"`    // Markdown blog posts
	Assets  string `yaml:"assets"`  // Static assets copied verbatim
}

// ModulesConfig describes the naming contract of the upstream module
// compiler whose output the resolver scans. The contract is external: names
// are preserved exactly as produced.
type ModulesConfig struct {
	Dir          string `yaml:"dir"`           // Directory holding compiled script/binary files
	ScriptPrefix string `yaml:"script_prefix"` // File name prefix of the script entry
	Marker       string `yaml:"marker"`        // Required export the script entry must contain
}

// OutputConfig represents output configuration.
type OutputConfig struct {
	Directory string `yaml:"directory"`
	Clean     bool   `yaml:"clean"` // Clean output directory before build
}

// Load loads configuration from the specified file.
func Load(configPath string) (*Config, error) {
	loadEnvFiles()

	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("configuration file not found: %s", configPath)
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	// Expand environment variables in the YAML content
	expandedData := os.ExpandEnv(string(data))

	var config Config
	if err := yaml.Unmarshal([]byte(expandedData), &config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	config.applyDefaults()
	return &config, nil
}

// Default returns a configuration with all defaults applied, used when no
// config file is given.
func Default() *Config {
	c := &Config{}
	c.applyDefaults()
	return c
}

func (c *Config) applyDefaults() {
	if c.Site.Title == "" {
		c.Site.Title = "Personal Site"
	}
	if c.Site.Description == "" {
		c.Site.Description = "A statically generated personal website"
	}
	if c.Content.Dir == "" {
		c.Content.Dir = "content"
	}
	if c.Content.Profile == "" {
		c.Content.Profile = "content/about.json"
	}
	if c.Content.BlogDir == "" {
		c.Content.BlogDir = "content/blog"
	}
	if c.Content.Assets == "" {
		c.Content.Assets = "assets"
	}
	if c.Modules.Dir == "" {
		c.Modules.Dir = "dist/assets"
	}
	if c.Modules.ScriptPrefix == "" {
		c.Modules.ScriptPrefix = "site_app"
	}
	if c.Modules.Marker == "" {
		c.Modules.Marker = "mount_contact_component"
	}
	if c.Output.Directory == "" {
		c.Output.Directory = "./public"
		c.Output.Clean = true
	}
}

// Init creates a new configuration file with example content.
func Init(configPath string, force bool) error {
	if _, err := os.Stat(configPath); err == nil && !force {
		return fmt.Errorf("configuration file already exists: %s (use --force to overwrite)", configPath)
	}

	example := Config{
		Site: SiteConfig{
			Title:       "My Site",
			Description: "Personal website and blog",
			BaseURL:     "https://example.github.io",
			Author:      "Your Name",
		},
		Content: ContentConfig{
			Dir:     "content",
			Profile: "content/about.json",
			BlogDir: "content/blog",
			Assets:  "assets",
		},
		Modules: ModulesConfig{
			Dir:          "dist/assets",
			ScriptPrefix: "site_app",
			Marker:       "mount_contact_component",
		},
		Output: OutputConfig{
			Directory: "./public",
			Clean:     true,
		},
	}

	data, err := yaml.Marshal(&example)
	if err != nil {
		return fmt.Errorf("failed to marshal example config: %w", err)
	}
	if err := os.WriteFile(configPath, data, 0o644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}
	return nil
}
