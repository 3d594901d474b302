// Package site orchestrates a generation run: render every static route,
// resolve and compose the interactive page, write the route-mirroring
// output tree and copy assets. Strictly sequential, single pass; any
// failing step aborts the whole run.
package site

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/marcinsydor/sitegen/internal/assets"
	"github.com/marcinsydor/sitegen/internal/config"
	"github.com/marcinsydor/sitegen/internal/content"
	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
	"github.com/marcinsydor/sitegen/internal/hybrid"
	"github.com/marcinsydor/sitegen/internal/manifest"
	"github.com/marcinsydor/sitegen/internal/render"
)

// Options controls a single run.
type Options struct {
	OutputDir       string // Overrides config output directory when set
	SkipInteractive bool   // Build everything except the interactive page
}

// Assembler owns one generation run. The output directory is exclusively
// owned by the run; no concurrent writer is assumed.
type Assembler struct {
	cfg *config.Config
}

// New creates an assembler for the given configuration.
func New(cfg *config.Config) *Assembler {
	return &Assembler{cfg: cfg}
}

func (a *Assembler) outputDir(opts Options) string {
	if opts.OutputDir != "" {
		return opts.OutputDir
	}
	return a.cfg.Output.Directory
}

// ManifestPath returns where the run manifest for an output directory is
// written. It lives next to the tree, not inside it, keeping re-runs
// byte-identical.
func ManifestPath(outputDir string) string {
	return filepath.Clean(outputDir) + ".manifest.json"
}

// Run executes a full generation pass and returns the run manifest.
func (a *Assembler) Run(opts Options) (*manifest.Manifest, error) {
	started := time.Now()
	man := manifest.New()
	outDir := a.outputDir(opts)

	slog.Info("Starting site generation", "output", outDir, "run_id", man.ID)

	if err := a.prepareOutput(outDir); err != nil {
		return nil, err
	}

	profile := content.LoadProfile(a.cfg.Content.Profile)
	posts, err := content.LoadPosts(a.cfg.Content.BlogDir)
	if err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.StageContent, "failed to load blog posts")
	}

	routes := Routes(posts)
	nav := render.Nav(Paths(routes))
	siteMeta := a.siteMeta()

	for _, route := range routes {
		if route.Interactive {
			continue
		}
		doc, err := a.renderRoute(route, siteMeta, nav, profile, posts)
		if err != nil {
			return nil, err
		}
		if err := a.writePage(outDir, route.Path, doc, man); err != nil {
			return nil, err
		}
	}

	if opts.SkipInteractive {
		slog.Info("Skipping interactive page generation")
	} else {
		if err := a.composeInteractive(outDir, siteMeta, nav, profile, man); err != nil {
			return nil, err
		}
	}

	if err := a.copyStaticAssets(outDir); err != nil {
		return nil, err
	}

	man.Finish(manifest.StatusSuccess, started)
	if err := man.Write(ManifestPath(outDir)); err != nil {
		return nil, sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to write run manifest")
	}

	slog.Info("Site generation complete",
		"output", outDir,
		"pages", len(man.Pages),
		"duration", time.Since(started).Round(time.Millisecond))
	return man, nil
}

// ComposeInteractive resolves the bundle and writes only the interactive
// page into an existing output tree.
func (a *Assembler) ComposeInteractive(opts Options) error {
	outDir := a.outputDir(opts)
	if _, err := os.Stat(outDir); err != nil {
		return sgerrors.Wrap(err, sgerrors.StageFileSystem, "output directory not found; run a full build first").
			WithContext("dir", outDir)
	}

	profile := content.LoadProfile(a.cfg.Content.Profile)
	posts, err := content.LoadPosts(a.cfg.Content.BlogDir)
	if err != nil {
		return sgerrors.Wrap(err, sgerrors.StageContent, "failed to load blog posts")
	}

	nav := render.Nav(Paths(Routes(posts)))
	return a.composeInteractive(outDir, a.siteMeta(), nav, profile, manifest.New())
}

// siteMeta maps the configured site section onto the renderer's site-wide
// values.
func (a *Assembler) siteMeta() render.Site {
	return render.Site{
		Title:       a.cfg.Site.Title,
		Description: a.cfg.Site.Description,
		Author:      a.cfg.Site.Author,
		BaseURL:     strings.TrimRight(a.cfg.Site.BaseURL, "/"),
	}
}

// Publish copies the generated tree verbatim to a publish directory.
func (a *Assembler) Publish(opts Options, dest string) error {
	outDir := a.outputDir(opts)
	if _, err := os.Stat(outDir); err != nil {
		return sgerrors.Wrap(err, sgerrors.StagePublish, "nothing to publish; output directory not found").
			WithContext("dir", outDir)
	}
	slog.Info("Publishing site", "from", outDir, "to", dest)
	if err := assets.CopyDir(outDir, dest); err != nil {
		return sgerrors.Wrap(err, sgerrors.StagePublish, "failed to copy output tree")
	}
	return nil
}

func (a *Assembler) prepareOutput(outDir string) error {
	if a.cfg.Output.Clean {
		if err := os.RemoveAll(outDir); err != nil {
			return sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to clean output directory").
				WithContext("dir", outDir)
		}
	}
	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to create output directory").
			WithContext("dir", outDir)
	}
	return nil
}

func (a *Assembler) renderRoute(route Route, siteMeta render.Site, nav []render.NavItem, profile content.Profile, posts []content.Post) (string, error) {
	switch {
	case route.Path == "/":
		return render.Home(siteMeta, nav)
	case route.Path == "/about":
		return render.About(siteMeta, nav, profile)
	default:
		for i := range posts {
			if route.Path == fmt.Sprintf("/blog/%d", posts[i].ID) {
				var prev, next *content.Post
				if i > 0 {
					prev = &posts[i-1]
				}
				if i < len(posts)-1 {
					next = &posts[i+1]
				}
				return render.BlogPost(siteMeta, nav, posts[i], prev, next)
			}
		}
		return "", sgerrors.New(sgerrors.StageRender, "no renderer for route").
			WithContext("route", route.Path)
	}
}

func (a *Assembler) composeInteractive(outDir string, siteMeta render.Site, nav []render.NavItem, profile content.Profile, man *manifest.Manifest) error {
	bundle, err := assets.Resolve(a.cfg.Modules.Dir, assets.Contract{
		ScriptPrefix: a.cfg.Modules.ScriptPrefix,
		Marker:       a.cfg.Modules.Marker,
	})
	if err != nil {
		return err
	}
	slog.Info("Resolved interactive bundle", "script", bundle.Script, "binary", bundle.Binary)

	doc, err := hybrid.Compose(hybrid.Page{
		Site:         siteMeta,
		Nav:          nav,
		Bundle:       bundle,
		Marker:       a.cfg.Modules.Marker,
		ContactEmail: profile.Contact.Email,
	})
	if err != nil {
		return err
	}
	if err := a.writePage(outDir, InteractiveRoute, doc, man); err != nil {
		return err
	}
	man.SetBundle(bundle.Script, bundle.Binary)

	// The resolved pair ships with the site, names preserved exactly.
	assetsDir := filepath.Join(outDir, "assets")
	if err := os.MkdirAll(assetsDir, 0o755); err != nil {
		return sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to create assets directory")
	}
	for _, name := range []string{bundle.Script, bundle.Binary} {
		src := filepath.Join(a.cfg.Modules.Dir, name)
		if err := assets.CopyFile(src, filepath.Join(assetsDir, name)); err != nil {
			return sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to copy bundle file").
				WithContext("file", name)
		}
	}
	return nil
}

func (a *Assembler) writePage(outDir, route, doc string, man *manifest.Manifest) error {
	rel := OutputPath(route)
	target := filepath.Join(outDir, rel)
	if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
		return sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to create page directory").
			WithContext("route", route)
	}
	if err := os.WriteFile(target, []byte(doc), 0o644); err != nil {
		return sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to write page").
			WithContext("route", route)
	}
	man.AddPage(route, rel, []byte(doc))
	slog.Debug("Generated page", "route", route, "path", rel)
	return nil
}

func (a *Assembler) copyStaticAssets(outDir string) error {
	src := a.cfg.Content.Assets
	if _, err := os.Stat(src); os.IsNotExist(err) {
		slog.Debug("Static assets directory not found, skipping copy", "dir", src)
		return nil
	}
	if err := assets.CopyDir(src, filepath.Join(outDir, "assets")); err != nil {
		return sgerrors.Wrap(err, sgerrors.StageFileSystem, "failed to copy static assets")
	}
	return nil
}
