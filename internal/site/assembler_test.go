package site

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/marcinsydor/sitegen/internal/assets"
	"github.com/marcinsydor/sitegen/internal/config"
	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
	"github.com/marcinsydor/sitegen/internal/manifest"
)

// testConfig builds a config rooted in temp directories with a complete
// content source: profile payload, two posts, one static asset and a
// modules directory holding a stale and a current bundle.
func testConfig(t *testing.T) *config.Config {
	t.Helper()
	root := t.TempDir()

	blogDir := filepath.Join(root, "content", "blog")
	require.NoError(t, os.MkdirAll(blogDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(blogDir, "1.md"), []byte("---\ntitle: One\n---\n\nFirst post.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(blogDir, "2.md"), []byte("---\ntitle: Two\n---\n\nSecond post.\n"), 0o644))

	profile := `{"name":"A","title":"B","skills":["x","y"],"experience":[],"interests":[],"contact":{"email":"a@b.c"}}`
	require.NoError(t, os.WriteFile(filepath.Join(root, "content", "about.json"), []byte(profile), 0o644))

	assetsDir := filepath.Join(root, "assets")
	require.NoError(t, os.MkdirAll(filepath.Join(assetsDir, "styling"), 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(assetsDir, "styling", "main.css"), []byte("body {}"), 0o644))

	modulesDir := filepath.Join(root, "dist", "assets")
	require.NoError(t, os.MkdirAll(modulesDir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(modulesDir, "bundle-abc.js"), []byte("stale build"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(modulesDir, "bundle-def.js"), []byte("export function mount_contact_component() {}"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(modulesDir, "bundle-def_bg.wasm"), []byte("\x00asm"), 0o644))

	cfg := config.Default()
	cfg.Site.Title = "Test Site"
	cfg.Content.Profile = filepath.Join(root, "content", "about.json")
	cfg.Content.BlogDir = blogDir
	cfg.Content.Assets = assetsDir
	cfg.Modules.Dir = modulesDir
	cfg.Modules.ScriptPrefix = "bundle"
	cfg.Modules.Marker = "mount_contact_component"
	cfg.Output.Directory = filepath.Join(root, "public")
	cfg.Output.Clean = true
	return cfg
}

func readPage(t *testing.T, outDir, rel string) string {
	t.Helper()
	data, err := os.ReadFile(filepath.Join(outDir, rel))
	require.NoError(t, err)
	return string(data)
}

func TestRun_GeneratesRouteMirroringTree(t *testing.T) {
	cfg := testConfig(t)
	man, err := New(cfg).Run(Options{})
	require.NoError(t, err)

	out := cfg.Output.Directory
	for _, rel := range []string{
		"index.html",
		"about/index.html",
		"contact/index.html",
		"blog/1/index.html",
		"blog/2/index.html",
	} {
		doc := readPage(t, out, rel)
		assert.True(t, len(doc) > 0, rel)
		assert.Contains(t, doc, "<!DOCTYPE html>", rel)
		assert.NotContains(t, doc, "{{", rel)
	}

	assert.Len(t, man.Pages, 5)
	require.NotNil(t, man.Bundle)
	assert.Equal(t, "bundle-def.js", man.Bundle.Script)
}

func TestRun_AboutPageScenario(t *testing.T) {
	cfg := testConfig(t)
	_, err := New(cfg).Run(Options{})
	require.NoError(t, err)

	doc := readPage(t, cfg.Output.Directory, "about/index.html")
	for _, want := range []string{"A", "B", "x", "y", "a@b.c"} {
		assert.Contains(t, doc, want)
	}
}

func TestRun_EmitsConfiguredSiteMetadata(t *testing.T) {
	cfg := testConfig(t)
	cfg.Site.Description = "My corner of the web"
	cfg.Site.Author = "Jan Kowalski"
	cfg.Site.BaseURL = "https://example.test/"

	_, err := New(cfg).Run(Options{})
	require.NoError(t, err)

	home := readPage(t, cfg.Output.Directory, "index.html")
	assert.Contains(t, home, `<meta name="description" content="My corner of the web">`)
	assert.Contains(t, home, `<meta name="author" content="Jan Kowalski">`)

	// Trailing slash in the base URL does not double up in page links
	about := readPage(t, cfg.Output.Directory, "about/index.html")
	assert.Contains(t, about, `<link rel="canonical" href="https://example.test/about">`)
	assert.Contains(t, about, `<meta property="og:url" content="https://example.test/about">`)
}

func TestRun_InteractivePageReferencesResolvedBundle(t *testing.T) {
	cfg := testConfig(t)
	_, err := New(cfg).Run(Options{})
	require.NoError(t, err)

	doc := readPage(t, cfg.Output.Directory, "contact/index.html")
	assert.Contains(t, doc, "/assets/bundle-def.js")
	assert.NotContains(t, doc, "bundle-abc.js")

	// The resolved pair ships inside the assets subtree, names preserved
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "assets", "bundle-def.js"))
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "assets", "bundle-def_bg.wasm"))
	// Static assets are copied too
	assert.FileExists(t, filepath.Join(cfg.Output.Directory, "assets", "styling", "main.css"))
}

func TestRun_SkipInteractive(t *testing.T) {
	cfg := testConfig(t)
	// No modules directory at all: must still succeed when skipping
	cfg.Modules.Dir = filepath.Join(t.TempDir(), "absent")

	man, err := New(cfg).Run(Options{SkipInteractive: true})
	require.NoError(t, err)

	assert.NoFileExists(t, filepath.Join(cfg.Output.Directory, "contact", "index.html"))
	assert.Nil(t, man.Bundle)
}

func TestRun_ResolutionFailureAbortsRun(t *testing.T) {
	cfg := testConfig(t)
	// Remove the conforming script so nothing satisfies the marker check
	require.NoError(t, os.Remove(filepath.Join(cfg.Modules.Dir, "bundle-def.js")))

	_, err := New(cfg).Run(Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, assets.ErrNoConformingScript))
	assert.True(t, sgerrors.IsStage(err, sgerrors.StageResolve))

	// All-or-nothing: no manifest recorded for the failed run
	assert.NoFileExists(t, ManifestPath(cfg.Output.Directory))
}

func TestRun_Idempotent(t *testing.T) {
	cfg := testConfig(t)

	out1 := filepath.Join(t.TempDir(), "a")
	out2 := filepath.Join(t.TempDir(), "b")
	_, err := New(cfg).Run(Options{OutputDir: out1})
	require.NoError(t, err)
	_, err = New(cfg).Run(Options{OutputDir: out2})
	require.NoError(t, err)

	var files []string
	require.NoError(t, filepath.WalkDir(out1, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, _ := filepath.Rel(out1, path)
			files = append(files, rel)
		}
		return nil
	}))
	require.NotEmpty(t, files)

	for _, rel := range files {
		a, err := os.ReadFile(filepath.Join(out1, rel))
		require.NoError(t, err)
		b, err := os.ReadFile(filepath.Join(out2, rel))
		require.NoError(t, err)
		assert.Equal(t, a, b, rel)
	}
}

func TestRun_WritesManifestOutsideTree(t *testing.T) {
	cfg := testConfig(t)
	man, err := New(cfg).Run(Options{})
	require.NoError(t, err)

	got, err := manifest.Read(ManifestPath(cfg.Output.Directory))
	require.NoError(t, err)
	assert.Equal(t, man.ID, got.ID)
	assert.Equal(t, manifest.StatusSuccess, got.Status)

	assert.NoFileExists(t, filepath.Join(cfg.Output.Directory, filepath.Base(ManifestPath(cfg.Output.Directory))))
}

func TestComposeInteractive_RequiresExistingOutput(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Directory = filepath.Join(t.TempDir(), "never-built")

	err := New(cfg).ComposeInteractive(Options{})
	require.Error(t, err)
	assert.True(t, sgerrors.IsStage(err, sgerrors.StageFileSystem))
}

func TestComposeInteractive_IntoExistingTree(t *testing.T) {
	cfg := testConfig(t)
	_, err := New(cfg).Run(Options{SkipInteractive: true})
	require.NoError(t, err)

	require.NoError(t, New(cfg).ComposeInteractive(Options{}))
	doc := readPage(t, cfg.Output.Directory, "contact/index.html")
	assert.Contains(t, doc, "/assets/bundle-def.js")
}

func TestPublish(t *testing.T) {
	cfg := testConfig(t)
	_, err := New(cfg).Run(Options{})
	require.NoError(t, err)

	dest := filepath.Join(t.TempDir(), "publish")
	require.NoError(t, New(cfg).Publish(Options{}, dest))
	assert.FileExists(t, filepath.Join(dest, "index.html"))
	assert.FileExists(t, filepath.Join(dest, "about", "index.html"))
}

func TestPublish_NothingBuilt(t *testing.T) {
	cfg := testConfig(t)
	cfg.Output.Directory = filepath.Join(t.TempDir(), "never-built")

	err := New(cfg).Publish(Options{}, t.TempDir())
	require.Error(t, err)
	assert.True(t, sgerrors.IsStage(err, sgerrors.StagePublish))
}

func TestOutputPath(t *testing.T) {
	assert.Equal(t, "index.html", OutputPath("/"))
	assert.Equal(t, filepath.Join("about", "index.html"), OutputPath("/about"))
	assert.Equal(t, filepath.Join("blog", "1", "index.html"), OutputPath("/blog/1"))
}
