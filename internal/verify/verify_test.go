package verify

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	sgerrors "github.com/marcinsydor/sitegen/internal/errors"
)

func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	root := t.TempDir()
	for rel, content := range files {
		path := filepath.Join(root, filepath.FromSlash(rel))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	}
	return root
}

const goodPage = `<!DOCTYPE html>
<html lang="en">
<head><title>Home</title></head>
<body><a href="/about">About</a><a href="https://example.com">ext</a><a href="mailto:a@b.c">mail</a></body>
</html>`

func TestRun_CleanTree(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":       goodPage,
		"about/index.html": `<!DOCTYPE html><html><head><title>About</title></head><body><a href="/">Home</a></body></html>`,
	})
	require.NoError(t, Run(root))
}

func TestRun_MissingDoctype(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html": `<html><head><title>T</title></head><body></body></html>`,
	})
	err := Run(root)
	require.Error(t, err)
	assert.True(t, sgerrors.IsStage(err, sgerrors.StageVerify))
	assert.Contains(t, err.Error(), "problem(s) found")
}

func TestRun_EmptyTitle(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html": `<!DOCTYPE html><html><head><title> </title></head><body></body></html>`,
	})
	require.Error(t, Run(root))
}

func TestRun_BrokenInternalLink(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html": `<!DOCTYPE html><html><head><title>T</title></head><body><a href="/missing">gone</a></body></html>`,
	})
	err := Run(root)
	require.Error(t, err)

	var be *sgerrors.BuildError
	require.ErrorAs(t, err, &be)
	problems, ok := be.Context["problems"].([]string)
	require.True(t, ok)
	require.Len(t, problems, 1)
	assert.Contains(t, problems[0], "/missing")
}

func TestRun_AssetReferencesChecked(t *testing.T) {
	page := `<!DOCTYPE html><html><head><title>T</title>
<link rel="stylesheet" href="/assets/styling/main.css"></head>
<body><script src="/assets/bundle-def.js"></script></body></html>`

	root := writeTree(t, map[string]string{
		"index.html":              page,
		"assets/styling/main.css": "body {}",
	})
	// Script is missing from the tree
	err := Run(root)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "1 problem(s) found")

	require.NoError(t, os.WriteFile(filepath.Join(root, "assets", "bundle-def.js"), []byte("x"), 0o644))
	require.NoError(t, Run(root))
}

func TestRun_RouteStyleLinksResolveThroughIndex(t *testing.T) {
	root := writeTree(t, map[string]string{
		"index.html":        `<!DOCTYPE html><html><head><title>T</title></head><body><a href="/blog/1">post</a></body></html>`,
		"blog/1/index.html": `<!DOCTYPE html><html><head><title>P</title></head><body><a href="/">home</a></body></html>`,
	})
	require.NoError(t, Run(root))
}

func TestRun_MissingOutputDir(t *testing.T) {
	err := Run(filepath.Join(t.TempDir(), "absent"))
	require.Error(t, err)
	assert.True(t, sgerrors.IsStage(err, sgerrors.StageVerify))
}
