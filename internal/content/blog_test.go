package content

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadPosts_FromDirectory(t *testing.T) {
	dir := t.TempDir()
	post := `---
title: First Post
description: A short post
date: 2025-01-01
---

Hello **world**.
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"), []byte(post), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "2.md"), []byte("---\ntitle: Second\n---\n\nMore.\n"), 0o644))
	// Non-markdown files are ignored
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("x"), 0o644))

	posts, err := LoadPosts(dir)
	require.NoError(t, err)
	require.Len(t, posts, 2)

	assert.Equal(t, 1, posts[0].ID)
	assert.Equal(t, "First Post", posts[0].Title)
	assert.Equal(t, "2025-01-01", posts[0].Date)
	assert.Contains(t, string(posts[0].Body), "<strong>world</strong>")

	assert.Equal(t, 2, posts[1].ID)
	assert.Equal(t, "Second", posts[1].Title)
	// Absent description falls back to a numbered default
	assert.Equal(t, "Blog post number 2", posts[1].Description)
}

func TestLoadPosts_OrderedByID(t *testing.T) {
	dir := t.TempDir()
	for _, name := range []string{"3.md", "1.md", "2.md"} {
		require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte("---\ntitle: T\n---\n\nBody.\n"), 0o644))
	}

	posts, err := LoadPosts(dir)
	require.NoError(t, err)
	require.Len(t, posts, 3)
	assert.Equal(t, []int{1, 2, 3}, []int{posts[0].ID, posts[1].ID, posts[2].ID})
}

func TestLoadPosts_SkipsNonNumericNames(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "1.md"), []byte("---\ntitle: One\n---\n\nBody.\n"), 0o644))
	// Files without a numeric name have no /blog/N route and are skipped;
	// two of them must not collide on a shared ID either.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "draft.md"), []byte("---\ntitle: Draft\n---\n\nBody.\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "notes.md"), []byte("---\ntitle: Notes\n---\n\nBody.\n"), 0o644))

	posts, err := LoadPosts(dir)
	require.NoError(t, err)
	require.Len(t, posts, 1)
	assert.Equal(t, 1, posts[0].ID)

	seen := map[int]bool{}
	for _, p := range posts {
		assert.False(t, seen[p.ID], "duplicate post ID %d", p.ID)
		seen[p.ID] = true
	}
}

func TestLoadPosts_StarterFallback(t *testing.T) {
	posts, err := LoadPosts(filepath.Join(t.TempDir(), "absent"))
	require.NoError(t, err)
	require.Len(t, posts, 3)

	for i, p := range posts {
		assert.Equal(t, i+1, p.ID)
		assert.NotEmpty(t, p.Title)
		assert.True(t, strings.Contains(string(p.Body), "blog post number") || len(p.Body) > 0)
	}
}
