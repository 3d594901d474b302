package content

import (
	"bytes"
	"embed"
	"fmt"
	"html/template"
	"io"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/adrg/frontmatter"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	"github.com/yuin/goldmark/parser"
)

//go:embed starter/*.md
var starterPosts embed.FS

// Post is one blog entry: front matter metadata plus the rendered body.
type Post struct {
	ID          int
	Title       string
	Description string
	Date        string
	Body        template.HTML
}

// postMeta is the front matter schema of a blog post file.
type postMeta struct {
	Title       string `yaml:"title"`
	Description string `yaml:"description"`
	Date        string `yaml:"date"`
}

var markdown = goldmark.New(
	goldmark.WithExtensions(extension.GFM),
	goldmark.WithParserOptions(
		parser.WithAutoHeadingID(),
	),
)

// LoadPosts reads all markdown posts from dir, ordered by their numeric
// file name (1.md, 2.md, ...). When the directory does not exist the
// embedded starter posts are used, so a fresh checkout still builds.
func LoadPosts(dir string) ([]Post, error) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		slog.Debug("Blog directory not found, using starter posts", "dir", dir)
		sub, err := fs.Sub(starterPosts, "starter")
		if err != nil {
			return nil, err
		}
		return loadPostsFS(sub)
	}
	return loadPostsFS(os.DirFS(dir))
}

func loadPostsFS(fsys fs.FS) ([]Post, error) {
	entries, err := fs.ReadDir(fsys, ".")
	if err != nil {
		return nil, fmt.Errorf("failed to read blog directory: %w", err)
	}

	var posts []Post
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !strings.HasSuffix(strings.ToLower(name), ".md") {
			continue
		}
		if postID(name) < 0 {
			slog.Warn("Skipping blog post without a numeric file name", "name", name)
			continue
		}

		f, err := fsys.Open(name)
		if err != nil {
			return nil, fmt.Errorf("failed to open post %s: %w", name, err)
		}
		post, err := parsePost(name, f)
		f.Close()
		if err != nil {
			return nil, err
		}
		posts = append(posts, post)
	}

	sort.Slice(posts, func(i, j int) bool { return posts[i].ID < posts[j].ID })
	return posts, nil
}

func parsePost(name string, r io.Reader) (Post, error) {
	var meta postMeta
	body, err := frontmatter.Parse(r, &meta)
	if err != nil {
		return Post{}, fmt.Errorf("failed to parse front matter of %s: %w", name, err)
	}

	var buf bytes.Buffer
	if err := markdown.Convert(body, &buf); err != nil {
		return Post{}, fmt.Errorf("failed to render %s: %w", name, err)
	}

	id := postID(name)
	if meta.Title == "" {
		meta.Title = fmt.Sprintf("Blog Post %d", id)
	}
	if meta.Description == "" {
		meta.Description = fmt.Sprintf("Blog post number %d", id)
	}

	return Post{
		ID:          id,
		Title:       meta.Title,
		Description: meta.Description,
		Date:        meta.Date,
		Body:        template.HTML(buf.String()),
	}, nil
}

// postID derives the post number from the file name. The number is the
// post's route segment (/blog/N), so a non-numeric name has no route and
// yields -1.
func postID(name string) int {
	base := strings.TrimSuffix(filepath.Base(name), filepath.Ext(name))
	if id, err := strconv.Atoi(base); err == nil && id >= 0 {
		return id
	}
	return -1
}
