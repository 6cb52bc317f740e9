// Package fs writes downloaded chapters to the local file system.
package fs

import (
	"context"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"

	"github.com/fwojciec/novelex"
	"gopkg.in/yaml.v3"
)

// Ensure Writer implements novelex.ChapterWriter at compile time.
var _ novelex.ChapterWriter = (*Writer)(nil)

// Writer writes chapters as Markdown files with YAML frontmatter and
// publishes them atomically. Chapters are written to baseDir/name.tmp and
// moved to baseDir/name on Commit, so a failed download never leaves a
// half-written work behind.
type Writer struct {
	baseDir string
	name    string
}

// NewWriter creates a new Writer.
func NewWriter(baseDir, name string) *Writer {
	return &Writer{
		baseDir: baseDir,
		name:    name,
	}
}

func (w *Writer) tempDir() string {
	return filepath.Join(w.baseDir, w.name+".tmp")
}

func (w *Writer) finalDir() string {
	return filepath.Join(w.baseDir, w.name)
}

// WriteChapter writes one chapter to the temporary directory.
func (w *Writer) WriteChapter(ctx context.Context, doc *novelex.ChapterDocument) error {
	if err := doc.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(w.tempDir(), 0755); err != nil {
		return err
	}

	content, err := FormatChapter(doc)
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(w.tempDir(), ChapterFileName(&doc.Chapter)), []byte(content), 0644)
}

// Commit replaces the final directory with the written chapters.
func (w *Writer) Commit() error {
	if err := os.RemoveAll(w.finalDir()); err != nil {
		return err
	}
	return os.Rename(w.tempDir(), w.finalDir())
}

// Abort discards the written chapters.
func (w *Writer) Abort() error {
	return os.RemoveAll(w.tempDir())
}

// frontmatter is the YAML header of a chapter file.
type frontmatter struct {
	Source     string `yaml:"source,omitempty"`
	Site       string `yaml:"site"`
	Work       string `yaml:"work,omitempty"`
	Title      string `yaml:"title"`
	Chapter    int    `yaml:"chapter,omitempty"`
	Released   string `yaml:"released,omitempty"`
	Locked     bool   `yaml:"locked,omitempty"`
	Downloaded string `yaml:"downloaded"`
}

// FormatChapter formats a chapter with YAML frontmatter.
func FormatChapter(doc *novelex.ChapterDocument) (string, error) {
	header, err := yaml.Marshal(frontmatter{
		Source:     doc.SourceURL,
		Site:       doc.SiteID,
		Work:       doc.WorkName,
		Title:      doc.Chapter.Name,
		Chapter:    doc.Chapter.Number,
		Released:   doc.Chapter.ReleaseTime,
		Locked:     doc.Chapter.Locked,
		Downloaded: doc.FetchedAt.Format("2006-01-02"),
	})
	if err != nil {
		return "", fmt.Errorf("encoding frontmatter: %w", err)
	}

	var b strings.Builder
	b.WriteString("---\n")
	b.Write(header)
	b.WriteString("---\n\n")
	b.WriteString(doc.Content)
	return b.String(), nil
}

// ChapterFileName derives a file name from a chapter's number and the last
// segment of its path, e.g. "0042-solo-leveling-42.md". The zero-padded
// number keeps files in reading order.
func ChapterFileName(ch *novelex.Chapter) string {
	p := ch.Path
	if u, err := url.Parse(p); err == nil {
		p = u.Path
	}
	segments := strings.FieldsFunc(p, func(r rune) bool { return r == '/' })
	slug := "chapter"
	if len(segments) > 0 {
		slug = sanitize(segments[len(segments)-1])
	}
	return fmt.Sprintf("%04d-%s.md", ch.Number, slug)
}

func sanitize(s string) string {
	s = strings.ToLower(s)
	var b strings.Builder
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '-', r == '_':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	if out := strings.Trim(b.String(), "-"); out != "" {
		return out
	}
	return "chapter"
}
