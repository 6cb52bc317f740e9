package crawl

import (
	"fmt"
	"strconv"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/novelex"
)

// Hash fingerprints the fields of a work that a reader would notice
// changing. Sync compares it with the stored hash to skip unchanged works.
func Hash(w *novelex.Work) string {
	d := xxhash.New()
	write := func(s string) {
		_, _ = d.WriteString(s)
		_, _ = d.Write([]byte{0})
	}

	write(w.Name)
	write(w.Cover)
	write(w.Summary)
	write(w.Author)
	write(w.Artist)
	write(string(w.Status))
	for _, g := range w.Genres {
		write(g)
	}
	if w.Rating != nil {
		write(strconv.FormatFloat(*w.Rating, 'f', -1, 64))
	}
	for _, ch := range w.Chapters {
		write(ch.Path)
		write(ch.Name)
		write(ch.ReleaseTime)
		write(strconv.Itoa(ch.Number))
		write(strconv.FormatBool(ch.Locked))
	}
	return fmt.Sprintf("%x", d.Sum64())
}

// TruncateURL shortens a URL for display, keeping the end which is more informative.
func TruncateURL(url string, maxLen int) string {
	if maxLen <= 0 {
		return ""
	}
	if maxLen < 4 {
		// Too short for "..." prefix, just return dots
		return url[:min(len(url), maxLen)]
	}
	if len(url) <= maxLen {
		return url
	}
	return "..." + url[len(url)-maxLen+3:]
}

// FormatBytes formats bytes in human-readable form.
func FormatBytes(bytes int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)
	switch {
	case bytes >= MB:
		return fmt.Sprintf("%.1f MB", float64(bytes)/float64(MB))
	case bytes >= KB:
		return fmt.Sprintf("%.1f KB", float64(bytes)/float64(KB))
	default:
		return fmt.Sprintf("%d B", bytes)
	}
}
