package main

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/kong"
	"github.com/fwojciec/novelex"
	"github.com/fwojciec/novelex/crawl"
	"github.com/fwojciec/novelex/dateparse"
	"github.com/fwojciec/novelex/extract"
	"github.com/fwojciec/novelex/fs"
	"github.com/fwojciec/novelex/goquery"
	"github.com/fwojciec/novelex/html"
	"github.com/fwojciec/novelex/htmltomarkdown"
	nxhttp "github.com/fwojciec/novelex/http"
	"github.com/fwojciec/novelex/lightnovelwp"
	"github.com/fwojciec/novelex/madara"
	"github.com/fwojciec/novelex/rod"
	nxslog "github.com/fwojciec/novelex/slog"
	"github.com/fwojciec/novelex/sqlite"
	"github.com/fwojciec/novelex/yaml"
)

func main() {
	ctx := context.Background()

	m := NewMain()

	if err := m.Run(ctx, os.Args[1:], os.Stdout, os.Stderr); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// Main represents the program.
type Main struct {
	// Database path. Set before calling Run().
	DBPath string

	// Optional site catalog replacing the built-in one.
	SitesPath string

	// SQLite database used by SQLite service implementations.
	DB *sqlite.DB

	// Fetcher overrides the network transport shared by all sources.
	// Used for end-to-end testing.
	Fetcher novelex.Fetcher

	// Services for end-to-end testing.
	WorkService       novelex.WorkService
	PreferenceService novelex.PreferenceService
}

// NewMain returns a new instance of Main with defaults.
func NewMain() *Main {
	return &Main{
		DBPath:    defaultDBPath(),
		SitesPath: os.Getenv("NOVELEX_SITES"),
	}
}

// Close gracefully stops the program.
func (m *Main) Close() error {
	if m.DB != nil {
		return m.DB.Close()
	}
	return nil
}

// Run executes the CLI with the given arguments.
func (m *Main) Run(ctx context.Context, args []string, stdout, stderr io.Writer) error {
	deps := &Dependencies{
		Ctx:    ctx,
		Stdout: stdout,
		Stderr: stderr,
	}

	cli := &CLI{}
	parser, err := kong.New(cli,
		kong.Name("novelex"),
		kong.Description("Browse and download novels from template-driven sites."),
		kong.Writers(stdout, stderr),
		kong.Exit(func(int) {}), // Don't exit on help
		kong.Bind(deps),
	)
	if err != nil {
		return fmt.Errorf("failed to create parser: %w", err)
	}

	if len(args) == 0 {
		_, _ = parser.Parse([]string{"--help"})
		return fmt.Errorf("no command specified. Run 'novelex --help' to see available commands")
	}

	cmd := args[0]
	if cmd == "help" || cmd == "--help" || cmd == "-h" {
		_, _ = parser.Parse([]string{"--help"})
		return nil
	}

	kongCtx, err := parser.Parse(args)
	if err != nil {
		return err
	}

	m.DB = sqlite.NewDB(m.DBPath)
	if err := m.DB.Open(); err != nil {
		fmt.Fprintf(stderr, "Hint: Set NOVELEX_DB to use a different database path\n")
		return fmt.Errorf("failed to open database at %q: %w", m.DBPath, err)
	}
	defer m.Close()

	var logger *slog.Logger
	if cli.Debug {
		logger = slog.New(slog.NewTextHandler(stderr, nil))
	}

	m.WorkService = sqlite.NewWorkService(m.DB)
	m.PreferenceService = sqlite.NewPreferenceService(m.DB)
	deps.DB = m.DB
	deps.Works = m.WorkService
	deps.Preferences = m.PreferenceService
	deps.NewConverter = func(baseURL string) novelex.Converter {
		return htmltomarkdown.NewConverter(htmltomarkdown.WithDomain(baseURL))
	}
	deps.NewStore = func(dir, name string) ChapterStore {
		return fs.NewWriter(dir, name)
	}

	keywords, err := yaml.DefaultKeywords()
	if err != nil {
		return fmt.Errorf("failed to load keywords: %w", err)
	}

	sites, err := m.loadSites()
	if err != nil {
		fmt.Fprintf(stderr, "Hint: Check the site catalog at NOVELEX_SITES\n")
		return err
	}

	fetcher := m.Fetcher
	if fetcher == nil {
		fetcher = newFetcher(logger)
		defer fetcher.Close()
	}

	var registry novelex.SourceRegistry = crawl.NewRegistry()
	for _, site := range sites {
		registry.Register(newSource(site, fetcher, keywords, m.PreferenceService))
	}
	if logger != nil {
		registry = nxslog.NewLoggingRegistry(registry, logger)
	}
	deps.Sources = registry

	return kongCtx.Run(deps)
}

// family is what the program knows about one site family: how to build
// its grammar and where its listings and chapter bodies sit in the markup.
type family struct {
	grammar novelex.GrammarBuilder
	listing goquery.ListingLayout
	content string
}

var families = map[novelex.Family]family{
	novelex.FamilyLightNovelWP: {
		grammar: lightnovelwp.NewGrammar,
		listing: goquery.ArticleLayout,
		content: goquery.DefaultContentSelector,
	},
	novelex.FamilyMadara: {
		grammar: madara.NewGrammar,
		listing: goquery.MadaraLayout,
		content: madara.ContentSelector,
	},
}

// loadSites reads the site catalog from SitesPath, or the built-in one.
func (m *Main) loadSites() ([]*novelex.Site, error) {
	builders := make(map[novelex.Family]novelex.GrammarBuilder, len(families))
	for name, f := range families {
		builders[name] = f.grammar
	}
	if m.SitesPath == "" {
		return yaml.DefaultSites(builders)
	}

	f, err := os.Open(m.SitesPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open site catalog: %w", err)
	}
	defer f.Close()
	return yaml.LoadSites(f, builders)
}

// newFetcher builds the transport shared by all sources. Plain HTTP is
// tried first; a headless browser is launched only when a site answers
// with a bot challenge. Each attempt waits on the per-domain rate limit.
func newFetcher(logger *slog.Logger) novelex.Fetcher {
	var fetcher novelex.Fetcher = crawl.NewFallbackFetcher(
		nxhttp.NewFetcher(),
		func() (novelex.Fetcher, error) {
			f, err := rod.NewFetcher()
			if err != nil {
				return nil, fmt.Errorf("failed to start browser: %w", err)
			}
			return f, nil
		},
		goquery.NewTitleReader(),
	)
	if logger != nil {
		fetcher = nxslog.NewLoggingFetcher(fetcher, logger)
	}
	fetcher = crawl.NewLimitedFetcher(fetcher, crawl.NewDomainLimiter(1.0))

	retry := &crawl.RetryFetcher{Fetcher: fetcher}
	if logger != nil {
		retry.Logger = func(format string, args ...any) {
			logger.Warn(strings.TrimSpace(fmt.Sprintf(format, args...)))
		}
	}
	return retry
}

// newSource composes the extraction pipeline for one site.
func newSource(site *novelex.Site, fetcher novelex.Fetcher, keywords *novelex.Keywords, prefs novelex.PreferenceService) *crawl.Source {
	s := crawl.NewSource(site)
	s.Fetcher = fetcher
	s.Tokenizer = html.NewTokenizer()
	s.Extractor = extract.NewExtractor(keywords)
	s.Normalizer = extract.NewNormalizer(dateparse.NewNormalizer(keywords))
	f := families[site.Family]
	s.Listings = goquery.NewListingParser(f.listing)
	s.Content = goquery.NewContentExtractor(f.content)
	s.Titles = goquery.NewTitleReader()
	s.Preferences = prefs
	return s
}

func defaultDBPath() string {
	if path := os.Getenv("NOVELEX_DB"); path != "" {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "novelex.db"
	}
	dir := filepath.Join(home, ".novelex")
	_ = os.MkdirAll(dir, 0755)
	return filepath.Join(dir, "novelex.db")
}
