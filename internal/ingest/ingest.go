// Package ingest turns a job-posting URL or local file into the plain text
// the analyzer scores. Static HTTP with goquery extraction first; a headless
// browser render kicks in when the static pass finds too little text, which
// is what JavaScript-rendered job boards produce.
package ingest

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"go.uber.org/zap"

	"github.com/jonathan/resume-analyzer/internal/logging"
)

// Defaults for ingestion
const (
	DefaultTimeout        = 30 * time.Second
	DefaultBrowserTimeout = 60 * time.Second
	DefaultUserAgent      = "Mozilla/5.0 (compatible; ResumeAnalyzer/1.0)"

	// DefaultMinTextLen is the extracted-text length below which a page is
	// treated as JavaScript-rendered and handed to the browser pass
	DefaultMinTextLen = 500
)

// ErrNoContent means neither the static nor the browser pass found
// readable text at the URL.
var ErrNoContent = errors.New("no readable text at URL")

// jobSelectors are tried in order for the posting body before falling back
// to the whole document body
var jobSelectors = []string{
	".job-description",
	".job-content",
	"#job-description",
	"#job-content",
	".posting-content",
	".job-details",
	"[data-testid='job-description']",
	"main",
	"article",
	".content",
	"#content",
}

// noiseSelectors are stripped before extraction
const noiseSelectors = "nav, footer, header, script, style, noscript, form, .ad, .advertisement, .ads, .sidebar, .cookie-banner, .popup"

// Options configures an Ingestor. Zero values select the defaults;
// Browser enables the headless fallback, which needs a local Chrome.
type Options struct {
	Timeout        time.Duration
	BrowserTimeout time.Duration
	UserAgent      string
	MinTextLen     int
	Browser        bool
}

// Ingestor fetches job descriptions.
type Ingestor struct {
	opts   Options
	client *http.Client
	logger *zap.Logger
}

// New builds an ingestor.
func New(opts Options, logger *zap.Logger) *Ingestor {
	if opts.Timeout <= 0 {
		opts.Timeout = DefaultTimeout
	}
	if opts.BrowserTimeout <= 0 {
		opts.BrowserTimeout = DefaultBrowserTimeout
	}
	if opts.UserAgent == "" {
		opts.UserAgent = DefaultUserAgent
	}
	if opts.MinTextLen <= 0 {
		opts.MinTextLen = DefaultMinTextLen
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Ingestor{
		opts:   opts,
		client: &http.Client{Timeout: opts.Timeout},
		logger: logger,
	}
}

// JobText fetches a posting URL and returns its readable text. A static
// fetch runs first; when it yields less than MinTextLen characters and the
// browser fallback is enabled, the page is rendered headless and
// re-extracted, keeping whichever pass found more.
func (g *Ingestor) JobText(ctx context.Context, rawURL string) (string, error) {
	parsed, err := url.Parse(rawURL)
	if err != nil || parsed.Scheme == "" || parsed.Host == "" {
		return "", fmt.Errorf("invalid job URL %q", rawURL)
	}

	html, err := g.fetch(ctx, rawURL)
	if err != nil {
		return "", err
	}
	text, err := ExtractJobText(html)
	if err != nil {
		return "", fmt.Errorf("extracting text from %s: %w", rawURL, err)
	}

	if g.thin(text) && g.opts.Browser {
		g.logger.Info("static fetch too thin, rendering with browser",
			zap.String("url", rawURL),
			zap.Int("chars", len(text)))
		rendered, renderErr := renderPage(ctx, rawURL, g.opts.BrowserTimeout)
		if renderErr != nil {
			g.logger.Warn("browser render failed, keeping static text",
				zap.String("url", rawURL),
				zap.Error(renderErr))
		} else if renderedText, extractErr := ExtractJobText(rendered); extractErr == nil && len(renderedText) > len(text) {
			text = renderedText
		}
	}

	if strings.TrimSpace(text) == "" {
		return "", fmt.Errorf("%w: %s", ErrNoContent, rawURL)
	}
	if g.thin(text) {
		g.logger.Warn("job posting text is short, scores may be unreliable",
			zap.String("url", rawURL),
			zap.Int("chars", len(text)),
			zap.String("preview", logging.Truncate(text, 120)))
	}
	return text, nil
}

// ReadDocument loads a resume or job description from disk. HTML files are
// run through the same extraction as fetched pages; anything else is read
// as plain text.
func ReadDocument(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", path, err)
	}
	content := string(data)
	if isHTMLFile(path) {
		text, err := ExtractJobText(content)
		if err != nil {
			return "", fmt.Errorf("extracting text from %s: %w", path, err)
		}
		return text, nil
	}
	return content, nil
}

func isHTMLFile(path string) bool {
	lower := strings.ToLower(path)
	return strings.HasSuffix(lower, ".html") || strings.HasSuffix(lower, ".htm")
}

func (g *Ingestor) thin(text string) bool {
	return len(strings.TrimSpace(text)) < g.opts.MinTextLen
}

func (g *Ingestor) fetch(ctx context.Context, rawURL string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return "", fmt.Errorf("building request for %s: %w", rawURL, err)
	}
	req.Header.Set("User-Agent", g.opts.UserAgent)

	resp, err := g.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("fetching %s: %w", rawURL, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("fetching %s: HTTP status %d", rawURL, resp.StatusCode)
	}
	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("reading %s: %w", rawURL, err)
	}
	return string(body), nil
}

// ExtractJobText parses HTML and returns the posting's readable text.
// Noise elements are stripped, the job-board selectors are tried in order,
// and the document body is the last resort.
func ExtractJobText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parsing HTML: %w", err)
	}
	doc.Find(noiseSelectors).Remove()

	var content *goquery.Selection
	for _, selector := range jobSelectors {
		if sel := doc.Find(selector); sel.Length() > 0 {
			content = sel.First()
			break
		}
	}
	if content == nil {
		content = doc.Find("body")
	}
	return collapseWhitespace(content.Text()), nil
}

// collapseWhitespace trims every line and drops the blank ones
func collapseWhitespace(text string) string {
	lines := strings.Split(text, "\n")
	cleaned := make([]string, 0, len(lines))
	for _, line := range lines {
		if line = strings.TrimSpace(line); line != "" {
			cleaned = append(cleaned, line)
		}
	}
	return strings.Join(cleaned, "\n")
}
