package scrape

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/scrapworks/eolscout/internal/config"
)

var searchSites = map[string]string{
	"duckduckgo": "https://duckduckgo.com/html/?q=",
	"bing":       "https://www.bing.com/search?q=",
	"yahoo":      "https://search.yahoo.com/search?p=",
}

var defaultVendorSites = []string{
	"https://www.ibm.com/support/pages/search?q=",
	"https://www.ibm.com/docs/search?q=",
}

// enginesFor resolves the configured engine name to the search bases
// to query. Unknown names fall back to duckduckgo rather than failing
// the whole run.
func enginesFor(engine string) []string {
	if engine == "all" {
		return []string{searchSites["duckduckgo"], searchSites["bing"], searchSites["yahoo"]}
	}
	if base, ok := searchSites[engine]; ok {
		return []string{base}
	}
	return []string{searchSites["duckduckgo"]}
}

func searchURL(base, model string) string {
	query := model + " end of life support date"
	return base + strings.ReplaceAll(query, " ", "+")
}

// LoadModels reads one model name per line, skipping blanks.
func LoadModels(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open models file: %w", err)
	}
	defer f.Close()

	var models []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" {
			continue
		}
		models = append(models, line)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("read models file: %w", err)
	}
	return models, nil
}

// Scraper fetches vendor and search-engine pages for hardware models
// and writes any relevant ones into the scrap corpus.
type Scraper struct {
	Client   *Client
	OutDir   string
	MaxChars int
	Delay    time.Duration
	Engines  []string
	Vendors  []string
	Log      *zap.Logger

	now func() time.Time
}

func New(cfg config.ScrapeConfig, outDir string, log *zap.Logger) *Scraper {
	if log == nil {
		log = zap.NewNop()
	}
	return &Scraper{
		Client:   NewClient(time.Duration(cfg.TimeoutSeconds)*time.Second, cfg.Retries, cfg.UserAgent, log),
		OutDir:   outDir,
		MaxChars: cfg.MaxChars,
		Delay:    time.Duration(cfg.DelaySeconds) * time.Second,
		Engines:  enginesFor(cfg.Engine),
		Vendors:  defaultVendorSites,
		Log:      log,
		now:      time.Now,
	}
}

// Stats summarizes one scraping run.
type Stats struct {
	Models      int
	Pages       int
	Skipped     int
	Errors      int
	SummaryPath string
}

// Run scrapes every target page for every model, pausing Delay between
// fetches. Fetch and parse failures are counted, not fatal; a model
// with no relevant page still gets a placeholder entry in the summary
// so the operator knows it was looked for.
func (s *Scraper) Run(ctx context.Context, models []string) (Stats, error) {
	if err := os.MkdirAll(s.OutDir, 0o755); err != nil {
		return Stats{}, fmt.Errorf("create output dir: %w", err)
	}

	stats := Stats{Models: len(models)}
	var entries []PageInfo

	for _, model := range models {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		s.Log.Info("scraping model", zap.String("model", model))

		found := 0
		for _, target := range s.targets(model) {
			entry, err := s.scrapePage(ctx, target, model)
			switch {
			case err != nil:
				if ctx.Err() != nil {
					return stats, ctx.Err()
				}
				stats.Errors++
				s.Log.Warn("page failed", zap.String("url", target), zap.Error(err))
			case entry == nil:
				stats.Skipped++
			default:
				entries = append(entries, *entry)
				stats.Pages++
				found++
			}

			if err := s.sleep(ctx); err != nil {
				return stats, err
			}
		}

		if found == 0 {
			entries = append(entries, placeholderEntry(model))
			s.Log.Warn("no relevant pages", zap.String("model", model))
		}
	}

	path, err := s.writeSummary(entries)
	if err != nil {
		return stats, err
	}
	stats.SummaryPath = path
	return stats, nil
}

func (s *Scraper) targets(model string) []string {
	var urls []string
	for _, base := range s.Vendors {
		urls = append(urls, base+url.QueryEscape(model))
	}
	for _, base := range s.Engines {
		urls = append(urls, searchURL(base, model))
	}
	return urls
}

// scrapePage fetches one URL and writes it to the corpus if the page
// actually mentions the model. Returns nil, nil for irrelevant pages.
func (s *Scraper) scrapePage(ctx context.Context, pageURL, model string) (*PageInfo, error) {
	body, err := s.Client.Fetch(ctx, pageURL)
	if err != nil {
		return nil, err
	}

	text := PageText(string(body))
	if !strings.Contains(normalizeToken(text), normalizeToken(model)) {
		s.Log.Debug("model not mentioned", zap.String("url", pageURL), zap.String("model", model))
		return nil, nil
	}

	path, err := WriteScrap(s.OutDir, pageURL, model, text, s.MaxChars, s.now())
	if err != nil {
		return nil, err
	}

	info := ExtractPageInfo(text, model)
	info.URL = pageURL
	info.Filename = filepath.Base(path)
	s.Log.Info("scraped page",
		zap.String("url", pageURL),
		zap.String("file", info.Filename),
		zap.String("vendor", info.VendorName))
	return &info, nil
}

// placeholderEntry records a model no page could be scraped for, so
// the summary still lists every model that was searched.
func placeholderEntry(model string) PageInfo {
	vendor := vendorUnknown
	if strings.Contains(strings.ToLower(model), "ibm") {
		vendor = "IBM"
	}
	return PageInfo{
		VendorName:   vendor,
		EndOfSales:   "Check vendor site",
		EndOfLife:    "Check vendor site",
		EndOfService: "Check vendor site",
		URL:          "Manual verification required",
		Filename:     "mock_data_" + strings.ReplaceAll(model, " ", "_") + ".txt",
		Model:        model,
	}
}

func (s *Scraper) writeSummary(entries []PageInfo) (string, error) {
	if entries == nil {
		entries = []PageInfo{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal scraping summary: %w", err)
	}
	name := fmt.Sprintf("Scraping_Summary_%s.json", s.now().UTC().Format("20060102_150405"))
	path := filepath.Join(s.OutDir, name)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write scraping summary: %w", err)
	}
	return path, nil
}

func (s *Scraper) sleep(ctx context.Context) error {
	if s.Delay <= 0 {
		return nil
	}
	t := time.NewTimer(s.Delay)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
