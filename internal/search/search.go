package search

import (
	"database/sql"
	"fmt"
	"strings"
	"unicode"

	"github.com/scrapworks/eolscout/internal/catalog"
)

type Result struct {
	SessionID  string
	RecordID   int
	SourceFile string
	DateText   string
	Pattern    string
	SourceURL  string
	CreatedAt  string
	Snippet    string
	Rank       float64
}

type Options struct {
	Query   string
	Run     string // "" = all runs, else one session id
	Pattern string // "" = all, e.g. "numeric_dmy"
	File    string // "" = all, substring of the source file name
	Since   string // "" = no filter, e.g. "2024-01-01"
	Limit   int
}

// containsCJK returns true if the string contains any CJK Unified Ideograph.
func containsCJK(s string) bool {
	for _, r := range s {
		if unicode.Is(unicode.Han, r) {
			return true
		}
	}
	return false
}

// ftsQuote wraps the query as an FTS5 phrase. Date texts are full of
// characters the FTS5 query parser treats as syntax ("/", "-", ":"), so
// the raw user string cannot be passed to MATCH as-is.
func ftsQuote(q string) string {
	return `"` + strings.ReplaceAll(q, `"`, `""`) + `"`
}

// makeSnippet extracts a snippet around the first occurrence of query in text.
func makeSnippet(text, query string, contextChars int) string {
	lower := strings.ToLower(text)
	qLower := strings.ToLower(query)
	idx := strings.Index(lower, qLower)
	if idx < 0 {
		// no match, return head
		if len([]rune(text)) > contextChars*2 {
			return string([]rune(text)[:contextChars*2]) + "..."
		}
		return text
	}
	runes := []rune(text)
	qRunes := []rune(query)
	runePos := len([]rune(text[:idx]))
	start := runePos - contextChars
	if start < 0 {
		start = 0
	}
	end := runePos + len(qRunes) + contextChars
	if end > len(runes) {
		end = len(runes)
	}
	prefix := ""
	suffix := ""
	if start > 0 {
		prefix = "..."
	}
	if end < len(runes) {
		suffix = "..."
	}
	snippet := string(runes[start:runePos]) +
		">>>" + string(runes[runePos:runePos+len(qRunes)]) + "<<<" +
		string(runes[runePos+len(qRunes):end])
	return prefix + snippet + suffix
}

// Search queries recorded date records. FTS handles the common case;
// CJK queries fall back to LIKE because unicode61 does not segment
// ideographs into useful terms.
func Search(db *catalog.DB, opts Options) ([]Result, error) {
	if opts.Limit <= 0 {
		opts.Limit = 100
	}

	// Fetch more results before dedup so we still have enough after
	origLimit := opts.Limit
	opts.Limit = origLimit * 3

	var results []Result
	var err error
	if containsCJK(opts.Query) {
		results, err = searchLike(db, opts)
	} else {
		results, err = searchFTS(db, opts)
	}
	if err != nil {
		return nil, err
	}

	// Deduplicate: the same date on the same page shows up once per
	// recorded run, keep only the best-ranked occurrence
	seen := make(map[string]bool)
	var deduped []Result
	for _, r := range results {
		key := r.SourceFile + "\x00" + r.DateText
		if seen[key] {
			continue
		}
		seen[key] = true
		deduped = append(deduped, r)
		if len(deduped) >= origLimit {
			break
		}
	}
	return deduped, nil
}

func filterConditions(opts Options) ([]string, []interface{}) {
	var conditions []string
	var args []interface{}

	if opts.Run != "" {
		conditions = append(conditions, "r.session_id = ?")
		args = append(args, opts.Run)
	}
	if opts.Pattern != "" {
		conditions = append(conditions, "r.pattern = ?")
		args = append(args, opts.Pattern)
	}
	if opts.File != "" {
		conditions = append(conditions, "r.source_file LIKE ?")
		args = append(args, "%"+opts.File+"%")
	}
	if opts.Since != "" {
		conditions = append(conditions, "u.created_at >= ?")
		args = append(args, opts.Since)
	}
	return conditions, args
}

func searchFTS(db *catalog.DB, opts Options) ([]Result, error) {
	conditions := []string{"records_fts MATCH ?"}
	args := []interface{}{ftsQuote(opts.Query)}

	extra, extraArgs := filterConditions(opts)
	conditions = append(conditions, extra...)
	args = append(args, extraArgs...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			r.session_id,
			r.record_id,
			r.source_file,
			r.date_text,
			r.pattern,
			r.source_url,
			u.created_at,
			snippet(records_fts, 1, '>>>', '<<<', '...', 40) as snip,
			bm25(records_fts, 5.0, 1.0) as rank
		FROM records_fts
		JOIN records r ON records_fts.rowid = r.rowid
		JOIN runs u ON r.session_id = u.session_id
		WHERE %s
		ORDER BY rank
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	return scanResults(rows)
}

func searchLike(db *catalog.DB, opts Options) ([]Result, error) {
	conditions := []string{"(r.date_text LIKE ? OR r.context LIKE ?)"}
	like := "%" + opts.Query + "%"
	args := []interface{}{like, like}

	extra, extraArgs := filterConditions(opts)
	conditions = append(conditions, extra...)
	args = append(args, extraArgs...)

	where := strings.Join(conditions, " AND ")

	query := fmt.Sprintf(`
		SELECT
			r.session_id,
			r.record_id,
			r.source_file,
			r.date_text,
			r.pattern,
			r.source_url,
			u.created_at,
			r.context
		FROM records r
		JOIN runs u ON r.session_id = u.session_id
		WHERE %s
		ORDER BY u.created_at DESC
		LIMIT ?
	`, where)

	args = append(args, opts.Limit)

	rows, err := db.Raw().Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("search query: %w", err)
	}
	defer rows.Close()

	var results []Result
	for rows.Next() {
		var r Result
		var fullContext string
		if err := rows.Scan(
			&r.SessionID, &r.RecordID, &r.SourceFile,
			&r.DateText, &r.Pattern, &r.SourceURL,
			&r.CreatedAt, &fullContext,
		); err != nil {
			return nil, err
		}
		r.Snippet = makeSnippet(fullContext, opts.Query, 30)
		r.Rank = 0
		results = append(results, r)
	}
	return results, rows.Err()
}

func scanResults(rows *sql.Rows) ([]Result, error) {
	var results []Result
	for rows.Next() {
		var r Result
		if err := rows.Scan(
			&r.SessionID, &r.RecordID, &r.SourceFile,
			&r.DateText, &r.Pattern, &r.SourceURL,
			&r.CreatedAt, &r.Snippet, &r.Rank,
		); err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, rows.Err()
}
