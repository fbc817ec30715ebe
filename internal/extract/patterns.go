package extract

// Pattern is one named date-like regular expression. List order matters:
// earlier patterns claim positions first and nearby later hits are
// suppressed, so the more specific shapes come before the catch-alls.
type Pattern struct {
	Name  string
	Regex string
}

const monthNames = `(?:Jan|Feb|Mar|Apr|May|Jun|Jul|Aug|Sep|Oct|Nov|Dec)`

// DefaultPatterns covers the date shapes that show up on vendor lifecycle
// pages. No calendar validation happens here; "Feb 31 2024" is a valid
// syntactic match.
func DefaultPatterns() []Pattern {
	return []Pattern{
		{Name: "numeric_dmy", Regex: `\b\d{1,2}[/-]\d{1,2}[/-]\d{2,4}\b`},
		{Name: "numeric_ymd", Regex: `\b\d{4}[/-]\d{1,2}[/-]\d{1,2}\b`},
		{Name: "day_month_year", Regex: `\b\d{1,2}\s+` + monthNames + `\w*\s+\d{2,4}\b`},
		{Name: "month_day_year", Regex: `\b` + monthNames + `\w*\s+\d{1,2},?\s+\d{2,4}\b`},
		{Name: "month_year", Regex: `\b` + monthNames + `\w*\s+\d{2,4}\b`},
		{Name: "quarter", Regex: `\bQ[1-4]\s+\d{4}\b`},
		{Name: "fiscal_year", Regex: `\b(?:FY|CY)\s*\d{2,4}\b`},
		{Name: "bare_year", Regex: `\b20\d{2}\b`},
		{Name: "iso_timestamp", Regex: `\b\d{4}-\d{2}-\d{2}T?\d{0,2}:?\d{0,2}:?\d{0,2}\b`},
		{Name: "relative_period", Regex: `\b(?:early|mid|late)\s+20\d{2}\b`},
		{Name: "season_year", Regex: `\b(?:spring|summer|fall|winter|autumn)\s+20\d{2}\b`},
		{Name: "end_of_period", Regex: `\b(?:end\s+of|by\s+end\s+of)\s+\w+\s+\d{4}\b`},
	}
}
