// Package prompt renders batches of date records into analysis prompts.
// Rendering is pure text work; nothing here talks to a model.
package prompt

import (
	"fmt"
	"strings"

	"github.com/scrapworks/eolscout/internal/extract"
)

type fileGroup struct {
	name    string
	url     string
	records []extract.DateRecord
}

// groupByFile buckets a batch by source file in first-seen order. The
// group URL comes from the first record; all records of one file share it.
func groupByFile(batch []extract.DateRecord) []fileGroup {
	index := make(map[string]int)
	var groups []fileGroup
	for _, r := range batch {
		i, ok := index[r.SourceFile]
		if !ok {
			i = len(groups)
			index[r.SourceFile] = i
			groups = append(groups, fileGroup{name: r.SourceFile, url: r.SourceURL})
		}
		groups[i].records = append(groups[i].records, r)
	}
	return groups
}

// Render wraps one batch in the full analysis template, with per-file
// SOURCE sections and the no-findings sentinel row instruction.
func Render(batch []extract.DateRecord) string {
	var sections []string
	for _, g := range groupByFile(batch) {
		sections = append(sections,
			fmt.Sprintf("=== SOURCE: %s ===", g.name),
			fmt.Sprintf("URL: %s", g.url),
			"")
		for _, r := range g.records {
			sections = append(sections,
				fmt.Sprintf("Date Found: %s", r.DateText),
				fmt.Sprintf("Context: %s", r.Context),
				"---")
		}
	}
	return fmt.Sprintf(fullTemplate, strings.Join(sections, "\n"))
}

// RenderSimple wraps one batch in the shorter template used by the simple
// pipeline.
func RenderSimple(batch []extract.DateRecord) string {
	var sections []string
	for _, g := range groupByFile(batch) {
		sections = append(sections,
			fmt.Sprintf("=== FILE: %s ===", g.name),
			fmt.Sprintf("URL: %s", g.url),
			"")
		for _, r := range g.records {
			sections = append(sections,
				fmt.Sprintf("Date: %s", r.DateText),
				fmt.Sprintf("Context: %s", r.Context),
				"---")
		}
	}
	return fmt.Sprintf(simpleTemplate, strings.Join(sections, "\n"))
}

const fullTemplate = `You are analyzing text from web scraping to identify business-critical dates. Below are text snippets containing various dates. Your task is to identify and categorize dates that relate to product lifecycle, support, or business operations.

TEXT TO ANALYZE:
%s

TASK: Analyze each date found and determine if it relates to any of these categories:
1. End of Life (EOL) - When product stops being manufactured
2. End of Sales (EOS) - Last date for purchasing
3. End of Service/Support - When support/service ends
4. End of Security Updates - When security patches stop
5. Last Order Date - Final date to place orders
6. Retirement/Discontinuation Date - When product is retired
7. Migration Deadline - When users must migrate to new solution
8. Contract Expiration - When agreements/licenses expire
9. Other Business Critical Dates - Any other important business dates

For each relevant date you identify, provide:
- Product/service name if mentioned
- The exact date
- Category (from list above)
- Source context (brief quote showing how date was mentioned)
- URL (from the source file)
- Confidence level (High/Medium/Low)

IMPORTANT:
- Only include dates that appear to be business/product related
- Ignore random dates, publication dates, or irrelevant timestamps
- If a date's purpose is unclear, mark confidence as "Low"
- If no relevant dates are found, respond with a single row: "No business-critical dates identified","","","","",""

RESPOND IN CSV FORMAT:
"product","date","category","context","url","confidence"

Provide only the CSV data rows, no headers or additional text.`

const simpleTemplate = `Analyze the text below and identify business-critical dates. Look for dates related to:

1. End of Life (EOL) - Product manufacturing stops
2. End of Sales (EOS) - Last purchase date
3. End of Service/Support - Support ends
4. End of Security Updates - Security patches stop
5. Last Order Date - Final ordering deadline
6. Retirement/Discontinuation - Product retirement
7. Migration Deadline - Must migrate by this date
8. Contract/License Expiration - Agreements expire
9. Other Business Critical Dates

TEXT TO ANALYZE:
%s

For each business-relevant date found, provide:
- Product/service name (if mentioned)
- Exact date
- Category (from list above)
- Context quote
- URL (from the source file)
- Confidence (High/Medium/Low)

Ignore: publication dates, random timestamps, non-business dates

RESPOND IN CSV FORMAT:
"product","date","category","context","url","confidence"

Provide only the CSV data rows, no headers or additional text.`
