package scrape

import (
	"regexp"
	"strings"
)

const (
	vendorUnknown = "Unknown"
	dateNotFound  = "Not Found"
)

// PageInfo is one scraped page's contribution to the run summary.
type PageInfo struct {
	VendorName   string `json:"vendor_name"`
	EndOfSales   string `json:"end_of_sales"`
	EndOfLife    string `json:"end_of_life"`
	EndOfService string `json:"end_of_service"`
	URL          string `json:"url"`
	Filename     string `json:"filename"`
	Model        string `json:"model"`
}

// Lifecycle phrases with a nearby numeric date. Matched against
// lowercased text, so no case flags needed.
var lifecyclePatterns = []*regexp.Regexp{
	regexp.MustCompile(`end.{0,10}of.{0,10}sales?.{0,20}(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`end.{0,10}of.{0,10}life.{0,20}(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`end.{0,10}of.{0,10}service.{0,20}(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`sales?.{0,10}end.{0,20}(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`life.{0,10}end.{0,20}(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
	regexp.MustCompile(`service.{0,10}end.{0,20}(\d{1,2}[/-]\d{1,2}[/-]\d{2,4})`),
}

// ExtractPageInfo pulls vendor identity and lifecycle dates out of
// cleaned page text. Later matches overwrite earlier ones for the same
// milestone.
func ExtractPageInfo(text, model string) PageInfo {
	textLower := strings.ToLower(text)
	modelLower := strings.ToLower(model)

	info := PageInfo{
		VendorName:   vendorUnknown,
		EndOfSales:   dateNotFound,
		EndOfLife:    dateNotFound,
		EndOfService: dateNotFound,
		Model:        model,
	}

	switch {
	case strings.Contains(modelLower, "ibm"):
		info.VendorName = "IBM"
	case strings.Contains(textLower, "dell"):
		info.VendorName = "Dell"
	case strings.Contains(textLower, "hp"), strings.Contains(textLower, "hewlett"):
		info.VendorName = "HP/HPE"
	}

	for _, p := range lifecyclePatterns {
		for _, m := range p.FindAllStringSubmatch(textLower, -1) {
			date := m[1]
			switch {
			case strings.Contains(m[0], "sales"):
				info.EndOfSales = date
			case strings.Contains(m[0], "life"):
				info.EndOfLife = date
			case strings.Contains(m[0], "service"):
				info.EndOfService = date
			}
		}
	}
	return info
}
