package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestExtractPageInfo(t *testing.T) {
	text := "IBM System x3650 M4. End of Life date: 15/01/2026. End of service on 30/06/2027."
	info := ExtractPageInfo(text, "IBM x3650 M4")

	require.Equal(t, "IBM", info.VendorName)
	require.Equal(t, "IBM x3650 M4", info.Model)
	require.Equal(t, "15/01/2026", info.EndOfLife)
	require.Equal(t, "30/06/2027", info.EndOfService)
	require.Equal(t, "Not Found", info.EndOfSales)
}

func TestExtractPageInfoEndOfSales(t *testing.T) {
	info := ExtractPageInfo("End of sales: 01/07/2025", "x")
	require.Equal(t, "01/07/2025", info.EndOfSales)
	require.Equal(t, "Not Found", info.EndOfLife)
}

func TestExtractPageInfoSingularSale(t *testing.T) {
	// The date pattern accepts "sale" but the milestone keyword check
	// wants "sales", so the singular form records nothing.
	info := ExtractPageInfo("end of sale announced 12-31-2025", "IBM x3650")
	require.Equal(t, "Not Found", info.EndOfSales)
}

func TestExtractPageInfoReversedPhrase(t *testing.T) {
	info := ExtractPageInfo("life ends 31/12/2026 for this model", "x")
	require.Equal(t, "31/12/2026", info.EndOfLife)
}

func TestExtractPageInfoVendors(t *testing.T) {
	require.Equal(t, "Dell", ExtractPageInfo("Dell PowerEdge R740 lifecycle", "PowerEdge R740").VendorName)
	require.Equal(t, "HP/HPE", ExtractPageInfo("Hewlett Packard Enterprise support", "ProLiant DL380").VendorName)
	require.Equal(t, "Unknown", ExtractPageInfo("vendor notice", "SuperServer 1029U").VendorName)
}
