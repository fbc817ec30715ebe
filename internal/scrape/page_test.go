package scrape

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestPageText(t *testing.T) {
	html := `<html><head><script>var x = 1;</script><style>.a{}</style></head>` +
		`<body><nav>Home | About</nav><h1>IBM x3650 M4</h1>` +
		`<p>End of support: 15/01/2026!</p><footer>(c) 2025</footer></body></html>`
	require.Equal(t, "IBM x3650 M4 End of support: 15/01/2026", PageText(html))
}

func TestPageTextMultilineScript(t *testing.T) {
	html := "<script type=\"text/javascript\">\nvar a = 1;\nvar b = 2;\n</script><p>kept text</p>"
	require.Equal(t, "kept text", PageText(html))
}

func TestPageTextKeepsDatesAndLinks(t *testing.T) {
	in := "<p>Support ends 2026-03-31, see https://example.com/eol.</p>"
	require.Equal(t, "Support ends 2026-03-31 see https://example.com/eol.", PageText(in))
}

func TestNormalizeToken(t *testing.T) {
	require.Equal(t, "ibmx3650m4", normalizeToken("IBM x3650 M4"))
	require.Equal(t, "ibmx3650m4", normalizeToken("ibm-x3650/m4"))
	require.Equal(t, "", normalizeToken("  --  "))
}
