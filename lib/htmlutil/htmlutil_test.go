package htmlutil

import (
	"net/url"
	"strings"
	"testing"

	"github.com/PuerkitoBio/goquery"
	"github.com/stretchr/testify/require"
)

func TestNormalizeText(t *testing.T) {
	testCases := []struct {
		in       string
		expected string
	}{
		{in: "  Comm. v.\n\t  Doe  ", expected: "Comm. v. Doe"},
		{in: " Closed ", expected: "Closed"},
		{in: "", expected: ""},
		{in: "a\x00b", expected: "ab"},
	}
	for _, test := range testCases {
		require.Equal(t, test.expected, NormalizeText(test.in))
	}
}

func TestResolveHref(t *testing.T) {
	base, err := url.Parse("https://portal.example.org/DocketSheets/CP.aspx")
	require.NoError(t, err)

	testCases := []struct {
		href     string
		expected string
	}{
		{
			href:     "/DocketSheets/CPReport.ashx?docketNumber=CP-51-CR-0000001-2019",
			expected: "https://portal.example.org/DocketSheets/CPReport.ashx?docketNumber=CP-51-CR-0000001-2019",
		},
		{
			href:     "CourtSummaryReport.ashx?docketNumber=CP-51-CR-0000001-2019",
			expected: "https://portal.example.org/DocketSheets/CourtSummaryReport.ashx?docketNumber=CP-51-CR-0000001-2019",
		},
		{
			href:     "https://other.example.org/x",
			expected: "https://other.example.org/x",
		},
		{href: "", expected: ""},
	}
	for _, test := range testCases {
		resolved, err := ResolveHref(base, test.href)
		require.NoError(t, err)
		require.Equal(t, test.expected, resolved)
	}
}

func TestSelectionText(t *testing.T) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(`
		<table><tr>
			<td><span>Comm. v.</span>
				<span>Doe,&nbsp;John</span></td>
			<td>Closed</td>
		</tr></table>`))
	require.NoError(t, err)

	require.Equal(t, "Comm. v. Doe, John", SelectionText(doc.Find("td").First()))
	require.Equal(t, "Comm. v. Doe, JohnClosed", SelectionText(doc.Find("td")))
	require.Equal(t, "", SelectionText(doc.Find("th")))
}
