package fakeportal

import (
	"fmt"
	"strings"
)

// Row is one case listed in a result table.
type Row struct {
	DocketNumber string
	Caption      string
	FilingDate   string
	Status       string
	OTN          string
	DOB          string
	County       string
	Participants string
}

// Rows makes n rows with docket numbers of the given format, the format
// takes the row's 1-based sequence number.
func Rows(format string, start, n int) []Row {
	rows := make([]Row, n)
	for i := range rows {
		rows[i] = Row{
			DocketNumber: fmt.Sprintf(format, start+i),
			Caption:      fmt.Sprintf("Comm. v. Smith %d", start+i),
			FilingDate:   "01/02/2019",
			Status:       "Closed",
			OTN:          fmt.Sprintf("T%07d", start+i),
			DOB:          "01/01/1970",
			County:       "Allegheny",
			Participants: "Smith, John",
		}
	}
	return rows
}

func pager(target string, pages []int) string {
	if len(pages) == 0 {
		return ""
	}
	var sb strings.Builder
	sb.WriteString(`<div class="pager"><span>1</span>`)
	for _, p := range pages {
		fmt.Fprintf(&sb, `<a href="javascript:__doPostBack(&#39;%s&#39;,&#39;Page$%d&#39;)">%d</a>`, target, p, p)
	}
	sb.WriteString(`</div>`)
	return sb.String()
}

const CPGrid = "ctl00$ctl00$ctl00$cphMain$cphDynamicContent$cphDynamicContent$participantCriteriaControl$searchResultsGridControl$casePager"

// CPResults renders the Common Pleas results panel listing `rows` with
// pager links to `pages`.
func CPResults(rows []Row, pages ...int) string {
	var sb strings.Builder
	sb.WriteString(`<div id="ctl00_ctl00_ctl00_cphMain_cphDynamicContent_cphDynamicContent_participantCriteriaControl_searchResultsGridControl_resultsPanel"><table class="gridView">`)
	for i, r := range rows {
		dn := r.DocketNumber
		fmt.Fprintf(&sb, `<tr>
<td><a href="CPReport.ashx?docketNumber=%s&amp;dnh=abc">Docket Sheet</a>
<a href="/Report/CourtSummaryReport.ashx?docketNumber=%s&amp;dnh=abc">Court Summary</a></td>
<td><span id="ctl%02d_docketNumberLabel">%s</span></td>
<td><span id="ctl%02d_shortCaptionLabel">%s</span></td>
<td><span id="ctl%02d_filingDateLabel">%s</span></td>
<td><span id="ctl%02d_caseStatusNameLabel">%s</span></td>
<td><span id="ctl%02d_otnLabel">%s</span></td>
<td><span id="ctl%02d_DobLabel">%s</span></td>
</tr>`, dn, dn, i, dn, i, r.Caption, i, r.FilingDate, i, r.Status, i, r.OTN, i, r.DOB)
	}
	sb.WriteString(`</table>`)
	sb.WriteString(pager(CPGrid, pages))
	sb.WriteString(`</div>`)
	return sb.String()
}

const MDJGrid = "ctl00$ctl00$ctl00$cphMain$cphDynamicContent$cphResults$gvDocket"

// MDJResults renders the Magisterial District results panel listing
// `rows` with pager links to `pages`.
func MDJResults(rows []Row, pages ...int) string {
	var sb strings.Builder
	sb.WriteString(`<div id="ctl00_ctl00_ctl00_cphMain_cphDynamicContent_pnlResults">`)
	sb.WriteString(`<table id="ctl00_ctl00_ctl00_cphMain_cphDynamicContent_cphResults_gvDocket"><tr><th></th><th>Docket Number</th></tr>`)
	for i, r := range rows {
		dn := r.DocketNumber
		fmt.Fprintf(&sb, `<tr>
<td><table id="ctl00_ctl00_ctl00_cphMain_cphDynamicContent_cphResults_gvDocket_ctl%02d_ucPrintControl_printMenu"><tr><td>
<a href="/DocketSheets/MDJReport.ashx?docketNumber=%s&amp;dnh=abc">Docket Sheet</a></td></tr>
<tr><td><a href="/DocketSheets/CourtSummaryReport.ashx?docketNumber=%s&amp;dnh=abc">Court Summary</a></td></tr></table></td>
<td>%s</td>
<td>MDJ-05-2-01</td>
<td><span>%s</span></td>
<td>%s</td>
<td>%s</td>
<td><span>%s</span></td>
<td>%s</td>
<td><span>%s</span></td>
<td></td>
<td></td>
<td><span>%s</span></td>
</tr>`, i, dn, dn, dn, r.Caption, r.FilingDate, r.County, r.Status, r.Participants, r.OTN, r.DOB)
	}
	if len(pages) > 0 {
		fmt.Fprintf(&sb, `<tr><td colspan="12">%s</td></tr>`, pager(MDJGrid, pages))
	}
	sb.WriteString(`</table></div>`)
	return sb.String()
}
