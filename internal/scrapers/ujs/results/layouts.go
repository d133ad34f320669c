package results

import "fmt"

// CP is the layout of the Common Pleas docket sheet search results.
var CP = Layout{
	Container: `div[id*='resultsPanel']`,
	Columns: []Column{
		{Field: FieldDocketNumber, Selector: `span[id*='docketNumberLabel']`},
		{Field: FieldCaption, Selector: `span[id*='shortCaptionLabel']`},
		{Field: FieldFilingDate, Selector: `span[id*='filingDateLabel']`},
		{Field: FieldCaseStatus, Selector: `span[id*='caseStatusNameLabel']`},
		{Field: FieldOTN, Selector: `span[id*='otnLabel']`, Optional: true},
		{Field: FieldDOB, Selector: `span[id*='DobLabel']`, Optional: true},
		{Field: FieldDocketSheetUrl, Selector: `a[href*='CPReport.ashx?docketNumber=']`, Attr: "href"},
		{Field: FieldSummaryUrl, Selector: `a[href*='CourtSummaryReport.ashx?docketNumber=']`, Attr: "href"},
	},
}

func mdjCell(n int, suffix string) string {
	return fmt.Sprintf(`table[id$='gvDocket'] > tbody > tr > td:nth-child(%d)%s`, n, suffix)
}

// MDJ is the layout of the Magisterial District Judge docket sheet search results.
var MDJ = Layout{
	Container: `div[id*='pnlResults']`,
	Columns: []Column{
		{Field: FieldDocketNumber, Selector: mdjCell(2, "")},
		{Field: FieldCaption, Selector: mdjCell(4, " > span")},
		{Field: FieldFilingDate, Selector: mdjCell(5, "")},
		{Field: FieldCounty, Selector: mdjCell(6, ""), Optional: true},
		{Field: FieldCaseStatus, Selector: mdjCell(7, " > span")},
		{Field: FieldParticipants, Selector: mdjCell(8, ""), Optional: true},
		{Field: FieldOTN, Selector: mdjCell(9, " > span"), Optional: true},
		{Field: FieldDOB, Selector: mdjCell(12, ""), Optional: true},
		{Field: FieldDocketSheetUrl, Selector: `a[href*='MDJReport.ashx?docketNumber=']`, Attr: "href"},
		{Field: FieldSummaryUrl, Selector: `a[href*='CourtSummaryReport.ashx?docketNumber=']`, Attr: "href"},
	},
}
