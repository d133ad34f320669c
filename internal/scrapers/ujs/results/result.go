// Package results turns the result tables of the portal into SearchResults.
package results

import "strings"

// SearchResult is one case found by a search.
type SearchResult struct {
	DocketNumber   string `json:"docket_number"`
	Court          string `json:"court"`
	DocketSheetUrl string `json:"docket_sheet_url"`
	SummaryUrl     string `json:"summary_url"`
	Caption        string `json:"caption"`
	FilingDate     string `json:"filing_date"`
	CaseStatus     string `json:"case_status"`
	OTN            string `json:"otn"`
	DOB            string `json:"dob"`
	Participants   string `json:"participants"`
	County         string `json:"county"`
}

type Field string

const (
	FieldDocketNumber   Field = "docket_number"
	FieldDocketSheetUrl Field = "docket_sheet_url"
	FieldSummaryUrl     Field = "summary_url"
	FieldCaption        Field = "caption"
	FieldFilingDate     Field = "filing_date"
	FieldCaseStatus     Field = "case_status"
	FieldOTN            Field = "otn"
	FieldDOB            Field = "dob"
	FieldParticipants   Field = "participants"
	FieldCounty         Field = "county"
)

func (r *SearchResult) set(field Field, value string) {
	switch field {
	case FieldDocketNumber:
		r.DocketNumber = value
		r.Court = courtOf(value)
	case FieldDocketSheetUrl:
		r.DocketSheetUrl = value
	case FieldSummaryUrl:
		r.SummaryUrl = value
	case FieldCaption:
		r.Caption = value
	case FieldFilingDate:
		r.FilingDate = value
	case FieldCaseStatus:
		r.CaseStatus = value
	case FieldOTN:
		r.OTN = value
	case FieldDOB:
		r.DOB = value
	case FieldParticipants:
		r.Participants = value
	case FieldCounty:
		r.County = value
	}
}

// the court is the prefix of the docket number (CP, MC or MJ)
func courtOf(docketNumber string) string {
	court, _, found := strings.Cut(docketNumber, "-")
	if !found {
		return ""
	}
	return strings.ToUpper(court)
}

// Dedupe drops every result whose docket number was already seen, keeping
// the first occurrence.
func Dedupe(list []SearchResult) []SearchResult {
	seen := map[string]bool{}
	out := make([]SearchResult, 0, len(list))
	for _, r := range list {
		key := strings.ToUpper(r.DocketNumber)
		if seen[key] {
			continue
		}
		seen[key] = true
		out = append(out, r)
	}
	return out
}
