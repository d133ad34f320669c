package mdj

import (
	"docketsearch/internal/scrapers/ujs/docket"
	"docketsearch/internal/scrapers/ujs/portal"
	"docketsearch/internal/scrapers/ujs/results"
	"docketsearch/internal/scrapers/ujs/workflow"
)

const viewstateGenerator = "4AB257F3"

const (
	controlPrefix = "ctl00$ctl00$ctl00$cphMain$cphDynamicContent$"

	searchTypeField = controlPrefix + "ddlSearchType"
	searchButton    = controlPrefix + "btnSearch"

	participantPrefix = controlPrefix + "cphSearchControls$udsParticipantName$"
	lastNameField     = participantPrefix + "txtLastName"
	firstNameField    = participantPrefix + "txtFirstName"
	dobField          = participantPrefix + "dpDOB$DateTextBox"
	dobStateField     = participantPrefix + "dpDOB$DateTextBoxMaskExtender_ClientState"
	nameCountyField   = participantPrefix + "ddlCounty"
	nameDocketType    = participantPrefix + "ddlDocketType"
	nameCaseStatus    = participantPrefix + "ddlCaseStatus"
	filedBeginField   = participantPrefix + "DateFiledDateRangePicker$beginDateChildControl$DateTextBox"
	filedBeginState   = participantPrefix + "DateFiledDateRangePicker$beginDateChildControl$DateTextBoxMaskExtender_ClientState"
	filedEndField     = participantPrefix + "DateFiledDateRangePicker$endDateChildControl$DateTextBox"
	filedEndState     = participantPrefix + "DateFiledDateRangePicker$endDateChildControl$DateTextBoxMaskExtender_ClientState"

	docketPrefix    = controlPrefix + "cphSearchControls$udsDocketNumber$"
	countyField     = docketPrefix + "ddlCounty"
	officeField     = docketPrefix + "ddlCourtOffice"
	docketTypeField = docketPrefix + "ddlDocketType"
	sequenceField   = docketPrefix + "txtSequenceNumber"
	yearField       = docketPrefix + "txtYear"

	scriptManagerField = "ctl00$ctl00$ctl00$ScriptManager1"
	resultsPanel       = controlPrefix + "cphResults$upResults"
)

const (
	participantSearchType = "ParticipantName"
	docketSearchType      = "DocketNumber"
)

// the earliest filing date the portal accepts
const filedSince = "01/01/1950"

func pageState() portal.Form {
	return portal.Form{
		portal.EventTargetField:        "",
		portal.EventArgumentField:      "",
		"__LASTFOCUS":                  "",
		portal.ViewstateGeneratorField: viewstateGenerator,
		"__SCROLLPOSITIONX":            "0",
		"__SCROLLPOSITIONY":            "0",
	}
}

func selectParticipantForm() portal.Form {
	return pageState().With(portal.Form{
		portal.EventTargetField: searchTypeField,
		searchTypeField:         participantSearchType,
		countyField:             "",
	})
}

func participantForm(env workflow.Env, q workflow.NameQuery) portal.Form {
	return pageState().With(portal.Form{
		searchTypeField: participantSearchType,
		lastNameField:   q.Last,
		firstNameField:  q.First,
		dobField:        env.Date(q.DOB),
		dobStateField:   "",
		nameCountyField: "",
		nameDocketType:  "",
		nameCaseStatus:  "",
		filedBeginField: filedSince,
		filedBeginState: "",
		filedEndField:   env.Today(),
		filedEndState:   "",
		searchButton:    "Search",
	})
}

// paging postbacks are sent with the date of birth blanked out
func pageForm(previous portal.Form, target results.PageTarget) portal.Form {
	return previous.Without(searchButton).With(portal.Form{
		portal.EventTargetField:   target.EventTarget,
		portal.EventArgumentField: target.Argument,
		dobField:                  "",
		scriptManagerField:        resultsPanel + "|" + target.EventTarget,
	})
}

func selectCountyForm(county string) portal.Form {
	return pageState().With(portal.Form{
		portal.EventTargetField: countyField,
		searchTypeField:         docketSearchType,
		countyField:             county,
	})
}

// the court office postback builds on the county selection
func selectOfficeForm(previous portal.Form, dn docket.DocketNumber) portal.Form {
	return previous.With(portal.Form{
		portal.EventTargetField: officeField,
		officeField:             dn.OfficeCode(),
	})
}

func docketForm(previous portal.Form, dn docket.DocketNumber) portal.Form {
	return previous.With(portal.Form{
		portal.EventTargetField: "",
		docketTypeField:         dn.Type,
		sequenceField:           dn.Sequence,
		yearField:               dn.Year,
		searchButton:            "Search",
	})
}
